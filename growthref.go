// growthref: pediatric growth-standard z-score and percentile engine.
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/imec-int/growthref/blob/master/LICENSE.txt>.

// Package growthref computes z-scores and percentiles for pediatric
// anthropometric measurements against the WHO and INTERGROWTH-21st growth
// standards. A Catalog is built once, from a directory of raw reference
// files or from a previously saved artifact, and then answers ZScore and
// Percentile queries keyed by measurement, value, sex and age.
package growthref

import (
	"fmt"

	"github.com/imec-int/growthref/internal/catalog"
	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/errs"
	"github.com/imec-int/growthref/internal/ingest"
	"github.com/imec-int/growthref/internal/query"
)

// Error is the single tagged error type every operation in this package
// returns. Use errors.As to recover it and branch on Kind.
type Error = errs.Error

// Kind enumerates the ways a query can fail to resolve.
type Kind = errs.Kind

// The Kind values a caller can match on with errors.As/Kind comparisons.
const (
	UnknownMeasurement  = errs.UnknownMeasurement
	MissingAge          = errs.MissingAge
	NoReferenceForAge   = errs.NoReferenceForAge
	NoReferenceForRange = errs.NoReferenceForRange
	OutOfRange          = errs.OutOfRange
	AmbiguousTable      = errs.AmbiguousTable
	NoMatch             = errs.NoMatch
	InvalidTaxonomy     = errs.InvalidTaxonomy
	MissingMedian       = errs.MissingMedian
	BadLmsFit           = errs.BadLmsFit
)

// AgeInput is the struct-of-optionals a caller supplies in place of a
// tagged age/gestational-age union: set AgeDays, GestationalAgeDays, or
// both. At least one must be set.
type AgeInput = query.AgeInput

// ArtifactVersion is the schema version embedded in every saved catalog
// artifact. Load refuses to read an artifact written by an incompatible
// version.
const ArtifactVersion = catalog.ArtifactVersion

// Catalog holds a consolidated set of reference tables and answers
// zscore/percentile queries against them. It is safe for concurrent read
// access once built; it is never mutated after construction.
type Catalog struct {
	engine *query.Engine
}

// LoadDir ingests every .csv/.xlsx reference file under root, consolidates
// them into a catalog, and returns it ready for querying. Use this once at
// startup, then Save the result so subsequent runs can use Load instead of
// re-parsing the raw reference files.
func LoadDir(root string) (*Catalog, error) {
	rows, err := ingest.Dir(root)
	if err != nil {
		return nil, fmt.Errorf("growthref: ingesting %s: %w", root, err)
	}
	return &Catalog{engine: query.NewEngine(catalog.Build(rows))}, nil
}

// Load reads a catalog previously written by Save.
func Load(path string) (*Catalog, error) {
	rows, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("growthref: %w", err)
	}
	return &Catalog{engine: query.NewEngine(catalog.Build(rows))}, nil
}

// Save persists the catalog's rows to path as a gzip-compressed artifact
// that Load can read back without re-ingesting the raw reference files.
func (c *Catalog) Save(path string) error {
	var rows []catalogtypes.CanonicalRow
	for _, key := range c.engine.Catalog.SliceKeys() {
		rows = append(rows, c.engine.Catalog.Rows(key)...)
	}
	if err := catalog.Save(path, rows); err != nil {
		return fmt.Errorf("growthref: %w", err)
	}
	return nil
}

// ZScore returns how many standard deviations value is from the reference
// median for measurement, at the given sex and age. measurement accepts
// both canonical names (e.g. "stature") and the published abbreviations
// (e.g. "wfa", "bmi"), case-insensitively and with dashes read as
// underscores (e.g. "Head-Circumference").
func (c *Catalog) ZScore(measurement string, value float64, sex string, age AgeInput) (float64, error) {
	return c.engine.ZScore(measurement, value, sex, age)
}

// Percentile returns the standard-normal percentile (in [0, 1]) value
// falls at, for measurement at the given sex and age.
func (c *Catalog) Percentile(measurement string, value float64, sex string, age AgeInput) (float64, error) {
	return c.engine.Percentile(measurement, value, sex, age)
}

// GrowthTable is a read-only view over one reference table's x axis and
// its L, M, S triples, sorted by x.
type GrowthTable = catalog.Table

// ChildPoint is one (x, y) overlay observation merged onto a growth
// table's x axis by GrowthTable.AddChildData.
type ChildPoint = catalog.ChildPoint

// GetTable returns the reference table for a (table name, age group,
// measurement, sex, x-var type) combination. Either name or ageGroup (or
// both) must be non-empty; xVarType disambiguates when more than one
// candidate slice would otherwise match.
func (c *Catalog) GetTable(name, ageGroup, measurement, sex, xVarType string) (*GrowthTable, error) {
	typedSex := catalogtypes.Sex(sex).Normalize()
	return c.engine.Catalog.GetTable(
		catalogtypes.TableName(name),
		catalogtypes.AgeGroup(ageGroup),
		catalogtypes.MeasurementType(measurement),
		typedSex,
		catalogtypes.XVarType(xVarType),
	)
}
