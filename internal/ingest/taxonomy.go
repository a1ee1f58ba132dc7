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

// Package ingest reads raw tabular reference files and emits canonical
// rows. This file holds the filename taxonomy: the only place file paths
// are interpreted.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/errs"
)

// Taxonomy is the parsed identity of one raw input file, derived from its
// basename: <source>-<table>-<measurement>-<sex>[-<variant>].{csv,xlsx}
type Taxonomy struct {
	Source          catalogtypes.Source
	TableName       catalogtypes.TableName
	MeasurementType catalogtypes.MeasurementType
	Sex             catalogtypes.Sex
	Variant         string
	XVarType        catalogtypes.XVarType
}

// ParseFilename parses the basename-encoded taxonomy of a raw input file.
// Any value falling outside the controlled vocabularies is InvalidTaxonomy.
func ParseFilename(path string) (Taxonomy, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	parts := strings.Split(name, "-")
	if len(parts) < 4 {
		return Taxonomy{}, invalidTaxonomy(path, fmt.Errorf("expected at least 4 '-'-separated components, got %d", len(parts)))
	}

	variant := ""
	if len(parts) > 4 {
		variant = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	sexRaw := strings.ToUpper(parts[len(parts)-1])
	sex := catalogtypes.Sex(sexRaw)
	if !sex.Valid() {
		return Taxonomy{}, invalidTaxonomy(path, fmt.Errorf("unrecognized sex component %q", sexRaw))
	}
	parts = parts[:len(parts)-1]

	if len(parts) < 3 {
		return Taxonomy{}, invalidTaxonomy(path, fmt.Errorf("missing measurement/table/source components"))
	}

	measurementRaw := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	tableRaw := parts[len(parts)-1]
	if tableRaw == "birth" {
		tableRaw = "newborn"
	}
	parts = parts[:len(parts)-1]

	sourceRaw := strings.Join(parts, "-")
	source := catalogtypes.Source(sourceRaw)
	if !source.Valid() {
		return Taxonomy{}, invalidTaxonomy(path, fmt.Errorf("unrecognized source component %q", sourceRaw))
	}

	table := catalogtypes.TableName(tableRaw)
	if !table.Valid() {
		return Taxonomy{}, invalidTaxonomy(path, fmt.Errorf("unrecognized table component %q", tableRaw))
	}

	measurement := catalogtypes.MeasurementType(measurementRaw)
	xVarType := catalogtypes.XVarAge
	if strings.Contains(name, "birth") {
		xVarType = catalogtypes.XVarGestationalAge
	}

	if measurementRaw == "weight_length" || measurementRaw == "weight_height" {
		measurement = catalogtypes.MeasurementWeight
		xVarType = catalogtypes.XVarStature
	}
	if measurementRaw == "weight_stature" {
		measurement = catalogtypes.MeasurementWeightStatureRatio
	}
	if !measurement.Valid() {
		return Taxonomy{}, invalidTaxonomy(path, fmt.Errorf("unrecognized measurement component %q", measurementRaw))
	}

	return Taxonomy{
		Source:          source,
		TableName:       table,
		MeasurementType: measurement,
		Sex:             sex,
		Variant:         variant,
		XVarType:        xVarType,
	}, nil
}

func invalidTaxonomy(path string, cause error) *errs.Error {
	return errs.Wrap(errs.InvalidTaxonomy, path, "", 0, cause)
}
