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

// Package catalog consolidates canonical rows into a queryable, read-only
// in-memory store and persists/loads it as a single artifact.
package catalog

import (
	"sort"

	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/errs"
)

// Catalog is the consolidated, deduplicated, per-slice-sorted row store.
// Once built it is never mutated; GrowthTable views hold their own copies
// of a slice's values.
type Catalog struct {
	slices map[catalogtypes.SliceKey][]catalogtypes.CanonicalRow
}

// Build concatenates raw canonical rows, deduplicates on the full row key
// (last write for a given key wins), and sorts each slice by x.
func Build(rows []catalogtypes.CanonicalRow) *Catalog {
	byKey := make(map[catalogtypes.RowKey]catalogtypes.CanonicalRow, len(rows))
	for _, r := range rows {
		byKey[r.Key()] = r
	}

	bySlice := make(map[catalogtypes.SliceKey][]catalogtypes.CanonicalRow)
	for _, r := range byKey {
		bySlice[r.Slice()] = append(bySlice[r.Slice()], r)
	}
	for k := range bySlice {
		s := bySlice[k]
		sort.Slice(s, func(i, j int) bool { return s[i].X < s[j].X })
		bySlice[k] = s
	}

	return &Catalog{slices: bySlice}
}

// GetTable resolves a (table name, age group, measurement, sex, x-var type)
// query to exactly one slice and returns its growth table view. Either name
// or ageGroup (or both) must be non-empty; xVarType is required only to
// disambiguate a slice that otherwise has more than one candidate.
func (c *Catalog) GetTable(name catalogtypes.TableName, ageGroup catalogtypes.AgeGroup, measurement catalogtypes.MeasurementType, sex catalogtypes.Sex, xVarType catalogtypes.XVarType) (*Table, error) {
	sex = sex.Normalize()
	if name == "" && ageGroup == "" {
		return nil, errs.New(errs.NoMatch, string(measurement), string(sex), 0)
	}

	var candidates []catalogtypes.SliceKey
	for k := range c.slices {
		if name != "" && k.TableName != name {
			continue
		}
		if ageGroup != "" && k.AgeGroup != ageGroup {
			continue
		}
		if k.MeasurementType != measurement || k.Sex != sex {
			continue
		}
		candidates = append(candidates, k)
	}

	if len(candidates) == 0 {
		return nil, errs.New(errs.NoMatch, string(measurement), string(sex), 0)
	}

	if len(candidates) > 1 && xVarType != "" {
		filtered := candidates[:0]
		for _, k := range candidates {
			if k.XVarType == xVarType {
				filtered = append(filtered, k)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	if len(candidates) > 1 {
		candidates = preferByXVarType(candidates)
	}

	if len(candidates) != 1 {
		return nil, errs.New(errs.AmbiguousTable, string(measurement), string(sex), 0)
	}

	key := candidates[0]
	rows := c.slices[key]
	return newTable(key, rows), nil
}

// SliceKeys returns every slice key currently stored, in no particular
// order. It exists so a host can round-trip a built catalog back to rows
// for Save without having to retain the original ingest result.
func (c *Catalog) SliceKeys() []catalogtypes.SliceKey {
	keys := make([]catalogtypes.SliceKey, 0, len(c.slices))
	for k := range c.slices {
		keys = append(keys, k)
	}
	return keys
}

// Rows returns the stored rows for one slice, sorted by x.
func (c *Catalog) Rows(key catalogtypes.SliceKey) []catalogtypes.CanonicalRow {
	return c.slices[key]
}

// preferByXVarType implements the catalog's disambiguation default: birth
// and very-preterm tables prefer gestational_age, everything else prefers
// age. It only narrows the set; it never invents a slice that wasn't found.
func preferByXVarType(candidates []catalogtypes.SliceKey) []catalogtypes.SliceKey {
	preferred := catalogtypes.XVarAge
	for _, k := range candidates {
		switch k.TableName {
		case catalogtypes.TableNewborn, catalogtypes.TableVeryPretermNewborn, catalogtypes.TableVeryPretermGrowth:
			preferred = catalogtypes.XVarGestationalAge
		}
	}
	var out []catalogtypes.SliceKey
	for _, k := range candidates {
		if k.XVarType == preferred {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}
