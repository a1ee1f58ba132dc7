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

package ingest

import (
	"fmt"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

// assignAgeGroups fills in the age_group of every row produced from one raw
// file. Tables that map one-to-one onto an age_group (newborn and the
// very-preterm standards) get it directly. Rows already forced to an
// age_group by weight-for-stature handling (buildRow's caller) are left
// untouched. Everything else spans a table's full range (child_growth:
// 0-5y, growth: 5-19y) and is split per-row at the year boundary that
// separates its two canonical groups.
func assignAgeGroups(tax Taxonomy, rows []catalogtypes.CanonicalRow) ([]catalogtypes.CanonicalRow, error) {
	switch tax.TableName {
	case catalogtypes.TableNewborn:
		return withGroup(rows, catalogtypes.AgeGroupNewborn), nil
	case catalogtypes.TableVeryPretermNewborn:
		return withGroup(rows, catalogtypes.AgeGroupVeryPretermNewborn), nil
	case catalogtypes.TableVeryPretermGrowth:
		return withGroup(rows, catalogtypes.AgeGroupVeryPretermGrowth), nil
	}

	preset := true
	for _, r := range rows {
		if r.AgeGroup == "" {
			preset = false
			break
		}
	}
	if preset {
		return rows, nil
	}

	switch tax.TableName {
	case catalogtypes.TableChildGrowth:
		return splitAtYears(rows, 2, catalogtypes.AgeGroup0To2, catalogtypes.AgeGroup2To5), nil
	case catalogtypes.TableGrowth:
		return splitAtYears(rows, 10, catalogtypes.AgeGroup5To10, catalogtypes.AgeGroup10To19), nil
	}
	return nil, fmt.Errorf("ingest: no age-group rule for table %q", tax.TableName)
}

func withGroup(rows []catalogtypes.CanonicalRow, group catalogtypes.AgeGroup) []catalogtypes.CanonicalRow {
	for i := range rows {
		if rows[i].AgeGroup == "" {
			rows[i].AgeGroup = group
		}
	}
	return rows
}

func splitAtYears(rows []catalogtypes.CanonicalRow, boundaryYears float64, below, atOrAbove catalogtypes.AgeGroup) []catalogtypes.CanonicalRow {
	boundary := boundaryYears * daysPerYear
	for i := range rows {
		if rows[i].X < boundary {
			rows[i].AgeGroup = below
		} else {
			rows[i].AgeGroup = atOrAbove
		}
	}
	return rows
}
