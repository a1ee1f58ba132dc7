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

// Package query resolves a measurement alias, sex, and age into a catalog
// lookup, extracts LMS at the requested x, and evaluates the kernel.
package query

import (
	"strings"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

var aliasTable = map[string]catalogtypes.MeasurementType{
	"lfa": catalogtypes.MeasurementStature, "hfa": catalogtypes.MeasurementStature,
	"lhfa": catalogtypes.MeasurementStature, "sfa": catalogtypes.MeasurementStature,
	"length": catalogtypes.MeasurementStature, "height": catalogtypes.MeasurementStature,
	"length_height": catalogtypes.MeasurementStature, "l": catalogtypes.MeasurementStature,
	"h": catalogtypes.MeasurementStature, "s": catalogtypes.MeasurementStature,
	"stature": catalogtypes.MeasurementStature,

	"wfa": catalogtypes.MeasurementWeight, "w": catalogtypes.MeasurementWeight,
	"weight": catalogtypes.MeasurementWeight,

	"hcfa": catalogtypes.MeasurementHeadCircumference, "hc": catalogtypes.MeasurementHeadCircumference,
	"head_circumference": catalogtypes.MeasurementHeadCircumference,

	"bmi": catalogtypes.MeasurementBodyMassIndex, "bfa": catalogtypes.MeasurementBodyMassIndex,
	"body_mass_index": catalogtypes.MeasurementBodyMassIndex,

	"wfs": catalogtypes.MeasurementWeightStatureRatio, "wfl": catalogtypes.MeasurementWeightStatureRatio,
	"wfh": catalogtypes.MeasurementWeightStatureRatio, "weight_length": catalogtypes.MeasurementWeightStatureRatio,
	"weight_height": catalogtypes.MeasurementWeightStatureRatio, "weight_stature": catalogtypes.MeasurementWeightStatureRatio,
	"weight_for_stature": catalogtypes.MeasurementWeightStatureRatio, "weight_for_length": catalogtypes.MeasurementWeightStatureRatio,
	"weight_for_height": catalogtypes.MeasurementWeightStatureRatio,

	"weight_velocity":             catalogtypes.MeasurementWeightVelocity,
	"length_velocity":             catalogtypes.MeasurementLengthVelocity,
	"head_circumference_velocity": catalogtypes.MeasurementHeadCircumferenceVelocity,
}

// ResolveAlias normalizes a measurement alias (case-insensitive, dashes
// treated as underscores) to its canonical measurement type. The zero value
// and ok=false are returned for anything outside the closed alias table.
func ResolveAlias(alias string) (catalogtypes.MeasurementType, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(alias, "-", "_"))
	m, ok := aliasTable[normalized]
	return m, ok
}
