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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

func TestParseFilenameBasic(t *testing.T) {
	tax, err := ParseFilename("who-child_growth-stature-M.csv")
	require.NoError(t, err)
	assert.Equal(t, catalogtypes.SourceWHO, tax.Source)
	assert.Equal(t, catalogtypes.TableChildGrowth, tax.TableName)
	assert.Equal(t, catalogtypes.MeasurementStature, tax.MeasurementType)
	assert.Equal(t, catalogtypes.SexMale, tax.Sex)
	assert.Equal(t, catalogtypes.XVarAge, tax.XVarType)
	assert.Empty(t, tax.Variant)
}

func TestParseFilenameBirthAliasesToNewborn(t *testing.T) {
	tax, err := ParseFilename("intergrowth-birth-weight-F.csv")
	require.NoError(t, err)
	assert.Equal(t, catalogtypes.TableNewborn, tax.TableName)
	assert.Equal(t, catalogtypes.XVarGestationalAge, tax.XVarType)
}

func TestParseFilenameVariantSuffix(t *testing.T) {
	tax, err := ParseFilename("who-child_growth-weight_velocity-M-1mon.csv")
	require.NoError(t, err)
	assert.Equal(t, "1mon", tax.Variant)
	assert.Equal(t, catalogtypes.SexMale, tax.Sex)
	assert.Equal(t, catalogtypes.MeasurementWeightVelocity, tax.MeasurementType)
}

func TestParseFilenameWeightForLength(t *testing.T) {
	tax, err := ParseFilename("who-child_growth-weight_length-F.csv")
	require.NoError(t, err)
	assert.Equal(t, catalogtypes.MeasurementWeight, tax.MeasurementType)
	assert.Equal(t, catalogtypes.XVarStature, tax.XVarType)
}

func TestParseFilenameWeightStatureRatio(t *testing.T) {
	tax, err := ParseFilename("intergrowth-very_preterm_growth-weight_stature-M.csv")
	require.NoError(t, err)
	assert.Equal(t, catalogtypes.MeasurementWeightStatureRatio, tax.MeasurementType)
}

func TestParseFilenameInvalidSex(t *testing.T) {
	_, err := ParseFilename("who-child_growth-stature-X.csv")
	assert.Error(t, err)
}

func TestParseFilenameTooFewComponents(t *testing.T) {
	_, err := ParseFilename("who-stature.csv")
	assert.Error(t, err)
}

func TestParseFilenameUnknownSource(t *testing.T) {
	_, err := ParseFilename("cdc-child_growth-stature-M.csv")
	assert.Error(t, err)
}
