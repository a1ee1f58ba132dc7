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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

func buildTable(t *testing.T) *Table {
	t.Helper()
	c := Build(sampleRows())
	tbl, err := c.GetTable(catalogtypes.TableChildGrowth, "", catalogtypes.MeasurementStature, catalogtypes.SexMale, "")
	require.NoError(t, err)
	return tbl
}

func TestCutNarrowsRange(t *testing.T) {
	tbl := buildTable(t)
	cut := tbl.Cut(10, 100)
	assert.Equal(t, []float64{30}, cut.X)
}

func TestValuesAtZReturnsOneRowPerZ(t *testing.T) {
	tbl := buildTable(t)
	vals, err := tbl.ValuesAtZ([]float64{-1, 0, 1})
	require.NoError(t, err)
	require.Len(t, vals, 3)
	require.Len(t, vals[1], len(tbl.X))
	assert.InDelta(t, tbl.M[0], vals[1][0], 1e-9)
}

func TestAddChildDataMergesByUnion(t *testing.T) {
	tbl := buildTable(t)
	merged := tbl.AddChildData([]float64{15}, []float64{52.3})
	assert.Len(t, merged, 3) // 0, 15, 30
	assert.Equal(t, 15.0, merged[1].X)
	require.NotNil(t, merged[1].Y)
	assert.Equal(t, 52.3, *merged[1].Y)
	assert.Nil(t, merged[0].Y)
}

func TestAtInterpolatesThroughKernel(t *testing.T) {
	tbl := buildTable(t)
	p, err := tbl.At(15, 4)
	require.NoError(t, err)
	assert.InDelta(t, 52.3, p.M, 0.1)
}
