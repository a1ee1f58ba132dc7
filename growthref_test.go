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

package growthref

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReferenceFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func days(n float64) *float64 { return &n }

func TestLoadDirSaveLoadRoundTripsAndAnswersQueries(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFile(t, dir, "who-child_growth-stature-M.csv", ""+
		"age,l,m,s\n"+
		"330,1,74.5,0.035\n"+
		"400,1,76.5,0.035\n")

	cat, err := LoadDir(dir)
	require.NoError(t, err)

	z, err := cat.ZScore("stature", 75.0, "M", AgeInput{AgeDays: days(365)})
	require.NoError(t, err)
	assert.Less(t, z, 0.0)

	artifact := filepath.Join(dir, "catalog.tsv.gz")
	require.NoError(t, cat.Save(artifact))

	reloaded, err := Load(artifact)
	require.NoError(t, err)

	z2, err := reloaded.ZScore("stature", 75.0, "M", AgeInput{AgeDays: days(365)})
	require.NoError(t, err)
	assert.Equal(t, z, z2)
}

func TestZScoreUnknownMeasurementReturnsTaggedError(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFile(t, dir, "who-child_growth-stature-M.csv", ""+
		"age,l,m,s\n"+
		"330,1,74.5,0.035\n")
	cat, err := LoadDir(dir)
	require.NoError(t, err)

	_, err = cat.ZScore("not_a_measurement", 1, "M", AgeInput{AgeDays: days(1)})
	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, UnknownMeasurement, ge.Kind)
}

func TestGetTableReturnsSortedAxis(t *testing.T) {
	dir := t.TempDir()
	writeReferenceFile(t, dir, "who-child_growth-stature-M.csv", ""+
		"age,l,m,s\n"+
		"400,1,76.5,0.035\n"+
		"330,1,74.5,0.035\n")
	cat, err := LoadDir(dir)
	require.NoError(t, err)

	table, err := cat.GetTable("child_growth", "", "stature", "M", "age")
	require.NoError(t, err)
	require.Len(t, table.X, 2)
	assert.Less(t, table.X[0], table.X[1])
}
