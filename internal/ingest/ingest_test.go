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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileIngestsDirectLMSCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "who-child_growth-stature-M.csv",
		"age,l,m,s\n0,1,49.9,0.038\n30,1,54.7,0.037\n")

	result := File(path)
	require.NoError(t, result.Err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 54.7, result.Rows[1].M)
}

func TestFileSkipsOnBadTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notreal-child_growth-stature-M.csv", "age,l,m,s\n0,1,1,1\n")
	result := File(path)
	assert.Error(t, result.Err)
}

func TestFileRejectsFileWithOneBadRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "who-child_growth-stature-M.csv",
		"age,l,m,s\n0,1,49.9,0.038\nNOTANUMBER,1,54.7,0.037\n")
	result := File(path)
	assert.Error(t, result.Err)
}

func TestDirSkipsBadFilesButKeepsGoodOnes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "who-child_growth-stature-M.csv", "age,l,m,s\n0,1,49.9,0.038\n")
	writeFile(t, dir, "unrecognized-source-file-M.csv", "age,l,m,s\n0,1,1,1\n")
	writeFile(t, dir, "readme.txt", "not a data file")

	rows, err := Dir(dir)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 49.9, rows[0].M)
}
