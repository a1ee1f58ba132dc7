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
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

// ArtifactVersion is embedded in every persisted artifact. Readers refuse
// any version they do not recognize rather than guess at a schema.
const ArtifactVersion = "growthref-v1"

var artifactColumns = []string{
	"version", "source", "table_name", "age_group", "sex", "measurement_type",
	"x_var_type", "x_var_unit", "x", "l", "m", "s", "is_derived",
}

// Save writes the consolidated rows to a gzip-compressed tab-separated
// artifact at path, one row per line plus a version column on every
// record so a reader never needs a second pass to check compatibility.
func Save(path string, rows []catalogtypes.CanonicalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalog: creating artifact: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	w := csv.NewWriter(gz)
	w.Comma = '\t'
	if err := w.Write(artifactColumns); err != nil {
		return fmt.Errorf("catalog: writing artifact header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			ArtifactVersion,
			string(r.Source), string(r.TableName), string(r.AgeGroup), string(r.Sex), string(r.MeasurementType),
			string(r.XVarType), string(r.XVarUnit),
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.FormatFloat(r.L, 'g', -1, 64),
			strconv.FormatFloat(r.M, 'g', -1, 64),
			strconv.FormatFloat(r.S, 'g', -1, 64),
			strconv.FormatBool(r.IsDerived),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("catalog: writing artifact row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("catalog: flushing artifact: %w", err)
	}
	return nil
}

// Load reads a gzip-compressed tab-separated artifact written by Save. Any
// row whose version column does not match ArtifactVersion causes Load to
// fail: there is no schema migration path between artifact versions.
func Load(path string) ([]catalogtypes.CanonicalRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening artifact: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("catalog: opening artifact stream: %w", err)
	}
	defer gz.Close()

	r := csv.NewReader(gz)
	r.Comma = '\t'

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: reading artifact header: %w", err)
	}
	if len(header) != len(artifactColumns) {
		return nil, fmt.Errorf("catalog: unrecognized artifact schema (%d columns)", len(header))
	}

	var rows []catalogtypes.CanonicalRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: reading artifact row: %w", err)
		}
		row, err := decodeRow(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(record []string) (catalogtypes.CanonicalRow, error) {
	if len(record) != len(artifactColumns) {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: malformed artifact row: %d fields", len(record))
	}
	if record[0] != ArtifactVersion {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: unsupported artifact version %q (expected %q)", record[0], ArtifactVersion)
	}

	x, err := strconv.ParseFloat(record[8], 64)
	if err != nil {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: bad x value %q: %w", record[8], err)
	}
	l, err := strconv.ParseFloat(record[9], 64)
	if err != nil {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: bad l value %q: %w", record[9], err)
	}
	m, err := strconv.ParseFloat(record[10], 64)
	if err != nil {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: bad m value %q: %w", record[10], err)
	}
	s, err := strconv.ParseFloat(record[11], 64)
	if err != nil {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: bad s value %q: %w", record[11], err)
	}
	derived, err := strconv.ParseBool(record[12])
	if err != nil {
		return catalogtypes.CanonicalRow{}, fmt.Errorf("catalog: bad is_derived value %q: %w", record[12], err)
	}

	return catalogtypes.CanonicalRow{
		Source:          catalogtypes.Source(record[1]),
		TableName:       catalogtypes.TableName(record[2]),
		AgeGroup:        catalogtypes.AgeGroup(record[3]),
		Sex:             catalogtypes.Sex(record[4]),
		MeasurementType: catalogtypes.MeasurementType(record[5]),
		XVarType:        catalogtypes.XVarType(record[6]),
		XVarUnit:        catalogtypes.XVarUnit(record[7]),
		X:               x,
		L:               l,
		M:               m,
		S:               s,
		IsDerived:       derived,
	}, nil
}
