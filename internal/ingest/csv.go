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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readCSV opens a CSV file and returns its header-keyed rows plus the
// lower-cased name of the first column, which drives x-axis dispatch.
func readCSV(path string) (string, []rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return "", nil, fmt.Errorf("ingest: reading header of %s: %w", path, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if len(header) == 0 {
		return "", nil, fmt.Errorf("ingest: %s has an empty header", path)
	}

	var rows []rawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("ingest: reading %s: %w", path, err)
		}
		rows = append(rows, recordToRow(header, record))
	}
	return header[0], rows, nil
}

func recordToRow(header, record []string) rawRow {
	r := make(rawRow, len(header))
	for i, h := range header {
		if i < len(record) {
			r[h] = strings.TrimSpace(record[i])
		}
	}
	return r
}
