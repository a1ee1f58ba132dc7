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
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of an XLSX file, mirroring readCSV's
// contract: lower-cased header-keyed rows plus the first column's name.
func readXLSX(path string) (string, []rawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("ingest: opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("ingest: %s has no sheets", path)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return "", nil, fmt.Errorf("ingest: reading sheet %q of %s: %w", sheets[0], path, err)
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("ingest: %s sheet %q is empty", path, sheets[0])
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []rawRow
	for _, record := range records[1:] {
		rows = append(rows, recordToRow(header, record))
	}
	return header[0], rows, nil
}
