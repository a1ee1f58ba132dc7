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

// Package ingest reads raw reference files from a directory tree and turns
// them into canonical rows ready for internal/catalog.
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/exascience/pargo/parallel"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

// Result is the outcome of ingesting one raw file.
type Result struct {
	Path string
	Rows []catalogtypes.CanonicalRow
	Err  error
}

// Dir walks root, parses every .csv/.xlsx file it finds by filename taxonomy,
// and reads its rows. Files whose taxonomy is invalid or whose rows fail to
// parse are skipped with a logged warning rather than aborting the whole
// ingest, so one malformed source file does not block the rest of the
// catalog from loading.
func Dir(root string) ([]catalogtypes.CanonicalRow, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".csv" || ext == ".xlsx" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))
	parallel.Range(0, len(paths), 0, func(low, high int) {
		for i := low; i < high; i++ {
			results[i] = File(paths[i])
		}
	})

	var rows []catalogtypes.CanonicalRow
	for _, r := range results {
		if r.Err != nil {
			log.Warn().Str("path", r.Path).Err(r.Err).Msg("skipping unreadable reference file")
			continue
		}
		rows = append(rows, r.Rows...)
	}
	return rows, nil
}

// File ingests a single raw reference file. A row-level parse failure fails
// the whole file: a half-ingested table would silently violate the
// uniqueness and completeness invariants catalog.Build relies on.
func File(path string) Result {
	tax, err := ParseFilename(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	var xColumn string
	var rows []rawRow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		xColumn, rows, err = readCSV(path)
	case ".xlsx":
		xColumn, rows, err = readXLSX(path)
	}
	if err != nil {
		return Result{Path: path, Err: err}
	}

	canonical, err := parseRows(tax, xColumn, rows)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	withGroups, err := assignAgeGroups(tax, canonical)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Rows: withGroups}
}

// SetLogLevel exposes the package's log verbosity so host applications can
// tune it without reaching into the global zerolog logger directly.
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
