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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/errs"
	"github.com/imec-int/growthref/internal/lms"
)

const daysPerMonth = 30.44
const daysPerWeek = 7
const daysPerYear = 365.25

// sdColumns are the minimum required SD columns. sd4neg/sd4/sd5neg/sd5 are
// tolerated in source files but not read: the estimator only ever fits
// against {-3...+3}.
var sdColumns = []string{"sd3neg", "sd2neg", "sd1neg", "sd0", "sd1", "sd2", "sd3"}

var sdZIndex = map[string]float64{
	"sd3neg": -3, "sd2neg": -2, "sd1neg": -1, "sd0": 0, "sd1": 1, "sd2": 2, "sd3": 3,
}

// rawRow is one row of a tabular source file, with lower-cased column
// names and string values, prior to canonicalization.
type rawRow map[string]string

// parseRows turns the rows of one raw file (already taxonomy-identified)
// into canonical rows. xColumn is the lower-cased name of the first column,
// which determines how x is derived.
func parseRows(tax Taxonomy, xColumn string, rows []rawRow) ([]catalogtypes.CanonicalRow, error) {
	switch {
	case xColumn == "length" || xColumn == "height":
		return parseWeightForStatureRows(tax, xColumn, rows)
	case xColumn == "interval":
		return parseVelocityRows(tax, rows)
	case xColumn == "weeks":
		return parseSimpleAxisRows(tax, xColumn, rows, func(v string) (float64, error) {
			w, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, err
			}
			return math.Round(w * daysPerWeek), nil
		}, catalogtypes.UnitDay)
	case xColumn == "month":
		return parseSimpleAxisRows(tax, xColumn, rows, func(v string) (float64, error) {
			mo, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, err
			}
			return math.Round(mo * daysPerMonth), nil
		}, catalogtypes.UnitDay)
	default:
		return parseSimpleAxisRows(tax, xColumn, rows, func(v string) (float64, error) {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, err
			}
			return math.Trunc(f), nil
		}, catalogtypes.UnitDay)
	}
}

func parseWeightForStatureRows(tax Taxonomy, xColumn string, rows []rawRow) ([]catalogtypes.CanonicalRow, error) {
	ageGroup := catalogtypes.AgeGroup2To5
	if xColumn == "length" {
		ageGroup = catalogtypes.AgeGroup0To2
	}
	out := make([]catalogtypes.CanonicalRow, 0, len(rows))
	for _, r := range rows {
		x, err := strconv.ParseFloat(r[xColumn], 64)
		if err != nil {
			return nil, fmt.Errorf("ingest: bad %s value %q: %w", xColumn, r[xColumn], err)
		}
		row, err := buildRow(tax, catalogtypes.MeasurementWeight, catalogtypes.XVarStature, catalogtypes.UnitCM, ageGroup, x, r)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func parseVelocityRows(tax Taxonomy, rows []rawRow) ([]catalogtypes.CanonicalRow, error) {
	out := make([]catalogtypes.CanonicalRow, 0, len(rows))
	for _, r := range rows {
		raw := strings.ReplaceAll(r["interval"], "–", "-")
		raw = strings.TrimSpace(raw)
		parts := strings.SplitN(raw, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("ingest: bad interval value %q", r["interval"])
		}
		lo, err := parseIntervalEndpoint(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		row, err := buildRow(tax, tax.MeasurementType, catalogtypes.XVarAge, catalogtypes.UnitDay, "", lo, r)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func parseIntervalEndpoint(part string) (float64, error) {
	switch {
	case strings.HasSuffix(part, "wks"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(part, "wks")), 64)
		if err != nil {
			return 0, err
		}
		return math.Round(v * daysPerWeek), nil
	case strings.HasSuffix(part, "mo"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(part, "mo")), 64)
		if err != nil {
			return 0, err
		}
		return math.Round(v * daysPerMonth), nil
	default:
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, err
		}
		return math.Round(v * daysPerMonth), nil
	}
}

func parseSimpleAxisRows(tax Taxonomy, xColumn string, rows []rawRow, parseX func(string) (float64, error), unit catalogtypes.XVarUnit) ([]catalogtypes.CanonicalRow, error) {
	measurement := tax.MeasurementType
	if measurement == "weight_stature" {
		measurement = catalogtypes.MeasurementWeightStatureRatio
	}
	out := make([]catalogtypes.CanonicalRow, 0, len(rows))
	for i, r := range rows {
		x, err := parseX(r[xColumn])
		if err != nil {
			return nil, fmt.Errorf("ingest: row %d: bad %s value %q: %w", i, xColumn, r[xColumn], err)
		}
		row, err := buildRow(tax, measurement, tax.XVarType, unit, "", x, r)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// buildRow assembles one canonical row, either reading L/M/S directly or
// deriving them from SD columns via the kernel's estimator.
func buildRow(tax Taxonomy, measurement catalogtypes.MeasurementType, xVarType catalogtypes.XVarType, unit catalogtypes.XVarUnit, ageGroup catalogtypes.AgeGroup, x float64, r rawRow) (catalogtypes.CanonicalRow, error) {
	base := catalogtypes.CanonicalRow{
		Source:          tax.Source,
		TableName:       tax.TableName,
		AgeGroup:        ageGroup,
		Sex:             tax.Sex,
		MeasurementType: measurement,
		XVarType:        xVarType,
		XVarUnit:        unit,
		X:               x,
	}

	if lStr, ok := r["l"]; ok {
		if mStr, mok := r["m"]; mok {
			if sStr, sok := r["s"]; sok {
				l, err := strconv.ParseFloat(lStr, 64)
				if err != nil {
					return catalogtypes.CanonicalRow{}, fmt.Errorf("ingest: bad l value %q: %w", lStr, err)
				}
				m, err := strconv.ParseFloat(mStr, 64)
				if err != nil {
					return catalogtypes.CanonicalRow{}, fmt.Errorf("ingest: bad m value %q: %w", mStr, err)
				}
				s, err := strconv.ParseFloat(sStr, 64)
				if err != nil {
					return catalogtypes.CanonicalRow{}, fmt.Errorf("ingest: bad s value %q: %w", sStr, err)
				}
				base.L, base.M, base.S, base.IsDerived = l, m, s, false
				return base, nil
			}
		}
	}

	zIndex := make([]float64, 0, len(sdColumns))
	values := make([]float64, 0, len(sdColumns))
	for _, col := range sdColumns {
		v, ok := r[col]
		if !ok {
			return catalogtypes.CanonicalRow{}, fmt.Errorf("ingest: missing required SD column %q", col)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return catalogtypes.CanonicalRow{}, fmt.Errorf("ingest: bad %s value %q: %w", col, v, err)
		}
		zIndex = append(zIndex, sdZIndex[col])
		values = append(values, f)
	}

	p, derived, err := lms.EstimateFromSD(zIndex, values)
	if err != nil {
		if errors.Is(err, lms.ErrMissingMedian) {
			return catalogtypes.CanonicalRow{}, errs.Wrap(errs.MissingMedian, string(measurement), string(tax.Sex), x, err)
		}
		return catalogtypes.CanonicalRow{}, errs.Wrap(errs.BadLmsFit, string(measurement), string(tax.Sex), x, err)
	}
	base.L, base.M, base.S, base.IsDerived = p.L, p.M, p.S, derived
	return base, nil
}
