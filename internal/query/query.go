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

package query

import (
	"errors"

	"github.com/imec-int/growthref/internal/catalog"
	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/errs"
	"github.com/imec-int/growthref/internal/lms"
)

// defaultNPoints is the number of nearest samples the kernel restricts
// interpolation to by default.
const defaultNPoints = 4

// Engine evaluates zscore/percentile queries against a loaded catalog.
type Engine struct {
	Catalog *catalog.Catalog
}

// NewEngine wraps an already-built catalog for querying.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{Catalog: c}
}

// ZScore resolves measurement+sex+age to a catalog slice, interpolates LMS
// at x, and returns the extreme-tail-corrected z-score for value.
func (e *Engine) ZScore(measurementAlias string, value float64, sex string, age AgeInput) (float64, error) {
	p, err := e.paramsAt(measurementAlias, sex, age)
	if err != nil {
		return 0, err
	}
	z, err := lms.ZFromValue(value, p)
	if err != nil {
		return 0, errs.Wrap(errs.OutOfRange, measurementAlias, sex, value, err)
	}
	return z, nil
}

// Percentile is ZScore followed by the kernel's standard-normal CDF.
func (e *Engine) Percentile(measurementAlias string, value float64, sex string, age AgeInput) (float64, error) {
	p, err := e.paramsAt(measurementAlias, sex, age)
	if err != nil {
		return 0, err
	}
	pct, err := lms.Percentile(value, p)
	if err != nil {
		return 0, errs.Wrap(errs.OutOfRange, measurementAlias, sex, value, err)
	}
	return pct, nil
}

func (e *Engine) paramsAt(measurementAlias string, sex string, age AgeInput) (lms.Params, error) {
	measurement, ok := ResolveAlias(measurementAlias)
	if !ok {
		return lms.Params{}, errs.New(errs.UnknownMeasurement, measurementAlias, sex, 0)
	}

	typedSex := catalogtypes.Sex(sex).Normalize()

	resolution, err := Resolve(measurement, typedSex, age)
	if err != nil {
		return lms.Params{}, err
	}

	table, err := e.Catalog.GetTable(resolution.Table, "", measurement, typedSex, resolution.XVarType)
	if err != nil {
		return lms.Params{}, err
	}

	p, err := table.At(resolution.X, defaultNPoints)
	if err != nil {
		if errors.Is(err, lms.ErrOutOfRange) {
			return lms.Params{}, errs.New(errs.OutOfRange, measurementAlias, sex, resolution.X)
		}
		return lms.Params{}, errs.Wrap(errs.OutOfRange, measurementAlias, sex, resolution.X, err)
	}
	return p, nil
}
