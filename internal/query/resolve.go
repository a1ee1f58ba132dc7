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
	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/errs"
)

// daysPerYear and daysPerWeek mirror the ingest pipeline's conventions;
// table-selection boundaries are expressed in the same day-denominated x
// axis every catalog row is normalized to.
const daysPerYear = 365.25
const daysPerWeek = 7

// AgeInput is a struct-of-optionals standing in for the source's tagged
// age/gestational-age union: Go has no sum type, so at most one, the other,
// or both fields may be set, and Resolve reads them accordingly.
type AgeInput struct {
	AgeDays            *float64
	GestationalAgeDays *float64
}

// Resolution is the outcome of resolving a query into a concrete catalog
// lookup: which table to ask for, and which x axis it was asked on.
type Resolution struct {
	Table    catalogtypes.TableName
	XVarType catalogtypes.XVarType
	X        float64
}

// Resolve implements the table-selection rules: it never touches the
// catalog itself, only classifies the query into the slice that should
// contain the answer.
func Resolve(measurement catalogtypes.MeasurementType, sex catalogtypes.Sex, age AgeInput) (Resolution, error) {
	if age.AgeDays == nil && age.GestationalAgeDays == nil {
		return Resolution{}, errs.New(errs.MissingAge, string(measurement), string(sex), 0)
	}

	if age.AgeDays != nil {
		return resolveByAge(measurement, sex, *age.AgeDays, age.GestationalAgeDays)
	}
	return resolveByGestationalAge(measurement, sex, *age.GestationalAgeDays)
}

func resolveByAge(measurement catalogtypes.MeasurementType, sex catalogtypes.Sex, ageDays float64, gestationalAgeDays *float64) (Resolution, error) {
	// At birth there is no postnatal-age table to resolve into; fall back to
	// the gestational-age rule so a caller who passes age_days=0 alongside
	// gestational_age at birth still reaches the newborn/very-preterm-newborn
	// standards rather than a child_growth lookup at x=0.
	if ageDays == 0 && gestationalAgeDays != nil {
		return resolveByGestationalAge(measurement, sex, *gestationalAgeDays)
	}

	switch measurement {
	case catalogtypes.MeasurementHeadCircumference, catalogtypes.MeasurementWeightStatureRatio:
		if ageDays > 5*daysPerYear {
			return Resolution{}, errs.New(errs.NoReferenceForRange, string(measurement), string(sex), ageDays)
		}
	case catalogtypes.MeasurementWeight:
		if ageDays > 10*daysPerYear {
			return Resolution{}, errs.New(errs.NoReferenceForRange, string(measurement), string(sex), ageDays)
		}
	}

	table := catalogtypes.TableChildGrowth
	if ageDays > 5*daysPerYear {
		table = catalogtypes.TableGrowth
	}

	if gestationalAgeDays != nil && *gestationalAgeDays < 28*daysPerWeek && ageDays < 64*daysPerWeek {
		table = catalogtypes.TableVeryPretermGrowth
	}

	return Resolution{Table: table, XVarType: catalogtypes.XVarAge, X: ageDays}, nil
}

func resolveByGestationalAge(measurement catalogtypes.MeasurementType, sex catalogtypes.Sex, gestationalAgeDays float64) (Resolution, error) {
	gestationalAgeWeeks := gestationalAgeDays / daysPerWeek

	if measurement == catalogtypes.MeasurementBodyMassIndex && gestationalAgeWeeks < 28 {
		return Resolution{}, errs.New(errs.NoReferenceForAge, string(measurement), string(sex), gestationalAgeDays)
	}
	if measurement == catalogtypes.MeasurementWeightStatureRatio && gestationalAgeWeeks > 28 {
		return Resolution{}, errs.New(errs.NoReferenceForRange, string(measurement), string(sex), gestationalAgeDays)
	}

	table := catalogtypes.TableVeryPretermNewborn
	if gestationalAgeWeeks > 28 {
		table = catalogtypes.TableNewborn
	}

	return Resolution{Table: table, XVarType: catalogtypes.XVarGestationalAge, X: gestationalAgeDays}, nil
}
