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

// Package catalogtypes defines the closed controlled vocabularies shared by
// ingest, catalog and query. These are the only place raw strings are
// trusted to mean something; every other package consumes the typed values.
package catalogtypes

import "fmt"

// Source identifies which published standard a row comes from.
type Source string

const (
	SourceWHO          Source = "who"
	SourceIntergrowth  Source = "intergrowth"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWHO, SourceIntergrowth:
		return true
	}
	return false
}

// Sex is the subject's sex as recorded in a reference table. U is a
// query-time alias for F and is never stored.
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Normalize coerces U to F at query time. It is distinct from ingest's own
// load-time handling of rows with missing sex metadata.
func (s Sex) Normalize() Sex {
	if s == SexUnknown {
		return SexFemale
	}
	return s
}

// XVarType names what the x-axis of a table measures.
type XVarType string

const (
	XVarAge             XVarType = "age"
	XVarGestationalAge  XVarType = "gestational_age"
	XVarStature         XVarType = "stature"
)

func (t XVarType) Valid() bool {
	switch t {
	case XVarAge, XVarGestationalAge, XVarStature:
		return true
	}
	return false
}

// XVarUnit is the unit of the x-axis value.
type XVarUnit string

const (
	UnitDay XVarUnit = "day"
	UnitCM  XVarUnit = "cm"
)

func (u XVarUnit) Valid() bool {
	switch u {
	case UnitDay, UnitCM:
		return true
	}
	return false
}

// TableName identifies the originating reference table.
type TableName string

const (
	TableGrowth               TableName = "growth"
	TableChildGrowth          TableName = "child_growth"
	TableVeryPretermGrowth    TableName = "very_preterm_growth"
	TableVeryPretermNewborn   TableName = "very_preterm_newborn"
	TableNewborn              TableName = "newborn"
)

func (n TableName) Valid() bool {
	switch n {
	case TableGrowth, TableChildGrowth, TableVeryPretermGrowth, TableVeryPretermNewborn, TableNewborn:
		return true
	}
	return false
}

// AgeGroup identifies the age band a row's table slice spans.
type AgeGroup string

const (
	AgeGroup0To1               AgeGroup = "0-1"
	AgeGroup0To2               AgeGroup = "0-2"
	AgeGroup2To5               AgeGroup = "2-5"
	AgeGroup5To10              AgeGroup = "5-10"
	AgeGroup10To19             AgeGroup = "10-19"
	AgeGroupNewborn            AgeGroup = "newborn"
	AgeGroupVeryPretermNewborn AgeGroup = "very_preterm_newborn"
	AgeGroupVeryPretermGrowth  AgeGroup = "very_preterm_growth"
)

func (g AgeGroup) Valid() bool {
	switch g {
	case AgeGroup0To1, AgeGroup0To2, AgeGroup2To5, AgeGroup5To10, AgeGroup10To19,
		AgeGroupNewborn, AgeGroupVeryPretermNewborn, AgeGroupVeryPretermGrowth:
		return true
	}
	return false
}

// MeasurementType is the canonical, alias-resolved measurement kind.
type MeasurementType string

const (
	MeasurementStature                   MeasurementType = "stature"
	MeasurementWeight                    MeasurementType = "weight"
	MeasurementWeightStatureRatio        MeasurementType = "weight_stature_ratio"
	MeasurementHeadCircumference         MeasurementType = "head_circumference"
	MeasurementBodyMassIndex             MeasurementType = "body_mass_index"
	MeasurementWeightVelocity            MeasurementType = "weight_velocity"
	MeasurementLengthVelocity            MeasurementType = "length_velocity"
	MeasurementHeadCircumferenceVelocity MeasurementType = "head_circumference_velocity"
)

func (m MeasurementType) Valid() bool {
	switch m {
	case MeasurementStature, MeasurementWeight, MeasurementWeightStatureRatio, MeasurementHeadCircumference,
		MeasurementBodyMassIndex, MeasurementWeightVelocity, MeasurementLengthVelocity, MeasurementHeadCircumferenceVelocity:
		return true
	}
	return false
}

// SliceKey identifies a catalog slice: within one slice, x values are
// unique and sortable.
type SliceKey struct {
	TableName       TableName
	AgeGroup        AgeGroup
	Sex             Sex
	MeasurementType MeasurementType
	XVarType        XVarType
	XVarUnit        XVarUnit
}

func (k SliceKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s", k.TableName, k.AgeGroup, k.Sex, k.MeasurementType, k.XVarType, k.XVarUnit)
}

// RowKey identifies a single stored row, unique across the whole catalog.
type RowKey struct {
	Source Source
	Slice  SliceKey
	X      float64
}

// CanonicalRow is the unit stored in the catalog: one LMS triple at one x,
// for one fully-qualified slice. x is normalized to the slice's XVarUnit.
type CanonicalRow struct {
	Source          Source
	TableName       TableName
	AgeGroup        AgeGroup
	Sex             Sex
	MeasurementType MeasurementType
	XVarType        XVarType
	XVarUnit        XVarUnit
	X               float64
	L               float64
	M               float64
	S               float64
	IsDerived       bool
}

// Slice returns the row's catalog slice key.
func (r CanonicalRow) Slice() SliceKey {
	return SliceKey{
		TableName:       r.TableName,
		AgeGroup:        r.AgeGroup,
		Sex:             r.Sex,
		MeasurementType: r.MeasurementType,
		XVarType:        r.XVarType,
		XVarUnit:        r.XVarUnit,
	}
}

// Key returns the row's unique catalog key.
func (r CanonicalRow) Key() RowKey {
	return RowKey{Source: r.Source, Slice: r.Slice(), X: r.X}
}
