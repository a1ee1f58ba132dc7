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
	"sort"

	"github.com/imec-int/growthref/internal/catalogtypes"
	"github.com/imec-int/growthref/internal/lms"
)

// Table is a short-lived, read-only view over one catalog slice: four
// parallel numeric axes plus the derivation flag, strictly increasing in X.
// It never mutates the catalog it was materialized from.
type Table struct {
	Key       catalogtypes.SliceKey
	X         []float64
	L         []float64
	M         []float64
	S         []float64
	IsDerived []bool
}

func newTable(key catalogtypes.SliceKey, rows []catalogtypes.CanonicalRow) *Table {
	t := &Table{
		Key:       key,
		X:         make([]float64, len(rows)),
		L:         make([]float64, len(rows)),
		M:         make([]float64, len(rows)),
		S:         make([]float64, len(rows)),
		IsDerived: make([]bool, len(rows)),
	}
	for i, r := range rows {
		t.X[i], t.L[i], t.M[i], t.S[i], t.IsDerived[i] = r.X, r.L, r.M, r.S, r.IsDerived
	}
	return t
}

// Cut narrows the view to x in [lo, hi], inclusive. It returns a new table;
// the receiver is left untouched.
func (t *Table) Cut(lo, hi float64) *Table {
	out := &Table{Key: t.Key}
	for i, x := range t.X {
		if x < lo || x > hi {
			continue
		}
		out.X = append(out.X, x)
		out.L = append(out.L, t.L[i])
		out.M = append(out.M, t.M[i])
		out.S = append(out.S, t.S[i])
		out.IsDerived = append(out.IsDerived, t.IsDerived[i])
	}
	return out
}

// ChildPoint is one overlay observation merged onto a table's x axis by
// AddChildData: a subject's own measurement at a given x.
type ChildPoint struct {
	X float64
	Y *float64
}

// AddChildData merges external (xs, ys) observations onto the table's x
// axis by union, sorted and deduplicated, so a caller can align overlay
// points against a reference curve without mutating the catalog. Positions
// that only exist in the table get a nil y. No L/M/S is computed for
// overlay-only positions; that is left to At, called separately by the
// caller. xs and ys must be the same length; AddChildData panics otherwise.
func (t *Table) AddChildData(xs, ys []float64) []ChildPoint {
	if len(xs) != len(ys) {
		panic("catalog: AddChildData: xs and ys must be the same length")
	}
	merged := make(map[float64]*float64, len(t.X)+len(xs))
	for _, x := range t.X {
		if _, ok := merged[x]; !ok {
			merged[x] = nil
		}
	}
	for i, x := range xs {
		y := ys[i]
		merged[x] = &y
	}

	out := make([]ChildPoint, 0, len(merged))
	for x, y := range merged {
		out = append(out, ChildPoint{X: x, Y: y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// ValuesAtZ evaluates v(z; L, M, S) at every x of the table, for each
// requested z, using the kernel's extreme-tail-corrected inversion.
func (t *Table) ValuesAtZ(z []float64) ([][]float64, error) {
	out := make([][]float64, len(z))
	for zi, zv := range z {
		row := make([]float64, len(t.X))
		for i := range t.X {
			p := lms.Params{L: t.L[i], M: t.M[i], S: t.S[i]}
			v, err := lms.ValueFromZ(zv, p)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		out[zi] = row
	}
	return out, nil
}

// At returns the LMS parameters interpolated at x, restricted to the
// nPoints nearest samples before linear interpolation.
func (t *Table) At(x float64, nPoints int) (lms.Params, error) {
	return lms.Interpolate(t.X, t.L, t.M, t.S, x, nPoints)
}
