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

// Package lms implements the Box-Cox-power/median/coefficient-of-variation
// (LMS) numeric kernel: z-from-value, value-from-z, the mandatory extreme-
// tail correction, the standard normal CDF, sorted-axis interpolation, and
// the SD-column LMS estimator used at ingest time. No I/O, no catalog
// awareness, pure functions only.
package lms

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrNonPositiveS is returned when S <= 0, which makes the LMS
// transformation undefined.
var ErrNonPositiveS = errors.New("lms: S must be positive")

// ErrNaN is returned when an input to a kernel function is NaN.
var ErrNaN = errors.New("lms: input is NaN")

// Params is one (L, M, S) triple at a fixed x.
type Params struct {
	L, M, S float64
}

func (p Params) validate() error {
	if math.IsNaN(p.L) || math.IsNaN(p.M) || math.IsNaN(p.S) {
		return ErrNaN
	}
	if p.S <= 0 {
		return ErrNonPositiveS
	}
	return nil
}

// valueFromInteriorZ computes Y from z without the extreme-tail correction.
func valueFromInteriorZ(z float64, p Params) float64 {
	if p.L == 0 {
		return p.M * math.Exp(p.S*z)
	}
	return p.M * math.Pow(1+p.L*p.S*z, 1/p.L)
}

// zFromInteriorValue computes z from Y without the extreme-tail correction.
func zFromInteriorValue(y float64, p Params) float64 {
	if p.L == 0 {
		return math.Log(y/p.M) / p.S
	}
	return (math.Pow(y/p.M, p.L) - 1) / (p.L * p.S)
}

// ZFromValue converts a measured value Y to a z-score under the LMS
// parameterization, applying the extreme-tail correction mandated for
// |z| > 3 when L != 1.
func ZFromValue(y float64, p Params) (float64, error) {
	if math.IsNaN(y) {
		return 0, ErrNaN
	}
	if err := p.validate(); err != nil {
		return 0, err
	}
	z := zFromInteriorValue(y, p)
	if p.L == 1 {
		return z, nil
	}
	if z > 3 {
		sd3 := valueFromInteriorZ(3, p)
		sd2 := valueFromInteriorZ(2, p)
		return 3 + (y-sd3)/(sd3-sd2), nil
	}
	if z < -3 {
		sd3n := valueFromInteriorZ(-3, p)
		sd2n := valueFromInteriorZ(-2, p)
		return -3 + (y-sd3n)/(sd2n-sd3n), nil
	}
	return z, nil
}

// ValueFromZ converts a z-score to a measured value Y, extrapolating
// linearly beyond |z| > 3 when L != 1, matching ZFromValue's correction.
func ValueFromZ(z float64, p Params) (float64, error) {
	if math.IsNaN(z) {
		return 0, ErrNaN
	}
	if err := p.validate(); err != nil {
		return 0, err
	}
	if p.L == 1 || (z >= -3 && z <= 3) {
		return valueFromInteriorZ(z, p), nil
	}
	if z > 3 {
		sd3 := valueFromInteriorZ(3, p)
		sd2 := valueFromInteriorZ(2, p)
		return sd3 + (sd3-sd2)*(z-3), nil
	}
	sd3n := valueFromInteriorZ(-3, p)
	sd2n := valueFromInteriorZ(-2, p)
	return sd3n + (sd2n-sd3n)*(z+3), nil
}

// NormalCDF is the standard normal cumulative distribution function,
// computed from the complementary error function for full double precision.
func NormalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

// Percentile converts a value to the cumulative-normal percentile in [0, 1].
func Percentile(y float64, p Params) (float64, error) {
	z, err := ZFromValue(y, p)
	if err != nil {
		return 0, err
	}
	return NormalCDF(z), nil
}

// ErrOutOfRange is returned when an interpolation query falls outside the
// axis's [min, max] bounds.
var ErrOutOfRange = errors.New("lms: x is out of range")

// Interpolate performs piecewise-linear interpolation of (l, m, s) at q over
// a strictly increasing axis x, restricted to the nPoints samples nearest q
// before interpolating (WHO and INTERGROWTH-21st tables default to the 4
// nearest tabulated ages). An exact hit on a sample returns that sample's
// triple without interpolation. q outside [x[0], x[len(x)-1]] is an error.
func Interpolate(x []float64, l, m, s []float64, q float64, nPoints int) (Params, error) {
	n := len(x)
	if n == 0 {
		return Params{}, fmt.Errorf("lms: empty axis")
	}
	if q < x[0] || q > x[n-1] {
		return Params{}, ErrOutOfRange
	}
	for i, xi := range x {
		if xi == q {
			return Params{L: l[i], M: m[i], S: s[i]}, nil
		}
	}
	if nPoints <= 0 || nPoints > n {
		nPoints = n
	}
	idxs := nearestIndices(x, q, nPoints)
	return linearInterp(x, l, m, s, idxs, q), nil
}

// nearestIndices returns, in ascending order, the indices of the nPoints
// samples of x nearest to q.
func nearestIndices(x []float64, q float64, nPoints int) []int {
	dists := make([]float64, len(x))
	for i, xi := range x {
		dists[i] = math.Abs(xi - q)
	}
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	floats.Argsort(dists, order)

	idxs := append([]int(nil), order[:nPoints]...)
	sort.Ints(idxs)
	return idxs
}

// linearInterp performs two-point linear interpolation against the
// bracketing pair within the supplied index subset.
func linearInterp(x, l, m, s []float64, idxs []int, q float64) Params {
	lo, hi := idxs[0], idxs[len(idxs)-1]
	for i := 0; i < len(idxs)-1; i++ {
		if x[idxs[i]] <= q && q <= x[idxs[i+1]] {
			lo, hi = idxs[i], idxs[i+1]
			break
		}
	}
	if lo == hi {
		return Params{L: l[lo], M: m[lo], S: s[lo]}
	}
	t := (q - x[lo]) / (x[hi] - x[lo])
	return Params{
		L: l[lo] + t*(l[hi]-l[lo]),
		M: m[lo] + t*(m[hi]-m[lo]),
		S: s[lo] + t*(s[hi]-s[lo]),
	}
}
