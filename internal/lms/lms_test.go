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

package lms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueZRoundTripInterior(t *testing.T) {
	// for L != 0, v(z(Y)) == Y within 1e-9 relative error for |z| <= 3.
	p := Params{L: 0.3, M: 50, S: 0.1}
	for _, y := range []float64{40, 45, 50, 55, 60} {
		z, err := ZFromValue(y, p)
		require.NoError(t, err)
		require.True(t, math.Abs(z) <= 3)
		back, err := ValueFromZ(z, p)
		require.NoError(t, err)
		assert.InEpsilon(t, y, back, 1e-9)
	}
}

func TestLZeroIsLogForm(t *testing.T) {
	// for L == 0, z(Y) == ln(Y/M)/S, exact inverse of v over all reals.
	p := Params{L: 0, M: 50, S: 0.1}
	y := 73.2
	z, err := ZFromValue(y, p)
	require.NoError(t, err)
	want := math.Log(y/p.M) / p.S
	assert.InDelta(t, want, z, 1e-12)

	back, err := ValueFromZ(z, p)
	require.NoError(t, err)
	assert.InEpsilon(t, y, back, 1e-12)
}

func TestPercentileAtMedianIsHalf(t *testing.T) {
	// Phi(z(M)) == 0.5 exactly.
	for _, p := range []Params{{L: 0.3, M: 50, S: 0.1}, {L: 0, M: 12, S: 0.2}, {L: -0.5, M: 3.4, S: 0.13}} {
		pct, err := Percentile(p.M, p)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, pct, 1e-12)
	}
}

func TestPercentileMonotoneInValue(t *testing.T) {
	// strictly monotone increasing in the interior region.
	p := Params{L: 0.2, M: 20, S: 0.15}
	prev := -1.0
	for v := 15.0; v <= 25.0; v += 0.5 {
		pct, err := Percentile(v, p)
		require.NoError(t, err)
		assert.Greater(t, pct, prev)
		prev = pct
	}
}

func TestExtremeTailCorrection(t *testing.T) {
	p := Params{L: 0.3, M: 50, S: 0.1}
	sd3, err := ValueFromZ(3, p)
	require.NoError(t, err)
	sd2, err := ValueFromZ(2, p)
	require.NoError(t, err)

	beyond := sd3 + (sd3-sd2)*1.5 // corresponds to z = 4.5 under linear extrapolation
	z, err := ZFromValue(beyond, p)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, z, 1e-9)

	back, err := ValueFromZ(z, p)
	require.NoError(t, err)
	assert.InDelta(t, beyond, back, 1e-9)
}

func TestNoTailCorrectionWhenLIsOne(t *testing.T) {
	p := Params{L: 1, M: 10, S: 0.2}
	y := 10 * (1 + 1*0.2*5) // z = 5 in the raw linear form
	z, err := ZFromValue(y, p)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, z, 1e-9)
}

func TestInterpolateExactHit(t *testing.T) {
	x := []float64{0, 30, 60, 90}
	l := []float64{0.1, 0.2, 0.3, 0.4}
	m := []float64{3, 4, 5, 6}
	s := []float64{0.1, 0.11, 0.12, 0.13}

	// exact sample returns that sample without interpolation.
	got, err := Interpolate(x, l, m, s, 60, 4)
	require.NoError(t, err)
	assert.Equal(t, Params{L: 0.3, M: 5, S: 0.12}, got)
}

func TestInterpolateBetweenSamples(t *testing.T) {
	x := []float64{0, 30, 60, 90}
	l := []float64{0.1, 0.2, 0.3, 0.4}
	m := []float64{3, 4, 5, 6}
	s := []float64{0.1, 0.11, 0.12, 0.13}

	got, err := Interpolate(x, l, m, s, 45, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got.L, 1e-9)
	assert.InDelta(t, 4.5, got.M, 1e-9)
}

func TestInterpolateOutOfRange(t *testing.T) {
	// just inside bounds interpolates; at min - epsilon it errors.
	x := []float64{10, 20, 30}
	l := []float64{0.1, 0.1, 0.1}
	m := []float64{1, 2, 3}
	s := []float64{0.1, 0.1, 0.1}

	_, err := Interpolate(x, l, m, s, 9.999, 4)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Interpolate(x, l, m, s, 10.001, 4)
	assert.NoError(t, err)
}

func TestEstimateFromSDRequiresMedian(t *testing.T) {
	_, _, err := EstimateFromSD([]float64{-3, -2, -1, 1, 2, 3}, []float64{1, 2, 3, 5, 6, 7})
	assert.ErrorIs(t, err, ErrMissingMedian)
}

func TestEstimateFromSDRecoversKnownParams(t *testing.T) {
	want := Params{L: 0.25, M: 10, S: 0.12}
	zIndex := []float64{-3, -2, -1, 0, 1, 2, 3}
	values := make([]float64, len(zIndex))
	for i, z := range zIndex {
		values[i] = valueFromInteriorZ(z, want)
	}

	got, derived, err := EstimateFromSD(zIndex, values)
	require.NoError(t, err)
	assert.True(t, derived)
	assert.InDelta(t, want.M, got.M, 1e-12)
	assert.InDelta(t, want.L, got.L, 1e-2)
	assert.InDelta(t, want.S, got.S, 1e-2)
}
