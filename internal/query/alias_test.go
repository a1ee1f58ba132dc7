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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imec-int/growthref/internal/catalogtypes"
)

func TestResolveAliasCaseAndDashInsensitive(t *testing.T) {
	for _, alias := range []string{"HC", "hc", "Head-Circumference"} {
		m, ok := ResolveAlias(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, catalogtypes.MeasurementHeadCircumference, m)
	}
}

func TestResolveAliasWeightForStatureVariants(t *testing.T) {
	for _, alias := range []string{"wfl", "weight_for_length", "weight-height"} {
		m, ok := ResolveAlias(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, catalogtypes.MeasurementWeightStatureRatio, m)
	}
}

func TestResolveAliasVelocityIsIdentity(t *testing.T) {
	m, ok := ResolveAlias("weight_velocity")
	assert.True(t, ok)
	assert.Equal(t, catalogtypes.MeasurementWeightVelocity, m)
}

func TestResolveAliasUnknown(t *testing.T) {
	_, ok := ResolveAlias("not_a_real_measurement")
	assert.False(t, ok)
}
