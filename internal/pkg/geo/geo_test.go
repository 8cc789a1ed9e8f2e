package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// northOf returns the point d meters due north of the origin.
func northOf(d float64) *Point {
	return &Point{Latitude: (d / EarthRadiusMeters) * 180 / math.Pi, Longitude: 0}
}

func TestDistanceMeters(t *testing.T) {
	assert.InDelta(t, 0, DistanceMeters(Point{10, 10}, Point{10, 10}), 1e-9)
	assert.InDelta(t, 99, DistanceMeters(Point{}, *northOf(99)), 1e-6)

	// Two points in Maxixe, roughly 3.7 km apart.
	d := DistanceMeters(Point{-23.8597, 35.3472}, Point{-23.8650, 35.3833})
	assert.InDelta(t, 3700, d, 100)
}

func TestFence_Boundary(t *testing.T) {
	fence := Fence{Office: &Point{0, 0}, MaxMeters: 100}

	assert.NoError(t, fence.Validate(northOf(99)))

	err := fence.Validate(northOf(101))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooFar))

	var tooFar *TooFarError
	require.True(t, errors.As(err, &tooFar))
	assert.InDelta(t, 101, tooFar.Distance, 1e-6)
	assert.Equal(t, "too far from the office (101m, max 100m)", tooFar.Error())
}

func TestFence_LocationRequired(t *testing.T) {
	fence := Fence{Office: &Point{-23.86, 35.35}, MaxMeters: 100}
	assert.ErrorIs(t, fence.Validate(nil), ErrLocationRequired)
}

func TestFence_Disabled(t *testing.T) {
	fence := Fence{MaxMeters: 100}

	assert.False(t, fence.Enabled())
	assert.NoError(t, fence.Validate(nil))
	assert.NoError(t, fence.Validate(&Point{48.85, 2.35}))
}

func TestNewPoint(t *testing.T) {
	lat, lng := -23.86, 35.35
	assert.Nil(t, NewPoint(nil, &lng))
	assert.Nil(t, NewPoint(&lat, nil))
	assert.Equal(t, &Point{Latitude: lat, Longitude: lng}, NewPoint(&lat, &lng))
}
