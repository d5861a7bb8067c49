package location

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Tehran to Isfahan, roughly 340 km.
	d := HaversineKm(35.6892, 51.3890, 32.6546, 51.6680)
	require.InDelta(t, 338, d, 10)
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	require.InDelta(t, 0, HaversineKm(35.7, 51.4, 35.7, 51.4), 1e-9)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	lat, lng := 35.7, 51.4
	minLat, maxLat, minLng, maxLng := BoundingBox(lat, lng, 10)
	require.Less(t, minLat, lat)
	require.Greater(t, maxLat, lat)
	require.Less(t, minLng, lng)
	require.Greater(t, maxLng, lng)

	// Every corner of the box is at least the radius away from center.
	for _, corner := range [][2]float64{
		{minLat, minLng}, {minLat, maxLng}, {maxLat, minLng}, {maxLat, maxLng},
	} {
		require.GreaterOrEqual(t, HaversineKm(lat, lng, corner[0], corner[1]), 10.0)
	}
}
