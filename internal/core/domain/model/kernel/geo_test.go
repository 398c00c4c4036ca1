package kernel_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(41.015137, 28.979530)

		require.NoError(t, err)
		assert.InDelta(t, 41.015137, p.Latitude(), 1e-9)
		assert.InDelta(t, 28.979530, p.Longitude(), 1e-9)
		assert.NoError(t, p.Validate())
	})

	t.Run("should reject latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)
		require.Error(t, err)

		_, err = kernel.NewGeoPoint(-91, 0)
		require.Error(t, err)
	})

	t.Run("should reject longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, 181)
		require.Error(t, err)

		_, err = kernel.NewGeoPoint(0, -181)
		require.Error(t, err)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint
		require.ErrorIs(t, p.Validate(), kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestGeoPointInterpolateToward(t *testing.T) {
	start, err := kernel.NewGeoPoint(40, 28)
	require.NoError(t, err)
	target, err := kernel.NewGeoPoint(41, 29)
	require.NoError(t, err)

	t.Run("fraction zero stays at start", func(t *testing.T) {
		p, interpErr := start.InterpolateToward(target, 0)
		require.NoError(t, interpErr)

		equal, eqErr := p.IsEqual(start)
		require.NoError(t, eqErr)
		assert.True(t, equal)
	})

	t.Run("fraction one reaches target", func(t *testing.T) {
		p, interpErr := start.InterpolateToward(target, 1)
		require.NoError(t, interpErr)

		equal, eqErr := p.IsEqual(target)
		require.NoError(t, eqErr)
		assert.True(t, equal)
	})

	t.Run("halfway point is the midpoint", func(t *testing.T) {
		p, interpErr := start.InterpolateToward(target, 0.5)
		require.NoError(t, interpErr)

		assert.InDelta(t, 40.5, p.Latitude(), 1e-9)
		assert.InDelta(t, 28.5, p.Longitude(), 1e-9)
	})

	t.Run("rejects fraction out of range", func(t *testing.T) {
		_, interpErr := start.InterpolateToward(target, 1.5)
		require.Error(t, interpErr)
	})
}

func TestGeoPointWithJitter(t *testing.T) {
	start, err := kernel.NewGeoPoint(41, 29)
	require.NoError(t, err)

	t.Run("jittered point stays within delta", func(t *testing.T) {
		const maxDelta = 0.001

		for range 50 {
			p, jitterErr := start.WithJitter(maxDelta)
			require.NoError(t, jitterErr)
			assert.InDelta(t, start.Latitude(), p.Latitude(), maxDelta)
			assert.InDelta(t, start.Longitude(), p.Longitude(), maxDelta)
		}
	})

	t.Run("rejects negative delta", func(t *testing.T) {
		_, jitterErr := start.WithJitter(-0.1)
		require.Error(t, jitterErr)
	})

	t.Run("clamps to coordinate bounds", func(t *testing.T) {
		edge, edgeErr := kernel.NewGeoPoint(kernel.LatitudeMax, kernel.LongitudeMax)
		require.NoError(t, edgeErr)

		p, jitterErr := edge.WithJitter(1)
		require.NoError(t, jitterErr)
		assert.LessOrEqual(t, p.Latitude(), kernel.LatitudeMax)
		assert.LessOrEqual(t, p.Longitude(), kernel.LongitudeMax)
	})
}
