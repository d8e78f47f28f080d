package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointCacheGet(t *testing.T) {
	points := flatTrack(6, map[int]float64{2: 7.5})
	c := newPointCache(points, 111000)

	first, err := c.get(2)
	require.NoError(t, err)
	second, err := c.get(2)
	require.NoError(t, err)

	// Repeated access must be bit-identical and must not re-invoke the
	// parser: one miss on first touch, hits thereafter.
	assert.Equal(t, first, second)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, c.stats)
	assert.InDelta(t, 7.5, first.Z, 1e-9)
}

func TestPointCacheParseFailureNotCached(t *testing.T) {
	points := flatTrack(3, nil)
	points[1].Time = "not-a-timestamp"
	c := newPointCache(points, 111000)

	_, err := c.get(1)
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
	assert.ErrorContains(t, err, "point 1")

	// The failure is not stored as a populated entry.
	assert.False(t, c.populated[1])
	assert.Equal(t, CacheStats{}, c.stats)

	// Other indices are unaffected.
	_, err = c.get(0)
	assert.NoError(t, err)
}

func TestPointCacheFullScanParsesEachIndexOnce(t *testing.T) {
	n := 24
	s := NewScanner(5, 0)
	res, err := s.Scan(flatTrack(n, nil))
	require.NoError(t, err)

	// A point serves as window endpoint and accumulator operand, but the
	// parser runs exactly once per index across the whole scan.
	assert.Equal(t, int64(n), res.Cache.Misses)
	assert.Positive(t, res.Cache.Hits)
}
