package grade

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradescan/pkg/gpx"
)

// flatTrack builds n points spaced 1 second apart, each 10 meters apart in
// x (latitude axis), flat in y and z. ele overrides elevation per index.
func flatTrack(n int, ele map[int]float64) []gpx.RawPoint {
	base := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	points := make([]gpx.RawPoint, n)
	for i := range points {
		z := 0.0
		if ele != nil {
			if v, ok := ele[i]; ok {
				z = v
			}
		}
		// 10 m in x = 10/111000 degrees of latitude
		lat := float64(i) * 10.0 / 111000.0
		points[i] = gpx.RawPoint{
			Lat:  fmt.Sprintf("%.12f", lat),
			Lon:  "0",
			Ele:  fmt.Sprintf("%g", z),
			Time: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339),
		}
	}
	return points
}

func TestScanFlatTrack(t *testing.T) {
	// 6 points, window 5: exactly one record, zero grade, 50 m, 5 s.
	s := NewScanner(5, 0)
	res, err := s.Scan(flatTrack(6, nil))
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	r := res.Records[0]
	assert.Equal(t, 5, r.Index)
	assert.InDelta(t, 0.0, r.Grade, 1e-9)
	assert.InDelta(t, 50.0, r.Distance, 1e-6)
	assert.InDelta(t, 5.0, r.Elapsed, 1e-9)
	assert.InDelta(t, 0.0, r.Elevation, 1e-9)
}

func TestScanFullGrade(t *testing.T) {
	// +50 m elevation over a 50 m horizontal run is a 100% grade (45°).
	s := NewScanner(5, 0)
	res, err := s.Scan(flatTrack(6, map[int]float64{5: 50}))
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.InDelta(t, 100.0, res.Records[0].Grade, 1e-6)
	assert.Equal(t, Extremum{Grade: res.Records[0].Grade, Index: 5}, res.Max)
}

func TestScanRecordCount(t *testing.T) {
	for _, n := range []int{5, 6, 10, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := NewScanner(5, 0)
			res, err := s.Scan(flatTrack(n, nil))
			require.NoError(t, err)
			assert.Len(t, res.Records, n-5)
		})
	}
}

func TestScanErrors(t *testing.T) {
	s := NewScanner(5, 0)

	_, err := s.Scan(nil)
	assert.ErrorIs(t, err, ErrEmptyTrack)

	_, err = s.Scan(flatTrack(4, nil))
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.ErrorContains(t, err, "4 points")
	assert.ErrorContains(t, err, "window size 5")
}

func TestScanMalformedPointAborts(t *testing.T) {
	points := flatTrack(10, nil)
	points[7].Ele = "bogus"

	s := NewScanner(5, 0)
	_, err := s.Scan(points)
	assert.ErrorIs(t, err, ErrMalformedElevation)
	assert.ErrorContains(t, err, "point 7")
}

func TestScanDegenerateWindow(t *testing.T) {
	// Duplicate planar coordinates for the whole track: run between lo and
	// hi is exactly zero and the grade is undefined.
	base := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	points := make([]gpx.RawPoint, 6)
	for i := range points {
		points[i] = gpx.RawPoint{
			Lat:  "46.5",
			Lon:  "11.35",
			Ele:  fmt.Sprintf("%d", 1200+i),
			Time: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339),
		}
	}

	s := NewScanner(5, 0)
	_, err := s.Scan(points)
	assert.ErrorIs(t, err, ErrDegenerateWindow)
	assert.ErrorContains(t, err, "points 0 and 5")
}

func TestScanSeriesMonotonic(t *testing.T) {
	// Rolling terrain: cumulative distance and time must still be
	// non-decreasing, and timestamps strictly ordered.
	ele := map[int]float64{}
	for i := 0; i < 40; i++ {
		ele[i] = float64((i * 7) % 13)
	}
	s := NewScanner(5, 0)
	res, err := s.Scan(flatTrack(40, ele))
	require.NoError(t, err)
	require.Len(t, res.Records, 35)

	for i := 1; i < len(res.Records); i++ {
		prev, cur := res.Records[i-1], res.Records[i]
		assert.Equal(t, prev.Index+1, cur.Index)
		assert.False(t, cur.Time.Before(prev.Time), "timestamps must be ordered")
		assert.GreaterOrEqual(t, cur.Distance, prev.Distance)
		assert.GreaterOrEqual(t, cur.Elapsed, prev.Elapsed)
	}
}

func TestScanExtremaBruteForce(t *testing.T) {
	ele := map[int]float64{}
	for i := 0; i < 30; i++ {
		ele[i] = float64((i*i*3)%17) - 8
	}
	s := NewScanner(5, 0)
	res, err := s.Scan(flatTrack(30, ele))
	require.NoError(t, err)

	max := res.Records[0]
	min := res.Records[0]
	for _, r := range res.Records[1:] {
		if r.Grade > max.Grade {
			max = r
		}
		if r.Grade < min.Grade {
			min = r
		}
	}
	assert.Equal(t, Extremum{Grade: max.Grade, Index: max.Index}, res.Max)
	assert.Equal(t, Extremum{Grade: min.Grade, Index: min.Index}, res.Min)
}

func TestScanGradeSignMatchesElevation(t *testing.T) {
	ele := map[int]float64{}
	for i := 0; i < 20; i++ {
		ele[i] = float64(i % 3 * 5)
	}
	s := NewScanner(5, 0)
	res, err := s.Scan(flatTrack(20, ele))
	require.NoError(t, err)

	for _, r := range res.Records {
		rise := ele[r.Index] - ele[r.Index-5]
		switch {
		case rise > 0:
			assert.Positive(t, r.Grade, "index %d", r.Index)
		case rise < 0:
			assert.Negative(t, r.Grade, "index %d", r.Index)
		default:
			assert.InDelta(t, 0.0, r.Grade, 1e-9, "index %d", r.Index)
		}
	}
}

func TestScanOutOfOrderTimestamps(t *testing.T) {
	// Out-of-order input is not repaired: the negative delta flows into
	// the cumulative time unclamped.
	points := flatTrack(6, nil)
	early := time.Date(2024, 7, 1, 7, 0, 0, 0, time.UTC)
	points[5].Time = early.Format(time.RFC3339)

	s := NewScanner(5, 0)
	res, err := s.Scan(points)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Less(t, res.Records[0].Elapsed, 0.0)
}

func TestNewScannerDefaults(t *testing.T) {
	s := NewScanner(0, 0)
	assert.Equal(t, DefaultWindowSize, s.WindowSize)
	assert.Equal(t, 111000.0, s.MetersPerDegree)
}
