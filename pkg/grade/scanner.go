package grade

import (
	"fmt"
	"math"
	"time"

	"gradescan/pkg/geo"
	"gradescan/pkg/gpx"
)

// DefaultWindowSize is the index offset between a window's trailing and
// leading point. Grade is measured over this span rather than between
// adjacent samples to damp per-sample GPS noise.
const DefaultWindowSize = 5

// Record is one output row of the scan, produced at window position hi.
type Record struct {
	Index     int       // hi index the record was produced at
	Time      time.Time // timestamp of the leading point
	Elapsed   float64   // cumulative time in seconds since the scan start
	Distance  float64   // cumulative 3D distance in meters
	Elevation float64   // elevation of the leading point in meters
	Grade     float64   // rise over horizontal run, percent (100 = 45°)
}

// Extremum is a grade value together with the hi index it occurred at.
type Extremum struct {
	Grade float64
	Index int
}

// Result is the complete output of one scan.
type Result struct {
	Records []Record
	Max     Extremum
	Min     Extremum
	Cache   CacheStats
}

// Scanner slides a fixed-size window across a point sequence and emits one
// Record per window position. A Scanner is cheap and reusable; the cache
// and accumulators live per Scan call.
type Scanner struct {
	WindowSize      int
	MetersPerDegree float64
}

// NewScanner returns a Scanner with the given window size; zero or negative
// values fall back to the defaults.
func NewScanner(windowSize int, metersPerDegree float64) *Scanner {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if metersPerDegree <= 0 {
		metersPerDegree = geo.DefaultMetersPerDegree
	}
	return &Scanner{WindowSize: windowSize, MetersPerDegree: metersPerDegree}
}

// Scan produces the full series of Records plus the grade extrema.
//
// Distance and time accumulate incrementally: the first window is summed in
// full, every later step adds only the newly entered segment [hi-1, hi],
// giving O(N) accumulation work overall instead of O(N·WindowSize).
//
// The whole scan fails on the first malformed point or degenerate window;
// a corrupt point invalidates every cumulative sum after it, so there is no
// partial-result path.
func (s *Scanner) Scan(points []gpx.RawPoint) (*Result, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrEmptyTrack
	}
	if n < s.WindowSize {
		return nil, fmt.Errorf("%w: have %d points, window size %d",
			ErrInsufficientPoints, n, s.WindowSize)
	}

	cache := newPointCache(points, s.MetersPerDegree)
	acc := &segmentAccumulator{cache: cache}

	res := &Result{
		Records: make([]Record, 0, n-s.WindowSize),
		Max:     Extremum{Grade: math.Inf(-1), Index: -1},
		Min:     Extremum{Grade: math.Inf(1), Index: -1},
	}

	var totalDist, totalTime float64

	for lo, hi := 0, s.WindowSize; hi < n; lo, hi = lo+1, hi+1 {
		trailing, err := cache.get(lo)
		if err != nil {
			return nil, err
		}
		leading, err := cache.get(hi)
		if err != nil {
			return nil, err
		}

		// The window interior was already summed on the first iteration;
		// afterwards only the newly entered step needs accumulating.
		from := hi - 1
		if lo == 0 {
			from = 0
		}
		dist, secs, err := acc.accumulate(from, hi)
		if err != nil {
			return nil, err
		}
		totalDist += dist
		totalTime += secs

		run := geo.Dist2D(trailing.X, trailing.Y, leading.X, leading.Y)
		if run == 0 {
			return nil, fmt.Errorf("%w: points %d and %d", ErrDegenerateWindow, lo, hi)
		}
		pct := 100 * (leading.Z - trailing.Z) / run

		if pct > res.Max.Grade {
			res.Max = Extremum{Grade: pct, Index: hi}
		}
		if pct < res.Min.Grade {
			res.Min = Extremum{Grade: pct, Index: hi}
		}

		res.Records = append(res.Records, Record{
			Index:     hi,
			Time:      leading.Time,
			Elapsed:   totalTime,
			Distance:  totalDist,
			Elevation: leading.Z,
			Grade:     pct,
		})
	}

	res.Cache = cache.stats
	return res, nil
}
