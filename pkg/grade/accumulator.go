package grade

import "gradescan/pkg/geo"

// segmentAccumulator sums straight-line 3D distance and elapsed time across
// a contiguous run of points. It has no windowing awareness: the scanner
// decides whether to cover a full window or a single new step.
type segmentAccumulator struct {
	cache *pointCache
}

// accumulate walks consecutive index pairs in [start, end] and returns the
// total 3D distance in meters and elapsed time in seconds. Time deltas are
// not clamped: out-of-order input shows up as negative elapsed time rather
// than being silently repaired.
func (a *segmentAccumulator) accumulate(start, end int) (meters, seconds float64, err error) {
	for i := start; i < end; i++ {
		from, err := a.cache.get(i)
		if err != nil {
			return 0, 0, err
		}
		to, err := a.cache.get(i + 1)
		if err != nil {
			return 0, 0, err
		}

		meters += geo.Dist3D(from.X, from.Y, from.Z, to.X, to.Y, to.Z)
		seconds += to.Time.Sub(from.Time).Seconds()
	}
	return meters, seconds, nil
}
