package grade

import (
	"fmt"
	"strconv"
	"time"

	"gradescan/pkg/geo"
	"gradescan/pkg/gpx"
)

// Sample is one track point normalized for the scan: timestamp plus planar
// x/y and elevation z, all in meters.
type Sample struct {
	Time time.Time
	X    float64
	Y    float64
	Z    float64
}

// ParsePoint converts a raw track point into a Sample. It is a pure
// function of its input: no state, no side effects.
func ParsePoint(raw gpx.RawPoint, metersPerDegree float64) (Sample, error) {
	ts, err := time.Parse(time.RFC3339, raw.Time)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw.Time)
	}

	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: lat %q", ErrMalformedCoordinate, raw.Lat)
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: lon %q", ErrMalformedCoordinate, raw.Lon)
	}

	ele, err := strconv.ParseFloat(raw.Ele, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %q", ErrMalformedElevation, raw.Ele)
	}

	x, y := geo.Planar(lat, lon, metersPerDegree)
	return Sample{Time: ts, X: x, Y: y, Z: ele}, nil
}
