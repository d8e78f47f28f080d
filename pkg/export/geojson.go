package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"gradescan/pkg/gpx"
	"gradescan/pkg/grade"
)

// Collection builds a GeoJSON FeatureCollection for map rendering: a
// LineString of the scanned path carrying the summary, plus one Point
// feature per record carrying its series values. The points slice must be
// the same sequence the scan ran over.
func Collection(points []gpx.RawPoint, res *grade.Result) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if len(res.Records) == 0 {
		return fc, nil
	}

	line := make(orb.LineString, 0, len(res.Records))
	for _, r := range res.Records {
		pt, err := lonLat(points[r.Index])
		if err != nil {
			return nil, err
		}
		line = append(line, pt)

		f := geojson.NewFeature(pt)
		f.Properties = geojson.Properties{
			"index":       r.Index,
			"time":        r.Time.UTC().Format(time.RFC3339),
			"elapsed_s":   r.Elapsed,
			"distance_m":  r.Distance,
			"elevation_m": r.Elevation,
			"grade_pct":   r.Grade,
		}
		fc.Append(f)
	}

	summary := geojson.NewFeature(line)
	summary.Properties = geojson.Properties{
		"records":       len(res.Records),
		"max_grade_pct": res.Max.Grade,
		"max_grade_idx": res.Max.Index,
		"min_grade_pct": res.Min.Grade,
		"min_grade_idx": res.Min.Index,
	}
	fc.Append(summary)

	return fc, nil
}

// WriteGeoJSON writes the FeatureCollection for the scan result to w.
func WriteGeoJSON(w io.Writer, points []gpx.RawPoint, res *grade.Result) error {
	fc, err := Collection(points, res)
	if err != nil {
		return err
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to marshal geojson: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write geojson: %w", err)
	}
	return nil
}

// lonLat parses a raw point's coordinates into GeoJSON axis order.
func lonLat(p gpx.RawPoint) (orb.Point, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid lon %q: %w", p.Lon, err)
	}
	return orb.Point{lon, lat}, nil
}
