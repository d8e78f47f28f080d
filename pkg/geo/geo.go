package geo

import "math"

// DefaultMetersPerDegree is the scale factor used to project latitude and
// longitude degrees onto a local planar grid. The flat-earth approximation
// is only accurate over short spans; that is a documented limitation of the
// projection, not a bug.
const DefaultMetersPerDegree = 111000.0

// Planar projects a lat/lon pair (decimal degrees) to planar x/y meters
// using a constant degree length.
func Planar(lat, lon, metersPerDegree float64) (x, y float64) {
	return lat * metersPerDegree, lon * metersPerDegree
}

// Dist2D returns the Euclidean distance between two planar points in meters.
func Dist2D(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Dist3D returns the Euclidean distance between two planar points including
// the elevation component, in meters.
func Dist3D(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	dz := z2 - z1
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
