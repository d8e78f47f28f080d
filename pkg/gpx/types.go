package gpx

import "encoding/xml"

// RawPoint is one <trkpt> exactly as it appears in the document. Field
// syntax is deliberately left unparsed: lat/lon/ele/time stay strings so
// the consumer can report precisely which field of which point is broken.
type RawPoint struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Ele  string `xml:"ele"`
	Time string `xml:"time"`
}

// Segment is one <trkseg>.
type Segment struct {
	Points []RawPoint `xml:"trkpt"`
}

// Track is one <trk> with its segments.
type Track struct {
	Name     string    `xml:"name"`
	Segments []Segment `xml:"trkseg"`
}

// Document is the parsed <gpx> root.
type Document struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Tracks  []Track  `xml:"trk"`
}
