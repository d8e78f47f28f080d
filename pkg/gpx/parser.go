package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parse reads and parses a GPX file.
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader. The decoder matches elements by
// local name, so namespaced documents (Garmin, Strava exports) parse the
// same as plain ones.
func ParseReader(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	return &doc, nil
}

// FirstSegment returns the points of the first segment of the first track,
// in document order. Tracks beyond the first segment are ignored. Returns
// an empty slice when the document has no tracks or no segments.
func (d *Document) FirstSegment() []RawPoint {
	if len(d.Tracks) == 0 {
		return nil
	}
	if len(d.Tracks[0].Segments) == 0 {
		return nil
	}
	return d.Tracks[0].Segments[0].Points
}

// Name returns the first track's name, or "" if there is none.
func (d *Document) Name() string {
	if len(d.Tracks) == 0 {
		return ""
	}
	return d.Tracks[0].Name
}
