package grade

import "errors"

var (
	// ErrEmptyTrack indicates the input contained no points at all.
	ErrEmptyTrack = errors.New("track is empty")
	// ErrInsufficientPoints indicates fewer points than the window size.
	ErrInsufficientPoints = errors.New("not enough points for window")
	// ErrMalformedTimestamp indicates a point's time field could not be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrMalformedElevation indicates a point's ele field is missing or unparsable.
	ErrMalformedElevation = errors.New("malformed elevation")
	// ErrMalformedCoordinate indicates a point's lat or lon attribute is missing or unparsable.
	ErrMalformedCoordinate = errors.New("malformed coordinate")
	// ErrDegenerateWindow indicates the horizontal run between the window's
	// endpoints is exactly zero, leaving the grade undefined.
	ErrDegenerateWindow = errors.New("degenerate window: zero horizontal run")
)
