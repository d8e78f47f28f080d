package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gradescan/pkg/grade"
)

// WriteCSV writes the scanned series as CSV, one row per record.
func WriteCSV(w io.Writer, res *grade.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"index", "time", "elapsed_s", "distance_m", "elevation_m", "grade_pct"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range res.Records {
		row := []string{
			strconv.Itoa(r.Index),
			r.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(r.Elapsed, 'f', 1, 64),
			strconv.FormatFloat(r.Distance, 'f', 2, 64),
			strconv.FormatFloat(r.Elevation, 'f', 2, 64),
			strconv.FormatFloat(r.Grade, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
