// Package export serializes artifact records to CSV for download or
// archiving.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"story-insights-backend/internal/models"
)

var baseHeader = []string{
	"Artifact ID", "Artifact Title", "Date", "Time",
	"User", "Template", "Project", "Status",
}

// CSV renders the record list with the fixed header row. The URL column is
// appended only when at least one record carries a URL. Fields containing
// the delimiter or quotes are double-quoted with internal quotes doubled,
// per encoding/csv.
func CSV(records []models.ArtifactRecord) ([]byte, error) {
	includeURL := false
	for _, rec := range records {
		if rec.URL != "" {
			includeURL = true
			break
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := baseHeader
	if includeURL {
		header = append(append([]string{}, baseHeader...), "URL")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range records {
		row := []string{
			rec.ArtifactID, rec.ArtifactTitle, rec.Date, rec.Time,
			rec.UserEmail, rec.ModeName, rec.ProjectName, rec.Status,
		}
		if includeURL {
			row = append(row, rec.URL)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds a timestamped export filename.
func Filename(now time.Time) string {
	return fmt.Sprintf("artifacts-%s.csv", now.Format("20060102-150405"))
}
