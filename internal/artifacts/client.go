// Package artifacts reads generated-story records from the Supabase data
// plane. The generation pipeline owns the table; this service only queries
// it.
package artifacts

import (
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"story-insights-backend/internal/errs"
	"story-insights-backend/internal/models"
)

const artifactsTable = "artifacts"

type Client struct {
	sb *supabase.Client
}

func NewClient(supabaseURL, apiKey string) (*Client, error) {
	client, err := supabase.NewClient(supabaseURL, apiKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{sb: client}, nil
}

// artifactRow mirrors the snake_case columns of the artifacts table.
type artifactRow struct {
	ArtifactID    string `json:"artifact_id"`
	ArtifactTitle string `json:"artifact_title"`
	UserEmail     string `json:"user_email"`
	ModeName      string `json:"mode_name"`
	ProjectName   string `json:"project_name"`
	UserStoryType string `json:"user_story_type"`
	Status        string `json:"status"`
	URL           string `json:"url"`
	CreatedAt     string `json:"created_at"`
}

// ListRange fetches records whose created_at falls within [fromTime,
// toTime], newest first. Empty bounds are open-ended. Failures surface as
// TransportError; they are not retried.
func (c *Client) ListRange(fromTime, toTime string) ([]models.ArtifactRecord, error) {
	q := c.sb.From(artifactsTable).Select("*", "exact", false)
	if fromTime != "" {
		q = q.Gte("created_at", fromTime)
	}
	if toTime != "" {
		q = q.Lte("created_at", toTime)
	}

	var rows []artifactRow
	_, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&rows)
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}

	records := make([]models.ArtifactRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}

var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (r artifactRow) toRecord() models.ArtifactRecord {
	rec := models.ArtifactRecord{
		ArtifactID:    r.ArtifactID,
		ArtifactTitle: r.ArtifactTitle,
		UserEmail:     r.UserEmail,
		ModeName:      r.ModeName,
		ProjectName:   r.ProjectName,
		UserStoryType: r.UserStoryType,
		Status:        r.Status,
		URL:           r.URL,
		CreatedAt:     r.CreatedAt,
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			rec.Date = t.Format("2006-01-02")
			rec.Time = t.Format("15:04:05")
			break
		}
	}
	return rec
}
