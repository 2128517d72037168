package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"story-insights-backend/internal/export"
	"story-insights-backend/internal/models"
)

func TestCSVHeaderWithoutURL(t *testing.T) {
	data, err := export.CSV([]models.ArtifactRecord{
		{ArtifactID: "a1", ArtifactTitle: "Login story", Date: "2026-08-25", Time: "09:05:00",
			UserEmail: "a@example.com", ModeName: "detailed", ProjectName: "Atlas", Status: "success"},
	})

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "Artifact ID,Artifact Title,Date,Time,User,Template,Project,Status", lines[0])
	assert.Equal(t, "a1,Login story,2026-08-25,09:05:00,a@example.com,detailed,Atlas,success", lines[1])
}

func TestCSVIncludesURLColumnWhenPresent(t *testing.T) {
	data, err := export.CSV([]models.ArtifactRecord{
		{ArtifactID: "a1", Status: "success", URL: "https://example.com/a1"},
		{ArtifactID: "a2", Status: "failed"},
	})

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.True(t, strings.HasSuffix(lines[0], ",URL"))
	assert.True(t, strings.HasSuffix(lines[1], ",https://example.com/a1"))
	assert.True(t, strings.HasSuffix(lines[2], ","))
}

func TestCSVQuotesDelimitersAndQuotes(t *testing.T) {
	data, err := export.CSV([]models.ArtifactRecord{
		{ArtifactID: "a1", ArtifactTitle: `He said "ship it", twice`, Status: "success"},
	})

	assert.NoError(t, err)
	assert.Contains(t, string(data), `"He said ""ship it"", twice"`)
}

func TestCSVEmptyInputStillHasHeader(t *testing.T) {
	data, err := export.CSV(nil)

	assert.NoError(t, err)
	assert.Equal(t, "Artifact ID,Artifact Title,Date,Time,User,Template,Project,Status", strings.TrimSpace(string(data)))
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 25, 9, 5, 30, 0, time.UTC)
	assert.Equal(t, "artifacts-20260825-090530.csv", export.Filename(now))
}
