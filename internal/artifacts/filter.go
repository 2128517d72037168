package artifacts

import (
	"strings"

	"story-insights-backend/internal/models"
)

// PageFilter selects and pages an in-memory record list. Status and
// Template match exactly; Search is a case-insensitive substring match over
// title, user, project, template and story type.
type PageFilter struct {
	Status   string
	Template string
	Search   string
	Limit    int
	Skip     int
}

// Page applies the filter and returns the total match count alongside the
// requested slice. Skip past the end yields an empty page, not an error.
func Page(records []models.ArtifactRecord, f PageFilter) (int, []models.ArtifactRecord) {
	matched := make([]models.ArtifactRecord, 0, len(records))
	for _, rec := range records {
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if f.Template != "" && rec.ModeName != f.Template {
			continue
		}
		if f.Search != "" && !searchMatch(rec, f.Search) {
			continue
		}
		matched = append(matched, rec)
	}

	total := len(matched)
	start := f.Skip
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return total, matched[start:end]
}

func searchMatch(rec models.ArtifactRecord, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{
		rec.ArtifactTitle,
		rec.UserEmail,
		rec.ProjectName,
		rec.ModeName,
		rec.UserStoryType,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
