// Package stats computes the dashboard aggregates. Every function is a pure
// pass over the record slice; results are recomputed per request.
package stats

import (
	"sort"

	"story-insights-backend/internal/models"
)

// StatusCounts counts records per status. All four keys are always present;
// unrecognized or empty statuses count as "unknown".
func StatusCounts(records []models.ArtifactRecord) map[string]int {
	counts := map[string]int{
		models.StatusSuccess: 0,
		models.StatusFailed:  0,
		models.StatusPending: 0,
		models.StatusUnknown: 0,
	}
	for _, r := range records {
		switch r.Status {
		case models.StatusSuccess, models.StatusFailed, models.StatusPending:
			counts[r.Status]++
		default:
			counts[models.StatusUnknown]++
		}
	}
	return counts
}

type rollup struct {
	count     int
	primary   map[string]struct{}
	secondary map[string]struct{}
	lastDate  string
}

func newRollup() *rollup {
	return &rollup{
		primary:   make(map[string]struct{}),
		secondary: make(map[string]struct{}),
	}
}

func (r *rollup) add(primary, secondary, date string) {
	r.count++
	if primary != "" {
		r.primary[primary] = struct{}{}
	}
	if secondary != "" {
		r.secondary[secondary] = struct{}{}
	}
	if date > r.lastDate {
		r.lastDate = date
	}
}

// UserRollups groups records by user email, tracking count, distinct
// projects, distinct templates and the most recent date. Sorted by count
// descending, email ascending on ties.
func UserRollups(records []models.ArtifactRecord) []models.UserActivity {
	byUser := make(map[string]*rollup)
	for _, rec := range records {
		r, ok := byUser[rec.UserEmail]
		if !ok {
			r = newRollup()
			byUser[rec.UserEmail] = r
		}
		r.add(rec.ProjectName, rec.ModeName, rec.Date)
	}

	out := make([]models.UserActivity, 0, len(byUser))
	for email, r := range byUser {
		out = append(out, models.UserActivity{
			UserEmail: email,
			Count:     r.count,
			Projects:  sortedKeys(r.primary),
			Templates: sortedKeys(r.secondary),
			LastDate:  r.lastDate,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].UserEmail < out[j].UserEmail
	})
	return out
}

// UnnamedProject is the bucket for records without a project name.
const UnnamedProject = "Unnamed Project"

// ProjectRollups groups records by project name, tracking count, distinct
// users, distinct templates and the most recent date. Records without a
// project name are kept under the UnnamedProject bucket rather than dropped.
func ProjectRollups(records []models.ArtifactRecord) []models.ProjectActivity {
	byProject := make(map[string]*rollup)
	for _, rec := range records {
		name := rec.ProjectName
		if name == "" {
			name = UnnamedProject
		}
		r, ok := byProject[name]
		if !ok {
			r = newRollup()
			byProject[name] = r
		}
		r.add(rec.UserEmail, rec.ModeName, rec.Date)
	}

	out := make([]models.ProjectActivity, 0, len(byProject))
	for name, r := range byProject {
		out = append(out, models.ProjectActivity{
			ProjectName: name,
			Count:       r.count,
			Users:       sortedKeys(r.primary),
			Templates:   sortedKeys(r.secondary),
			LastDate:    r.lastDate,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProjectName < out[j].ProjectName
	})
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
