// Package prompts holds the pure prompt-version logic: the visible-set
// projection used by the admin listing and the validation and metadata rules
// shared by the store.
package prompts

import (
	"sort"
	"strings"

	"story-insights-backend/internal/models"
)

// Filter is the set of listing filters. Zero values mean "not set"; the two
// free-text fields are trimmed before deciding whether they are active.
type Filter struct {
	Search            string
	Flow              string
	PromptTitle       string
	Mode              string
	PromptDescription string
}

// Active reports whether any filter is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" ||
		f.Flow != "" ||
		f.PromptTitle != "" ||
		f.Mode != "" ||
		strings.TrimSpace(f.PromptDescription) != ""
}

// VisibleSet computes the list of prompt versions to display. With no filter
// active it keeps only the latest version per promptId; with any filter
// active it returns every matching version. Output is sorted by version
// descending, then promptTitle ascending.
func VisibleSet(all []models.PromptVersion, f Filter) []models.PromptVersion {
	matched := make([]models.PromptVersion, 0, len(all))
	for _, pv := range all {
		if matches(pv, f) {
			matched = append(matched, pv)
		}
	}

	if f.Active() {
		sortVersions(matched)
		return matched
	}

	// Latest version per promptId. Records without a promptId cannot be
	// grouped and are excluded from this path.
	latest := make(map[string]models.PromptVersion)
	for _, pv := range matched {
		if pv.PromptID == "" {
			continue
		}
		if best, ok := latest[pv.PromptID]; !ok || pv.Version > best.Version {
			latest[pv.PromptID] = pv
		}
	}

	out := make([]models.PromptVersion, 0, len(latest))
	for _, pv := range latest {
		out = append(out, pv)
	}
	sortVersions(out)
	return out
}

func matches(pv models.PromptVersion, f Filter) bool {
	if f.Flow != "" && pv.Flow != f.Flow {
		return false
	}
	if f.PromptTitle != "" && pv.PromptTitle != f.PromptTitle {
		return false
	}
	if f.Mode != "" && pv.Mode != f.Mode {
		return false
	}
	if desc := strings.TrimSpace(f.PromptDescription); desc != "" {
		if !strings.Contains(strings.ToLower(pv.PromptDescription), strings.ToLower(desc)) {
			return false
		}
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		if !strings.Contains(searchBlob(pv), strings.ToLower(search)) {
			return false
		}
	}
	return true
}

func searchBlob(pv models.PromptVersion) string {
	fields := []string{
		pv.PromptID,
		pv.Flow,
		pv.PromptTitle,
		pv.Mode,
		pv.PromptDescription,
		pv.Prompt,
		pv.Metadata.Author,
		pv.Metadata.Changelog,
	}
	present := fields[:0]
	for _, s := range fields {
		if s != "" {
			present = append(present, s)
		}
	}
	return strings.ToLower(strings.Join(present, " "))
}

func sortVersions(versions []models.PromptVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Version != versions[j].Version {
			return versions[i].Version > versions[j].Version
		}
		return versions[i].PromptTitle < versions[j].PromptTitle
	})
}
