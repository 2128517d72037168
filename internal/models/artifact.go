package models

// ArtifactRecord is one generated user-story event, produced by the external
// generation pipeline. Records are read-only from this service's perspective.
type ArtifactRecord struct {
	ArtifactID    string `json:"artifactId"`
	ArtifactTitle string `json:"artifactTitle"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	UserEmail     string `json:"userEmail"`
	ModeName      string `json:"modeName"`
	ProjectName   string `json:"projectName"`
	UserStoryType string `json:"userStoryType"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	URL           string `json:"url,omitempty"`
}

// Artifact status values. Anything else is counted as "unknown" in
// aggregates.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusPending = "pending"
	StatusUnknown = "unknown"
)
