package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ConflictResponse is returned when a create collides with an existing
// flow+title+mode tuple.
type ConflictResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PagedArtifactsResponse struct {
	Total int              `json:"total"`
	Data  []ArtifactRecord `json:"data"`
}

type PromptListResponse struct {
	Data []PromptVersion `json:"data"`
}

// UserActivity is the per-user dashboard rollup.
type UserActivity struct {
	UserEmail string   `json:"userEmail"`
	Count     int      `json:"count"`
	Projects  []string `json:"projects"`
	Templates []string `json:"templates"`
	LastDate  string   `json:"lastDate"`
}

// ProjectActivity is the per-project dashboard rollup. Records without a
// project name land in the "Unnamed Project" bucket.
type ProjectActivity struct {
	ProjectName string   `json:"projectName"`
	Count       int      `json:"count"`
	Users       []string `json:"users"`
	Templates   []string `json:"templates"`
	LastDate    string   `json:"lastDate"`
}

// TimeBucket is one histogram bucket, keyed by date (YYYY-MM-DD) or by hour
// ("00".."23").
type TimeBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	StatusCounts map[string]int    `json:"statusCounts"`
	Users        []UserActivity    `json:"users"`
	Projects     []ProjectActivity `json:"projects"`
	Daily        []TimeBucket      `json:"daily"`
	Hourly       []TimeBucket      `json:"hourly"`
}

type ArchiveResponse struct {
	StoragePath string `json:"storage_path"`
	URL         string `json:"url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
