package prompts

import (
	"strings"
	"time"

	"story-insights-backend/internal/errs"
	"story-insights-backend/internal/models"
)

// ValidateCreate enforces the create preconditions: flow, title, description
// and prompt text must be non-empty after trimming. Mode is optional since
// the enum is extensible with custom values.
func ValidateCreate(req models.CreatePromptRequest) error {
	if strings.TrimSpace(req.Flow) == "" {
		return &errs.ValidationError{Message: "flow is required"}
	}
	if strings.TrimSpace(req.PromptTitle) == "" {
		return &errs.ValidationError{Message: "promptTitle is required"}
	}
	if strings.TrimSpace(req.PromptDescription) == "" {
		return &errs.ValidationError{Message: "promptDescription is required"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return &errs.ValidationError{Message: "prompt is required"}
	}
	return nil
}

// ValidateUpdate enforces the update precondition on the new prompt text.
func ValidateUpdate(req models.UpdatePromptRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return &errs.ValidationError{Message: "prompt is required"}
	}
	return nil
}

// StampMetadata sets the display date/time fields from now.
func StampMetadata(m models.PromptMetadata, now time.Time) models.PromptMetadata {
	m.DisplayDate = now.Format("2006-01-02")
	m.DisplayTime = now.Format("15:04:05")
	return m
}

// MergeMetadata combines the previous version's metadata with the fields
// supplied for a new version. The author carries forward when omitted; the
// changelog and token count always belong to the new version.
func MergeMetadata(prev, next models.PromptMetadata) models.PromptMetadata {
	if next.Author == "" {
		next.Author = prev.Author
	}
	return next
}
