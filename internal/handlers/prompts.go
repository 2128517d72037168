package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"story-insights-backend/internal/models"
	"story-insights-backend/internal/prompts"
)

// PromptStore is the prompt-version persistence boundary.
type PromptStore interface {
	ListVersions() ([]models.PromptVersion, error)
	VersionsByPromptID(promptID string) ([]models.PromptVersion, error)
	CreatePrompt(req models.CreatePromptRequest, meta models.PromptMetadata) (*models.PromptVersion, error)
	AppendVersion(promptID, promptText string, meta models.PromptMetadata) (*models.PromptVersion, error)
	DeleteVersion(promptID string, version int) error
}

type PromptsHandler struct {
	store PromptStore
}

func NewPromptsHandler(store PromptStore) *PromptsHandler {
	return &PromptsHandler{
		store: store,
	}
}

// List returns the visible prompt set for the active filters: latest
// version per prompt with no filters, every matching version otherwise.
func (h *PromptsHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	all, err := h.store.ListVersions()
	if err != nil {
		writeError(c, err)
		return
	}

	visible := prompts.VisibleSet(all, prompts.Filter{
		Search:            c.Query("search"),
		Flow:              c.Query("flow"),
		PromptTitle:       c.Query("prompt_title"),
		Mode:              c.Query("mode"),
		PromptDescription: c.Query("prompt_description"),
	})

	c.JSON(http.StatusOK, models.PromptListResponse{Data: visible})
}

// Versions returns the full version history of one prompt, newest first.
func (h *PromptsHandler) Versions(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	promptID, err := uuid.Parse(c.Param("prompt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid prompt id"})
		return
	}

	versions, err := h.store.VersionsByPromptID(promptID.String())
	if err != nil {
		writeError(c, err)
		return
	}
	if len(versions) == 0 {
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: "Prompt not found"})
		return
	}

	c.JSON(http.StatusOK, models.PromptListResponse{Data: versions})
}

// Create inserts version 1 of a new logical prompt. A duplicate
// flow+title+mode tuple answers 409 with {exists: true}.
func (h *PromptsHandler) Create(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := prompts.ValidateCreate(req); err != nil {
		writeError(c, err)
		return
	}

	meta := prompts.StampMetadata(req.Metadata, time.Now())
	created, err := h.store.CreatePrompt(req, meta)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// Update appends a new version for an existing promptId. Flow, title, mode
// and description are carried forward from the latest version; only the
// prompt text and metadata come from the caller.
func (h *PromptsHandler) Update(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	promptID, err := uuid.Parse(c.Param("prompt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid prompt id"})
		return
	}

	var req models.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := prompts.ValidateUpdate(req); err != nil {
		writeError(c, err)
		return
	}

	meta := prompts.StampMetadata(req.Metadata, time.Now())
	updated, err := h.store.AppendVersion(promptID.String(), req.Prompt, meta)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes exactly one (promptId, version) pair, both passed as query
// parameters.
func (h *PromptsHandler) Delete(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	promptID, err := uuid.Parse(c.Query("prompt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid prompt id"})
		return
	}

	version, err := strconv.Atoi(c.Query("version"))
	if err != nil || version < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid version"})
		return
	}

	if err := h.store.DeleteVersion(promptID.String(), version); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "prompt version deleted successfully"})
}
