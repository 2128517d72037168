package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"story-insights-backend/internal/artifacts"
	"story-insights-backend/internal/models"
)

const defaultPageLimit = 50

// ArtifactSource reads artifact records from the data plane.
type ArtifactSource interface {
	ListRange(fromTime, toTime string) ([]models.ArtifactRecord, error)
}

type ArtifactsHandler struct {
	source ArtifactSource
}

func NewArtifactsHandler(source ArtifactSource) *ArtifactsHandler {
	return &ArtifactsHandler{
		source: source,
	}
}

// List returns the raw record list for a time range as a bare array.
func (h *ArtifactsHandler) List(c *gin.Context) {
	records, err := h.source.ListRange(c.Query("from_time"), c.Query("to_time"))
	if err != nil {
		writeError(c, err)
		return
	}

	if records == nil {
		records = []models.ArtifactRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// ListPaged returns {total, data} after applying status/template/search
// filters and limit/skip pagination.
func (h *ArtifactsHandler) ListPaged(c *gin.Context) {
	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit"})
			return
		}
		if parsed > 0 {
			limit = parsed
		}
	}

	skip := 0
	if raw := c.Query("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid skip"})
			return
		}
		skip = parsed
	}

	records, err := h.source.ListRange(c.Query("from_time"), c.Query("to_time"))
	if err != nil {
		writeError(c, err)
		return
	}

	total, page := artifacts.Page(records, artifacts.PageFilter{
		Status:   c.Query("status"),
		Template: c.Query("template"),
		Search:   c.Query("search"),
		Limit:    limit,
		Skip:     skip,
	})

	if page == nil {
		page = []models.ArtifactRecord{}
	}
	c.JSON(http.StatusOK, models.PagedArtifactsResponse{
		Total: total,
		Data:  page,
	})
}
