package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"story-insights-backend/internal/models"
	"story-insights-backend/internal/stats"
)

type StatsHandler struct {
	source ArtifactSource
}

func NewStatsHandler(source ArtifactSource) *StatsHandler {
	return &StatsHandler{
		source: source,
	}
}

// GetStats computes every dashboard aggregate over the requested time range
// in one payload.
func (h *StatsHandler) GetStats(c *gin.Context) {
	records, err := h.source.ListRange(c.Query("from_time"), c.Query("to_time"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DashboardStats{
		StatusCounts: stats.StatusCounts(records),
		Users:        stats.UserRollups(records),
		Projects:     stats.ProjectRollups(records),
		Daily:        stats.DailyHistogram(records, time.Now()),
		Hourly:       stats.HourlyHistogram(records),
	})
}
