package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"story-insights-backend/internal/export"
	"story-insights-backend/internal/models"
)

// Archiver stores CSV exports in the archive bucket.
type Archiver interface {
	UploadCSV(filename string, data []byte) (string, string, error)
}

type ExportHandler struct {
	source  ArtifactSource
	archive Archiver
}

func NewExportHandler(source ArtifactSource, archive Archiver) *ExportHandler {
	return &ExportHandler{
		source:  source,
		archive: archive,
	}
}

// Export serves the record list as a CSV attachment. With archive=true the
// file is uploaded to the storage bucket instead and the path and public
// URL are returned.
func (h *ExportHandler) Export(c *gin.Context) {
	records, err := h.source.ListRange(c.Query("from_time"), c.Query("to_time"))
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := export.CSV(records)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := export.Filename(time.Now())

	if c.Query("archive") == "true" {
		if h.archive == nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage not available"})
			return
		}
		storagePath, url, err := h.archive.UploadCSV(filename, data)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ArchiveResponse{
			StoragePath: storagePath,
			URL:         url,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
