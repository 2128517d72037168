package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"story-insights-backend/internal/errs"
	"story-insights-backend/internal/models"
)

// writeError maps the error taxonomy to status codes. Anything outside the
// taxonomy is an internal error.
func writeError(c *gin.Context, err error) {
	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: validation.Message,
		})
		return
	}

	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, models.ConflictResponse{
			Exists:  true,
			Message: conflict.Message,
		})
		return
	}

	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not found",
			Message: notFound.Message,
		})
		return
	}

	var transport *errs.TransportError
	if errors.As(err, &transport) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream request failed",
			Message: transport.Err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal error",
		Message: err.Error(),
	})
}
