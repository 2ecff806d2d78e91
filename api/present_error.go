package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/dto"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/utils"
)

// presentError renders err with the matching http status and reports whether
// it handled one.
func presentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{Message: err.Error()})
	default:
		utils.LogAndReportSentryError(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{Message: "internal error"})
	}
	return true
}
