package handlers

import (
	"net/http"

	"bdvail/internal/domain"
	"bdvail/internal/http/middleware"
	"bdvail/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Business
// rejections never get here: they are answered with success=false.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	default:
		utils.Log.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("internal error")
		RespondError(c, http.StatusInternalServerError, "Internal server error.", nil)
	}
}
