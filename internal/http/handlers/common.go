package handlers

import (
	"net/http"

	"bdvail/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends the WordPress REST error shape, so clients always find
// a "message", plus the request id.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil && status < http.StatusInternalServerError {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "Request body is required.", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request payload.", err)
		return false
	}
	return true
}
