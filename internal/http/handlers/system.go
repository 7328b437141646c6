package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and, when a pinger is set, database reachability.
func Health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok", "message": "bdvail sandbox running"}
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				body["status"] = "degraded"
				body["db"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
			body["db"] = "ok"
		}
		c.JSON(http.StatusOK, body)
	}
}
