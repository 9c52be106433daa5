package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mgleavitt/lockquests/internal/catalog"
	"github.com/mgleavitt/lockquests/pkg/response"
)

// Health returns a simple status payload useful for readiness checks. The
// configured flag lets a deployment distinguish "up but waiting for a source
// sheet" from a healthy instance.
func Health(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := svc != nil && svc.Configured()
		response.Success(c, http.StatusOK, gin.H{
			"status":     "ok",
			"configured": configured,
		})
	}
}
