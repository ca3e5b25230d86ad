package api

import (
	"net/http"

	"hoaxify/hoax-api/middleware"
	"hoaxify/hoax-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthLogout drops the presented bearer token. Logging out without one, or
// with a token that's already gone, still answers 200
func (a *API) AuthLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if token := middleware.BearerToken(c); token != "" {
		if err := service.DeleteToken(a.DB, token); err != nil {
			fail(c, http.StatusInternalServerError, "Internal server error")

			zap.L().Error("Failed to delete session token", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.Status(http.StatusOK)
}
