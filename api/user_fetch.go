package api

import (
	"net/http"
	"strconv"

	"hoaxify/hoax-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserFetch returns a single active user's public profile
func (a *API) UserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	var user model.User

	err = a.DB.Where("id = ? AND inactive = ?", id, false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fail(c, http.StatusNotFound, "User not found")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
