package api

import (
	"net/http"

	"hoaxify/hoax-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserActivate flips an account to active and burns the activation token.
// A second call with the same token fails, the token is gone by then
func (a *API) UserActivate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	token := c.Param("token")

	var user model.User

	err := a.DB.Where("activation_token = ?", token).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fail(c, http.StatusBadRequest, "This account is either active or the token is invalid")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up activation token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.
		Model(&user).
		Updates(map[string]any{
			"activation_token": nil,
			"inactive":         false,
		}).
		Error
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to activate account", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account is activated",
	})
}
