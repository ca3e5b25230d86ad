package api

import (
	"net/http"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLogin validates credentials and issues a fresh bearer token. Whether
// the email is unknown or the password wrong, the answer is the same 401
func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user model.User

	err := a.DB.Where("email = ?", data.Email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fail(c, http.StatusUnauthorized, "Incorrect credentials")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := a.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		fail(c, http.StatusUnauthorized, "Incorrect credentials")
		return
	}

	if user.Inactive {
		fail(c, http.StatusForbidden, "Account is inactive")
		return
	}

	token, err := service.CreateToken(a.DB, user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to create session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"token":    token,
		"image":    user.Image,
	})
}
