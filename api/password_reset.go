package api

import (
	"net/http"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/service"
	"hoaxify/hoax-api/util"
	"hoaxify/hoax-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resetTokenLength = 16

type resetRequestBody struct {
	Email string `json:"email"`
}

type passwordUpdateBody struct {
	Password           string `json:"password"`
	PasswordResetToken string `json:"passwordResetToken"`
}

// PasswordResetRequest stores a reset token on the account and mails it out
func (a *API) PasswordResetRequest(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBind(&data); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		failValidation(c, map[string]string{"email": err.Error()})
		return
	}

	var user model.User

	err := a.DB.Where("email = ?", data.Email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fail(c, http.StatusNotFound, "E-mail not found")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	resetToken := util.RandStr(resetTokenLength)

	err = a.DB.Model(&user).Update("password_reset_token", resetToken).Error
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Mailer.SendPasswordReset(data.Email, resetToken); err != nil {
		fail(c, http.StatusBadGateway, "E-mail Failure")

		zap.L().Error("Failed to send reset email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Check your e-mail for resetting your password",
	})
}

// PasswordUpdate completes a reset: new hash, burned tokens, reactivated
// account and every open session invalidated
func (a *API) PasswordUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data passwordUpdateBody
	if err := c.ShouldBind(&data); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user model.User

	err := a.DB.Where("password_reset_token = ?", data.PasswordResetToken).First(&user).Error
	if err != nil || data.PasswordResetToken == "" {
		if err == gorm.ErrRecordNotFound || data.PasswordResetToken == "" {
			fail(c, http.StatusForbidden,
				"You are not authorized to update your password. Please follow the password reset steps again")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		failValidation(c, map[string]string{"password": err.Error()})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&user).Updates(map[string]any{
			"password_hash":        hash,
			"password_reset_token": nil,
			"activation_token":     nil,
			// A reset proves mailbox control, so it also reactivates a
			// dormant account
			"inactive": false,
		}).Error
		if err != nil {
			return err
		}

		return service.ClearTokens(tx, user.ID)
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated",
	})
}
