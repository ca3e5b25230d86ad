package api

import (
	"errors"
	"net/http"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/util"
	"hoaxify/hoax-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activationTokenLength = 60

var errMailDispatch = errors.New("mail dispatch failed")

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRegister creates an inactive account and sends the activation mail.
// Both happen inside one transaction: a failed dispatch rolls the user row
// back so registration has no partial-success state
func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	validationErrors := map[string]string{}

	if err := validators.UsernameValidator(data.Username); err != nil {
		validationErrors["username"] = err.Error()
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		validationErrors["email"] = err.Error()
	} else {
		var count int64
		err := a.DB.
			Model(model.User{}).
			Where("email = ?", data.Email).
			Count(&count).
			Error
		if err != nil {
			fail(c, http.StatusInternalServerError, "Internal server error")

			zap.L().Error("Failed to check if email is registered", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if count > 0 {
			validationErrors["email"] = "E-mail in use"
		}
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		validationErrors["password"] = err.Error()
	}

	if len(validationErrors) > 0 {
		failValidation(c, validationErrors)
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	activationToken := util.RandStr(activationTokenLength)

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		// Inactive is always true for fresh accounts, no matter what the
		// client put in the request body
		user := &model.User{
			Username:        data.Username,
			Email:           data.Email,
			PasswordHash:    hash,
			Inactive:        true,
			ActivationToken: &activationToken,
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if err := a.Mailer.SendAccountActivation(data.Email, activationToken); err != nil {
			zap.L().Error("Failed to send activation email", zap.Error(err), zap.String("requestID", requestID))
			return errMailDispatch
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errMailDispatch) {
			fail(c, http.StatusBadGateway, "E-mail Failure")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created",
	})
}
