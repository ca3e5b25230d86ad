package api

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/storage"
	"hoaxify/hoax-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateBody struct {
	Username string `json:"username"`
	// Optional base64 encoded replacement profile image
	Image string `json:"image"`
}

// UserUpdate replaces the owner's username and, when an image is carried,
// swaps the stored profile image file
func (a *API) UserUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	callerID, authenticated := c.Get("userID")

	if !authenticated || callerID.(uint) != uint(id) {
		fail(c, http.StatusForbidden, "You are not authorized to update user")
		return
	}

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		failValidation(c, map[string]string{"username": err.Error()})
		return
	}

	var user model.User
	if err := a.DB.First(&user, id).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to load user for update", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	updates := map[string]any{"username": data.Username}

	if data.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(stripDataURI(data.Image))
		if err != nil {
			failValidation(c, map[string]string{"image": validators.ErrImageTypeNotAllowed.Error()})
			return
		}

		if err := validators.ProfileImageValidator(decoded); err != nil {
			failValidation(c, map[string]string{"image": err.Error()})
			return
		}

		name, err := a.Files.Save(storage.Profile, decoded, "")
		if err != nil {
			fail(c, http.StatusInternalServerError, "Internal server error")

			zap.L().Error("Failed to store profile image", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user.Image != nil {
			if err := a.Files.Delete(storage.Profile, *user.Image); err != nil {
				zap.L().Error("Failed to delete old profile image",
					zap.String("filename", *user.Image), zap.Error(err))
			}
		}

		updates["image"] = name
		user.Image = &name
	}

	if err := a.DB.Model(&user).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.Username = data.Username

	c.JSON(http.StatusOK, user.Public())
}

// stripDataURI drops an optional "data:...;base64," prefix some clients send
func stripDataURI(s string) string {
	if i := strings.Index(s, "base64,"); strings.HasPrefix(s, "data:") && i != -1 {
		return s[i+len("base64,"):]
	}

	return s
}
