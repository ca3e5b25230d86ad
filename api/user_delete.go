package api

import (
	"net/http"
	"strconv"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/service"
	"hoaxify/hoax-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDelete removes the account and everything hanging off it: session
// tokens, hoaxes, their attachment rows and files, and the profile image.
// File removal is not transactional with the row deletes, a crash in between
// leaves orphans for the sweeps
func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	callerID, authenticated := c.Get("userID")

	if !authenticated || callerID.(uint) != uint(id) {
		fail(c, http.StatusForbidden, "You are not authorized to delete user")
		return
	}

	var user model.User
	if err := a.DB.First(&user, id).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to load user for deletion", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var attachments []model.FileAttachment
	err := a.DB.
		Joins("JOIN hoaxes ON hoaxes.id = file_attachments.hoax_id").
		Where("hoaxes.user_id = ?", id).
		Find(&attachments).
		Error
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to collect user attachments", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := service.ClearTokens(tx, uint(id)); err != nil {
			return err
		}

		for i := range attachments {
			if err := tx.Delete(&attachments[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(model.Hoax{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, attachment := range attachments {
		if err := a.Files.Delete(storage.Attachment, attachment.Filename); err != nil {
			zap.L().Error("Failed to delete attachment file",
				zap.String("filename", attachment.Filename), zap.Error(err))
		}
	}

	if user.Image != nil {
		if err := a.Files.Delete(storage.Profile, *user.Image); err != nil {
			zap.L().Error("Failed to delete profile image",
				zap.String("filename", *user.Image), zap.Error(err))
		}
	}

	c.Status(http.StatusOK)
}
