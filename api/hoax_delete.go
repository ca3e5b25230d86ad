package api

import (
	"net/http"
	"strconv"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HoaxDelete removes an owned hoax together with its attachment file and
// row. A hoax that doesn't exist or belongs to someone else answers the
// same 403, existence isn't leaked
func (a *API) HoaxDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	hoaxID, _ := strconv.ParseUint(c.Param("hoaxId"), 10, 64)
	callerID, authenticated := c.Get("userID")

	if !authenticated {
		fail(c, http.StatusForbidden, "You are not authorized to delete this hoax")
		return
	}

	var hoax model.Hoax

	err := a.DB.Where("id = ? AND user_id = ?", hoaxID, callerID.(uint)).First(&hoax).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fail(c, http.StatusForbidden, "You are not authorized to delete this hoax")
			return
		}

		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up hoax", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := service.DeleteHoaxAttachment(a.DB, a.Files, hoax.ID); err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to delete hoax attachment", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Delete(&hoax).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to delete hoax", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hoax is deleted",
	})
}
