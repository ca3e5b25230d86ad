package api

import (
	"net/http"
	"time"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/service"
	"hoaxify/hoax-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type hoaxBody struct {
	Content string `json:"content"`
	// ID of a previously uploaded attachment to bind to this hoax
	FileAttachment *uint `json:"fileAttachment"`
}

func (a *API) HoaxCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	callerID, authenticated := c.Get("userID")
	if !authenticated {
		fail(c, http.StatusUnauthorized, "You are not authorized to post a hoax")
		return
	}

	var data hoaxBody
	if err := c.ShouldBind(&data); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validators.HoaxContentValidator(data.Content); err != nil {
		failValidation(c, map[string]string{"content": err.Error()})
		return
	}

	hoax := &model.Hoax{
		Content:   data.Content,
		Timestamp: time.Now().UnixMilli(),
		UserID:    callerID.(uint),
	}

	if err := a.DB.Create(hoax).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to save hoax", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// First association wins: an unknown id or one already claimed by
	// another hoax is ignored without an error
	if data.FileAttachment != nil {
		if err := service.AssociateAttachment(a.DB, *data.FileAttachment, hoax.ID); err != nil {
			zap.L().Error("Failed to associate attachment", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hoax is saved",
	})
}
