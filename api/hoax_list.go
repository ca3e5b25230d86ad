package api

import (
	"net/http"
	"strconv"

	"hoaxify/hoax-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type attachmentView struct {
	Filename string  `json:"filename"`
	FileType *string `json:"fileType"`
}

type hoaxView struct {
	ID        uint             `json:"id"`
	Content   string           `json:"content"`
	Timestamp int64            `json:"timestamp"`
	User      model.PublicUser `json:"user"`
	// Omitted entirely when the hoax has no attachment
	FileAttachment *attachmentView `json:"fileAttachment,omitempty"`
}

// HoaxList serves both the global feed and a single user's hoaxes, newest
// first. The user-scoped variant 404s for unknown users
func (a *API) HoaxList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	page, size := parsePagination(c)

	query := a.DB.Model(model.Hoax{})

	if idParam := c.Param("id"); idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			fail(c, http.StatusNotFound, "User not found")
			return
		}

		var count int64
		if err := a.DB.Model(model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			fail(c, http.StatusInternalServerError, "Internal server error")

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if count == 0 {
			fail(c, http.StatusNotFound, "User not found")
			return
		}

		query = query.Where("user_id = ?", id)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to count hoaxes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var hoaxes []model.Hoax
	err := query.
		Preload("User").
		Preload("Attachment").
		Order("id desc").
		Offset(page * size).
		Limit(size).
		Find(&hoaxes).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to list hoaxes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	content := make([]hoaxView, len(hoaxes))
	for i, hoax := range hoaxes {
		view := hoaxView{
			ID:        hoax.ID,
			Content:   hoax.Content,
			Timestamp: hoax.Timestamp,
			User:      hoax.User.Public(),
		}

		if hoax.Attachment != nil {
			view.FileAttachment = &attachmentView{
				Filename: hoax.Attachment.Filename,
				FileType: hoax.Attachment.FileType,
			}
		}

		content[i] = view
	}

	c.JSON(http.StatusOK, gin.H{
		"content":    content,
		"page":       page,
		"size":       size,
		"totalPages": totalPages(total, size),
	})
}
