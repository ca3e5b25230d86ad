package api

import (
	"net/http"

	"hoaxify/hoax-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserList returns active users page by page. The authenticated caller is
// excluded from their own listing
func (a *API) UserList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	page, size := parsePagination(c)

	// Anonymous callers get the full active listing, id 0 never matches
	var callerID uint
	if v, ok := c.Get("userID"); ok {
		callerID = v.(uint)
	}

	query := a.DB.
		Model(model.User{}).
		Where("inactive = ? AND id != ?", false, callerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to count users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var users []model.User
	err := query.
		Offset(page * size).
		Limit(size).
		Find(&users).
		Error
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	content := make([]model.PublicUser, len(users))
	for i := range users {
		content[i] = users[i].Public()
	}

	c.JSON(http.StatusOK, gin.H{
		"content":    content,
		"page":       page,
		"size":       size,
		"totalPages": totalPages(total, size),
	})
}
