package api

import (
	"io"
	"net/http"

	"hoaxify/hoax-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultMaxAttachmentSize = 5 << 20

// AttachmentUpload stores a multipart file for a hoax that hasn't been
// posted yet. Any content type is accepted, the stored fileType comes from
// sniffing the bytes and stays null for unrecognizable content
func (a *API) AttachmentUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file provided")
		return
	}

	maxSize := viper.GetInt64("upload.max_attachment_size")
	if maxSize == 0 {
		maxSize = defaultMaxAttachmentSize
	}

	if fh.Size > maxSize {
		fail(c, http.StatusBadRequest, "Uploaded file cannot be bigger than 5MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to read uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	attachment, err := service.SaveAttachment(a.DB, a.Files, data)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to save attachment", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, attachment)
}
