package service

import (
	"time"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/storage"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// An attachment that no hoax claimed within a day is garbage
const attachmentGracePeriod = 24 * time.Hour

// DetectFileType sniffs the MIME type from content, never from the uploaded
// file name. Content without a recognizable signature (plain text included)
// yields a nil type and no extension
func DetectFileType(data []byte) (*string, string) {
	mime := mimetype.Detect(data)

	if mime.Is("application/octet-stream") || mime.Is("text/plain") {
		return nil, ""
	}

	t := mime.String()
	return &t, mime.Extension()
}

// SaveAttachment writes the uploaded bytes through the file store and
// records the row. Association with a hoax happens later, when the hoax
// itself is posted
func SaveAttachment(db *gorm.DB, store storage.FileStore, data []byte) (*model.FileAttachment, error) {
	fileType, ext := DetectFileType(data)

	name, err := store.Save(storage.Attachment, data, ext)
	if err != nil {
		return nil, err
	}

	attachment := &model.FileAttachment{
		Filename:   name,
		FileType:   fileType,
		UploadDate: time.Now(),
	}

	if err := db.Create(attachment).Error; err != nil {
		return nil, err
	}

	return attachment, nil
}

// AssociateAttachment binds an attachment to a hoax. The first association
// wins: a missing row or one already owned by another hoax is silently
// ignored
func AssociateAttachment(db *gorm.DB, attachmentID, hoaxID uint) error {
	return db.
		Model(model.FileAttachment{}).
		Where("id = ? AND hoax_id IS NULL", attachmentID).
		Update("hoax_id", hoaxID).
		Error
}

// DeleteHoaxAttachment removes the attachment row and file of a hoax, if any
func DeleteHoaxAttachment(db *gorm.DB, store storage.FileStore, hoaxID uint) error {
	var attachment model.FileAttachment

	err := db.Where("hoax_id = ?", hoaxID).First(&attachment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	if err := store.Delete(storage.Attachment, attachment.Filename); err != nil {
		zap.L().Error("Failed to delete attachment file",
			zap.String("filename", attachment.Filename), zap.Error(err))
	}

	return db.Delete(&attachment).Error
}

// AttachmentCleanup removes attachments that were uploaded over 24 hours ago
// and never got associated with a hoax. Wired to the daily cron job
func AttachmentCleanup(db *gorm.DB, store storage.FileStore) error {
	cutoff := time.Now().Add(-attachmentGracePeriod)

	var orphans []model.FileAttachment
	err := db.
		Where("hoax_id IS NULL AND upload_date < ?", cutoff).
		Find(&orphans).
		Error
	if err != nil {
		return err
	}

	for _, attachment := range orphans {
		if err := store.Delete(storage.Attachment, attachment.Filename); err != nil {
			zap.L().Error("Failed to delete orphaned attachment file",
				zap.String("filename", attachment.Filename), zap.Error(err))
			continue
		}

		if err := db.Delete(&attachment).Error; err != nil {
			zap.L().Error("Failed to delete orphaned attachment row",
				zap.Uint("id", attachment.ID), zap.Error(err))
		}
	}

	return nil
}
