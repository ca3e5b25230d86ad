package service

import (
	"hoaxify/hoax-api/storage"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewCleanupScheduler registers the periodic sweeps: expired session tokens
// every hour, never-associated attachments every day. The caller owns the
// returned cron and decides when it starts and stops
func NewCleanupScheduler(db *gorm.DB, store storage.FileStore) *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 1h", func() {
		if err := TokenCleanup(db); err != nil {
			zap.L().Error("Token cleanup failed", zap.Error(err))
		}
	})

	c.AddFunc("@every 24h", func() {
		if err := AttachmentCleanup(db, store); err != nil {
			zap.L().Error("Attachment cleanup failed", zap.Error(err))
		}
	})

	zap.L().Debug("Cleanup scheduler attached")

	return c
}
