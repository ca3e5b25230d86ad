// Package service contains the domain logic shared between handlers and
// background jobs
package service

import (
	"time"

	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/util"

	"gorm.io/gorm"
)

const (
	sessionTokenLength = 32

	// A token stays valid while it was used within the last 7 days.
	// Every successful verification slides the window forward
	tokenWindow = 7 * 24 * time.Hour
)

// CreateToken issues a fresh opaque session token for a user
func CreateToken(db *gorm.DB, userID uint) (string, error) {
	token := util.RandStr(sessionTokenLength)

	err := db.Create(&model.Token{
		Token:      token,
		UserID:     userID,
		LastUsedAt: time.Now(),
	}).Error
	if err != nil {
		return "", err
	}

	return token, nil
}

// VerifyToken resolves a bearer token to its owning user ID. A miss or an
// expired row yields ok=false, callers treat that as an anonymous request.
// Successful lookups refresh last_used_at, even on read-only endpoints
func VerifyToken(db *gorm.DB, token string) (uint, bool) {
	cutoff := time.Now().Add(-(tokenWindow - time.Millisecond))

	var row model.Token
	err := db.
		Where("token = ? AND last_used_at > ?", token, cutoff).
		First(&row).
		Error
	if err != nil {
		return 0, false
	}

	db.Model(&row).Update("last_used_at", time.Now())

	return row.UserID, true
}

// DeleteToken removes a single token. Deleting an unknown token is not an
// error, logout stays idempotent
func DeleteToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(model.Token{}).Error
}

// ClearTokens invalidates every session of a user. Used on password reset
// and account deletion
func ClearTokens(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(model.Token{}).Error
}

// TokenCleanup deletes tokens that fell out of the sliding window. Wired to
// the hourly cron job and callable directly from tests
func TokenCleanup(db *gorm.DB) error {
	cutoff := time.Now().Add(-(tokenWindow - time.Millisecond))

	return db.Where("last_used_at < ?", cutoff).Delete(model.Token{}).Error
}
