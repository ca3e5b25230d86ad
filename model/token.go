package model

import "time"

// Token is an opaque bearer session token. Validity is a sliding
// 7 day window over LastUsedAt, refreshed on every successful use
type Token struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Token      string    `gorm:"uniqueIndex;not null"`
	UserID     uint      `gorm:"index;not null"`
	LastUsedAt time.Time `gorm:"not null"`
}
