package model

import "time"

// FileAttachment is an uploaded file that may later be bound to a hoax.
// HoaxID stays nil until the owning hoax is posted. Rows that are never
// associated are garbage collected by the daily sweep
type FileAttachment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename   string    `gorm:"not null" json:"filename"`
	FileType   *string   `json:"fileType"`
	UploadDate time.Time `gorm:"not null" json:"-"`
	HoaxID     *uint     `gorm:"index" json:"-"`
}
