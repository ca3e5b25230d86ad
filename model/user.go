// Package model defines database models
package model

type User struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username           string  `gorm:"not null" json:"username"`
	Email              string  `gorm:"unique;not null" json:"email"`
	PasswordHash       string  `gorm:"not null" json:"-"`
	// Set explicitly on every insert. No column default, gorm would drop
	// an explicit false from the insert otherwise
	Inactive           bool    `gorm:"not null" json:"-"`
	ActivationToken    *string `json:"-"`
	PasswordResetToken *string `json:"-"`
	Image              *string `json:"image"`

	Tokens []Token `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Hoaxes []Hoax  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PublicUser is the sanitized shape returned by listing and profile
// endpoints. Never expose the full User row directly
type PublicUser struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Image    *string `json:"image"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Image:    u.Image,
	}
}
