package validators

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrImageTooLarge       = errors.New("Your profile image cannot be bigger than 2MB")
	ErrImageTypeNotAllowed = errors.New("Only JPEG or PNG files are allowed")
)

const maxProfileImageSize = 2 << 20

// ProfileImageValidator checks the decoded image bytes before they reach the
// file store. The type check sniffs the content instead of trusting anything
// the client claims
func ProfileImageValidator(data []byte) error {
	if len(data) > maxProfileImageSize {
		return ErrImageTooLarge
	}

	mime := mimetype.Detect(data)
	if !mime.Is("image/png") && !mime.Is("image/jpeg") {
		return ErrImageTypeNotAllowed
	}

	return nil
}
