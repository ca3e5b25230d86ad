package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameValidator(t *testing.T) {
	assert.ErrorIs(t, UsernameValidator(""), ErrUsernameEmpty)
	assert.ErrorIs(t, UsernameValidator("abc"), ErrUsernameLength)
	assert.ErrorIs(t, UsernameValidator(strings.Repeat("a", 33)), ErrUsernameLength)
	assert.NoError(t, UsernameValidator("user1"))
	assert.NoError(t, UsernameValidator(strings.Repeat("a", 32)))
}

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.NoError(t, EmailValidator("user1@email.com"))
}

func TestPasswordValidator(t *testing.T) {
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("P4ss"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator("alllowercase1"), ErrPasswordPattern)
	assert.ErrorIs(t, PasswordValidator("ALLUPPERCASE1"), ErrPasswordPattern)
	assert.ErrorIs(t, PasswordValidator("NoDigitsHere"), ErrPasswordPattern)
	assert.NoError(t, PasswordValidator("P4ssword"))
}

func TestHoaxContentValidator(t *testing.T) {
	assert.ErrorIs(t, HoaxContentValidator("short"), ErrHoaxContentLength)
	assert.ErrorIs(t, HoaxContentValidator(strings.Repeat("x", 5001)), ErrHoaxContentLength)
	assert.NoError(t, HoaxContentValidator(strings.Repeat("x", 10)))
	assert.NoError(t, HoaxContentValidator(strings.Repeat("x", 5000)))
}

func TestProfileImageValidator(t *testing.T) {
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 64)...)

	assert.NoError(t, ProfileImageValidator(png))
	assert.NoError(t, ProfileImageValidator(jpeg))
	assert.ErrorIs(t, ProfileImageValidator([]byte("plain text")), ErrImageTypeNotAllowed)

	// Size is checked before type, an oversized text file reports the size
	big := append([]byte("x"), make([]byte, 2<<20)...)
	assert.ErrorIs(t, ProfileImageValidator(big), ErrImageTooLarge)
}
