package validators

import (
	"errors"
	"net/mail"
)

var (
	ErrEmailEmpty   = errors.New("E-mail cannot be null")
	ErrEmailInvalid = errors.New("E-mail is not valid")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return ErrEmailInvalid
	}

	return nil
}
