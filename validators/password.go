package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty    = errors.New("Password cannot be null")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrPasswordPattern  = errors.New("Password must have at least 1 uppercase, 1 lowercase letter and 1 number")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 6 {
		return ErrPasswordTooShort
	}

	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !upper || !lower || !digit {
		return ErrPasswordPattern
	}

	return nil
}
