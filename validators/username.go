// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import "errors"

var (
	ErrUsernameEmpty  = errors.New("Username cannot be null")
	ErrUsernameLength = errors.New("Must have min 4 and max 32 characters")
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) < 4 || len(u) > 32 {
		return ErrUsernameLength
	}

	return nil
}
