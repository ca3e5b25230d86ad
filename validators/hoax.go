package validators

import "errors"

var ErrHoaxContentLength = errors.New("Hoax must be minimum 10 and maximum 5000 characters")

const (
	hoaxContentMin = 10
	hoaxContentMax = 5000
)

func HoaxContentValidator(content string) error {
	if len(content) < hoaxContentMin || len(content) > hoaxContentMax {
		return ErrHoaxContentLength
	}

	return nil
}
