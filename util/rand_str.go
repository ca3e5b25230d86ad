// Package util contains small helpers used across the application that don't
// match any other package
package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandStr returns an n character alphanumeric string backed by crypto/rand.
// Used for session, activation and password reset tokens as well as for
// stored file names
func RandStr(n int) string {
	s, err := gonanoid.Generate(charset, n)
	if err != nil {
		// Generate only fails when the OS entropy source is unusable
		panic(err)
	}

	return s
}
