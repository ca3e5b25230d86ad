package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"hoaxify/hoax-api/util"
)

const storedNameLength = 10

// LocalStore keeps profile images and attachments in two directories under
// a common upload root
type LocalStore struct {
	ProfileDir    string
	AttachmentDir string
}

// NewLocalStore creates the upload folders if needed
func NewLocalStore(uploadDir, profileDir, attachmentDir string) (*LocalStore, error) {
	s := &LocalStore{
		ProfileDir:    filepath.Join(uploadDir, profileDir),
		AttachmentDir: filepath.Join(uploadDir, attachmentDir),
	}

	for _, dir := range []string{s.ProfileDir, s.AttachmentDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload folder %s, %w", dir, err)
		}
	}

	return s, nil
}

func (s *LocalStore) dir(kind Kind) string {
	if kind == Profile {
		return s.ProfileDir
	}
	return s.AttachmentDir
}

func (s *LocalStore) Save(kind Kind, data []byte, ext string) (string, error) {
	name := util.RandStr(storedNameLength) + ext

	if err := os.WriteFile(filepath.Join(s.dir(kind), name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s file, %w", kind, err)
	}

	return name, nil
}

func (s *LocalStore) Delete(kind Kind, name string) error {
	err := os.Remove(filepath.Join(s.dir(kind), filepath.Base(name)))
	if err != nil && kind == Attachment && os.IsNotExist(err) {
		// The daily sweep may race a hoax delete for the same file
		return nil
	}

	return err
}

func (s *LocalStore) Path(kind Kind, name string) (string, bool) {
	return filepath.Join(s.dir(kind), filepath.Base(name)), true
}

func (s *LocalStore) URL(Kind, string) (string, bool) {
	return "", false
}
