// Package file stores slots as one file per key below a directory, the
// closest local analogue to a browser's key/value storage.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/dwikikusuma/storefront/internal/cart/app"
)

const (
	fileExt  = ".json"
	dirPerm  = 0o755
	filePerm = 0o600
)

var (
	ErrEmptyDir   = errors.New("slot directory must not be empty")
	ErrInvalidKey = errors.New("slot key may only contain letters, digits, '.', '-' and '_'")

	keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

type SlotStore struct {
	dir string
}

// NewSlotStore creates dir if needed.
func NewSlotStore(dir string) (*SlotStore, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &SlotStore{dir: dir}, nil
}

func (s *SlotStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", app.ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(b), nil
}

// Set replaces the slot atomically: readers see either the old or the new
// value, never a partial write.
func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close slot %s: %w", key, err)
	}

	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace slot %s: %w", key, err)
	}
	return nil
}
