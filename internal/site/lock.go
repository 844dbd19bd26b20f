package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = ".careers.lock"

var ErrLocked = errors.New("site: another run holds the output lock")

// lockOutput takes an exclusive lock on dir so overlapping runs cannot
// interleave their writes.
func lockOutput(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("site: mkdir %s: %w", dir, err)
	}
	fl := flock.New(filepath.Join(dir, lockName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("site: lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl, nil
}
