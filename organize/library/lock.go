package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file kept inside the library directory.
const LockFileName = ".tuneshelf.lock"

// DirLock serializes the resolve+move pair per destination directory.
// A single sequential run never races against itself, but the uniqueness
// guarantee of collision resolution only holds if every writer to the
// directory holds this lock across the check and the move.
type DirLock struct {
	fl *flock.Flock
}

// NewDirLock creates the directory if needed and returns a lock backed by
// a dotfile inside it.
func NewDirLock(dir string) (*DirLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create library directory %s: %w", dir, err)
	}
	return &DirLock{fl: flock.New(filepath.Join(dir, LockFileName))}, nil
}

// Lock blocks until the directory lock is held.
func (l *DirLock) Lock() error {
	return l.fl.Lock()
}

// Unlock releases the directory lock.
func (l *DirLock) Unlock() error {
	return l.fl.Unlock()
}
