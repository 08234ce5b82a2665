// Package runlock serialises batch runs over one working tree. Two
// concurrent runs sharing a work directory would trample each other's
// intermediate files; the flock fails the second run fast instead.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock guards a work directory for the duration of one run.
type Lock struct {
	path string
	lock *flock.Flock
}

// New prepares a lock file inside workDir. Nothing is acquired yet.
func New(workDir string) *Lock {
	path := filepath.Join(workDir, "dashforge.lock")
	return &Lock{path: path, lock: flock.New(path)}
}

// Acquire takes the lock without blocking. A held lock means another run is
// active on the same tree.
func (l *Lock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %q: %w", l.path, err)
	}
	if !ok {
		return errors.New("another dashforge run is already using this work directory")
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
