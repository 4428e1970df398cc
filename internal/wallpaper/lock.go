package wallpaper

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"wallpick/internal/errors"

	"github.com/gofrs/flock"
)

const lockRetry = 50 * time.Millisecond

// Lock serialises wallpaper changes across wallpick processes, so two
// applies never interleave their unload/preload/wallpaper calls.
type Lock struct {
	lock *flock.Flock
}

// DefaultLockPath returns ~/.cache/wallpick/apply.lock.
func DefaultLockPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "locate user cache dir")
	}
	return filepath.Join(base, "wallpick", "apply.lock"), nil
}

// NewLock creates the lock file's directory and returns the lock.
func NewLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.NewFileError("cannot create lock directory", filepath.Dir(path), errors.IOError, err)
	}
	return &Lock{lock: flock.New(path)}, nil
}

// Acquire waits for the lock until ctx is done. The returned function
// releases it.
func (l *Lock) Acquire(ctx context.Context) (func(), error) {
	if l == nil {
		return func() {}, nil
	}
	ok, err := l.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, errors.NewFileError("cannot acquire apply lock", l.lock.Path(), errors.IOError, err)
	}
	if !ok {
		return nil, errors.NewFileError("apply lock not acquired", l.lock.Path(), errors.IOError, nil)
	}
	return func() { _ = l.lock.Unlock() }, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.lock.Path() }
