//go:build unix

package instance

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Claim takes an exclusive advisory lock on the lock file and records this
// process's pid in it. Checking for an owner and claiming are a single step:
// the kernel drops the lock when the owner dies, so a stale file never blocks.
func (l *Lock) Claim() (*Claim, error) {
	f, err := os.OpenFile(l.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			pid, _ := readPID(l.Path)
			return nil, &HeldError{PID: pid}
		}
		return nil, fmt.Errorf("lock %s: %w", l.Path, err)
	}

	if err := writePID(f); err != nil {
		unlock(f)
		_ = f.Close()
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &Claim{path: l.Path, file: f}, nil
}

// held reports whether some process holds the advisory lock on path. When
// the file cannot be opened the answer is unknown and held reports true.
func held(path string) bool {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return true
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return true
	}
	unlock(f)
	return false
}

func unlock(f *os.File) {
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

func terminate(pid int) error {
	err := unix.Kill(pid, unix.SIGTERM)
	if errors.Is(err, unix.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}
