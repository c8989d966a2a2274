//go:build !unix

package instance

import (
	"errors"
	"fmt"
	"os"
)

// Claim creates the lock file exclusively. A file left behind by a dead
// owner is removed once and the create retried.
func (l *Lock) Claim() (*Claim, error) {
	f, err := os.OpenFile(l.Path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		if pid, alive := l.Detect(); alive {
			return nil, &HeldError{PID: pid}
		}
		_ = os.Remove(l.Path)
		f, err = os.OpenFile(l.Path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			pid, _ := readPID(l.Path)
			return nil, &HeldError{PID: pid}
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	if err := writePID(f); err != nil {
		_ = f.Close()
		_ = os.Remove(l.Path)
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &Claim{path: l.Path, file: f}, nil
}

// held cannot tell a live owner from a reused pid without advisory locks.
func held(string) bool { return true }

func unlock(*os.File) {}

func terminate(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return os.ErrProcessDone
	}
	return proc.Kill()
}
