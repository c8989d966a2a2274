// Package instance keeps a single panel running per user session. A second
// launch finds the first through a pid lock file, asks it to terminate and
// exits, so launching the panel again toggles it closed.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/example/bitpop/internal/logging"
)

// FileName is the lock file name inside the temporary directory.
const FileName = "bitpop.lock"

// ErrHeld reports that another process owns the lock.
var ErrHeld = errors.New("instance lock held by another process")

// HeldError carries the pid found in a lock file owned by someone else. PID is
// zero when the owner had not written it yet.
type HeldError struct {
	PID int
}

func (e *HeldError) Error() string {
	if e.PID <= 0 {
		return ErrHeld.Error()
	}
	return fmt.Sprintf("%s (pid %d)", ErrHeld, e.PID)
}

func (e *HeldError) Is(target error) bool {
	return target == ErrHeld
}

// DefaultPath returns the well-known lock file location.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), FileName)
}

// Lock coordinates instances through the lock file at Path.
type Lock struct {
	Path  string
	Procs ProcessTable
}

// New returns a Lock for path backed by the host process table.
func New(path string) *Lock {
	if path == "" {
		path = DefaultPath()
	}
	return &Lock{Path: path, Procs: DefaultProcessTable()}
}

// Detect returns the pid recorded in the lock file when that process is
// still alive. An absent, unreadable, malformed or stale lock file is the
// same as no instance.
func (l *Lock) Detect() (int, bool) {
	pid, err := readPID(l.Path)
	if err != nil {
		return 0, false
	}
	if pid == os.Getpid() {
		return 0, false
	}
	if !l.procs().Exists(pid) {
		logging.Debugf("lock file %s references dead pid %d", l.Path, pid)
		return 0, false
	}
	return pid, true
}

// Acquire runs the startup handshake. If a live instance exists it is asked
// to terminate and Acquire returns its pid with a nil Claim; the caller should
// exit. Otherwise the lock is claimed for this process. A live pid in a file
// nobody holds locked belongs to an unrelated process and is left alone.
func (l *Lock) Acquire() (*Claim, int, error) {
	if pid, ok := l.Detect(); ok {
		if held(l.Path) {
			return nil, pid, l.Dismiss(pid)
		}
		logging.Debugf("lock file %s names pid %d but is not held; reclaiming", l.Path, pid)
	}

	claim, err := l.Claim()
	if err == nil {
		return claim, 0, nil
	}

	var held *HeldError
	if errors.As(err, &held) && held.PID > 0 && held.PID != os.Getpid() {
		return nil, held.PID, l.Dismiss(held.PID)
	}
	return nil, 0, err
}

// Dismiss sends the termination signal to pid and removes the lock file.
// A process that already exited is not an error.
func (l *Lock) Dismiss(pid int) error {
	var errs []error
	if err := terminate(pid); err != nil && !errors.Is(err, os.ErrProcessDone) {
		errs = append(errs, fmt.Errorf("signal pid %d: %w", pid, err))
	}
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("remove lock file: %w", err))
	}
	return errors.Join(errs...)
}

func (l *Lock) procs() ProcessTable {
	if l.Procs == nil {
		return DefaultProcessTable()
	}
	return l.Procs
}

// Claim is this process's ownership of the lock file.
type Claim struct {
	path string
	file *os.File
	once sync.Once
}

// Path returns the claimed lock file path.
func (c *Claim) Path() string {
	return c.path
}

// Release removes the lock file and drops the lock. It is safe to call more
// than once and from the termination handler. The file is only removed while
// it is still the one this process created.
func (c *Claim) Release() {
	c.once.Do(func() {
		if c.file == nil {
			return
		}
		if owned, err := c.file.Stat(); err == nil {
			if current, err := os.Stat(c.path); err == nil && os.SameFile(owned, current) {
				_ = os.Remove(c.path)
			}
		}
		unlock(c.file)
		_ = c.file.Close()
	})
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid in %s: %w", path, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s: %d", path, pid)
	}
	return pid, nil
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0); err != nil {
		return err
	}
	return f.Sync()
}
