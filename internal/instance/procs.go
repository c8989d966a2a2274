package instance

import (
	"io/fs"
	"math"
	"os"
	"strconv"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// ProcessTable answers whether a pid belongs to a running process.
type ProcessTable interface {
	Exists(pid int) bool
}

// ProcFS looks pids up as directories of a procfs mount.
type ProcFS struct {
	FS fs.FS
}

// Exists reports whether <pid> is present in the process table.
func (p ProcFS) Exists(pid int) bool {
	if pid <= 0 || p.FS == nil {
		return false
	}
	info, err := fs.Stat(p.FS, strconv.Itoa(pid))
	return err == nil && info.IsDir()
}

// PsutilTable queries the platform process list through gopsutil. It serves
// hosts without a procfs mount.
type PsutilTable struct{}

func (PsutilTable) Exists(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}
	ok, err := gopsproc.PidExists(int32(pid))
	return err == nil && ok
}

// DefaultProcessTable prefers /proc and falls back to gopsutil.
func DefaultProcessTable() ProcessTable {
	if info, err := os.Stat("/proc/self"); err == nil && info.IsDir() {
		return ProcFS{FS: os.DirFS("/proc")}
	}
	return PsutilTable{}
}
