package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

var (
	debugEnabled atomic.Bool
	runID        = uuid.NewString()
)

// Setup routes the standard logger to stderr and, when path is non-empty, to a
// rotating log file. The returned closer flushes the file sink.
func Setup(path string) (io.Closer, error) {
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("bitpop[%s] ", shortRunID()))
	if path == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.SetOutput(os.Stderr)
		return nopCloser{}, fmt.Errorf("ensure log directory: %w", err)
	}

	sink := &lj.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, sink))
	return sink, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// RunID identifies this process in log output.
func RunID() string {
	return runID
}

func shortRunID() string {
	if len(runID) < 8 {
		return runID
	}
	return runID[:8]
}

// EnableDebug turns on verbose debug logging for the application lifecycle.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled (run %s)", runID)
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}
