package desktop

import (
	"errors"
	"fmt"
	"path/filepath"
)

// launcherCommand starts a descriptor by its file name.
const launcherCommand = "gtk-launch"

// Starter spawns a detached command.
type Starter interface {
	Start(name string, args ...string) error
}

// Launch starts rec through its descriptor file. It does not wait for the
// application to exit.
func Launch(starter Starter, rec Record) error {
	if rec.Path == "" {
		return errors.New("record has no descriptor path")
	}
	if err := starter.Start(launcherCommand, filepath.Base(rec.Path)); err != nil {
		return fmt.Errorf("launch %s: %w", rec.Name, err)
	}
	return nil
}
