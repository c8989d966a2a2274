// Package desktop discovers, parses and searches freedesktop application
// descriptors (*.desktop files).
package desktop

import (
	"os"
	"strings"
)

const (
	// Extension is the file suffix of application descriptors.
	Extension = ".desktop"
	// DefaultIcon is used when a descriptor carries no Icon key.
	DefaultIcon = "application-x-executable"

	sectionMarker = "[Desktop Entry]"
)

// execPlaceholders removes field codes that would otherwise be substituted
// with files or URLs at launch time.
var execPlaceholders = strings.NewReplacer(
	"%f", "",
	"%F", "",
	"%u", "",
	"%U", "",
	"%i", "",
	"%c", "",
	"%k", "",
)

// Record is a launchable application parsed from one descriptor file.
type Record struct {
	Name string
	Exec string
	Icon string
	// Path is the descriptor the record came from. Launching goes through the
	// descriptor rather than Exec since many commands need their file name.
	Path string
}

// ParseFile reads and parses the descriptor at path.
func ParseFile(path string) (Record, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Record{}, false
	}
	return Parse(path, content)
}

// Parse turns descriptor text into a Record. It reports false for hidden
// entries, non-Application entries and entries without Name or Exec.
// Malformed input is never an error; unknown keys are ignored and the first
// occurrence of a key wins.
func Parse(path string, content []byte) (Record, bool) {
	lines := splitLines(string(content))

	var hasSection, isApplication bool
	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case sectionMarker:
			hasSection = true
		case "NoDisplay=true":
			return Record{}, false
		case "Type=Application":
			isApplication = true
		}
	}
	if !hasSection || !isApplication {
		return Record{}, false
	}

	name, _ := field(lines, "Name")
	exec, _ := field(lines, "Exec")
	exec = strings.TrimSpace(execPlaceholders.Replace(exec))
	icon, ok := field(lines, "Icon")
	if !ok {
		icon = DefaultIcon
	}

	if name == "" || exec == "" {
		return Record{}, false
	}

	return Record{
		Name: name,
		Exec: exec,
		Icon: icon,
		Path: path,
	}, true
}

func field(lines []string, key string) (string, bool) {
	prefix := key + "="
	for _, line := range lines {
		if value, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
