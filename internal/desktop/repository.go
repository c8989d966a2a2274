package desktop

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/example/bitpop/internal/logging"
)

// Repository is an immutable, name-sorted snapshot of installed applications.
// It is safe for concurrent readers.
type Repository struct {
	records []Record
}

// DefaultDirs returns the descriptor directories in priority order: the
// system-wide location, the local system location, then the user's data dir.
func DefaultDirs() []string {
	return []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
		filepath.Join(xdg.DataHome, "applications"),
	}
}

// Load scans dirs in order and builds a Repository. Missing or unreadable
// directories are skipped. When two descriptors share a Name the one found
// first wins, so earlier directories shadow later ones.
func Load(dirs ...string) *Repository {
	var found []Record
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logging.Debugf("skipping application dir %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
				continue
			}
			rec, ok := ParseFile(filepath.Join(dir, entry.Name()))
			if !ok {
				continue
			}
			found = append(found, rec)
		}
	}

	repo := New(found)
	logging.Debugf("loaded %d applications from %d directories", repo.Len(), len(dirs))
	return repo
}

// New builds a Repository from records given in priority order. Records with
// an empty Name or Exec are dropped.
func New(records []Record) *Repository {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" || rec.Exec == "" {
			continue
		}
		if _, dup := seen[rec.Name]; dup {
			continue
		}
		seen[rec.Name] = struct{}{}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return &Repository{records: out}
}

// All returns a copy of every record in display order.
func (r *Repository) All() []Record {
	if r == nil {
		return nil
	}
	return slices.Clone(r.records)
}

// Len reports the number of records.
func (r *Repository) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// Search returns up to MaxResults records whose name contains query.
func (r *Repository) Search(query string) []Record {
	if r == nil {
		return nil
	}
	return Filter(r.records, query, MaxResults)
}

// Best returns the first record matching query, used for launch-on-confirm.
func (r *Repository) Best(query string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	matches := Filter(r.records, query, 1)
	if len(matches) == 0 {
		return Record{}, false
	}
	return matches[0], true
}
