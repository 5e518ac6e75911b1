package vault

import (
	"sort"
	"strconv"
	"time"

	"github.com/meysamhadeli/zettel/forest"
	"github.com/zeebo/xxh3"
)

// FileSnapshot is the state of a single note file.
type FileSnapshot struct {
	RelativePath string    `json:"relative_path"`
	Basename     string    `json:"basename"`
	ID           string    `json:"id"`
	ModTime      time.Time `json:"mod_time"`
	Size         int64     `json:"size"`
}

// Snapshot is a point-in-time listing of the notes under Root, keyed by
// slash separated relative path.
type Snapshot struct {
	Root      string                  `json:"root"`
	Timestamp time.Time               `json:"timestamp"`
	Files     map[string]FileSnapshot `json:"files"`
}

// Records returns one record per file, ordered by path.
func (s *Snapshot) Records() []forest.Record {
	records := make([]forest.Record, 0, len(s.Files))
	for _, path := range s.paths() {
		f := s.Files[path]
		records = append(records, forest.Record{ID: f.ID, Path: f.RelativePath, Basename: f.Basename})
	}
	return records
}

// Fingerprint hashes every path, size and modification time. Two snapshots of
// an unchanged folder share a fingerprint.
func (s *Snapshot) Fingerprint() uint64 {
	h := xxh3.New()
	for _, path := range s.paths() {
		f := s.Files[path]
		_, _ = h.WriteString(path)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.FormatInt(f.Size, 10))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.FormatInt(f.ModTime.UnixNano(), 10))
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

// Diff lists the paths that were added, removed or modified between s and
// other, sorted.
func (s *Snapshot) Diff(other *Snapshot) []string {
	var changed []string
	for path, f := range s.Files {
		o, ok := other.Files[path]
		if !ok || o.Size != f.Size || !o.ModTime.Equal(f.ModTime) {
			changed = append(changed, path)
		}
	}
	for path := range other.Files {
		if _, ok := s.Files[path]; !ok {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}

func (s *Snapshot) paths() []string {
	paths := make([]string, 0, len(s.Files))
	for path := range s.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
