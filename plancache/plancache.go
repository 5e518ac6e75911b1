// Package plancache keeps compaction plans on disk between the command that
// computes them and the one that applies them.
package plancache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/meysamhadeli/zettel/compaction"
	"github.com/meysamhadeli/zettel/vault"
	"github.com/zeebo/xxh3"
)

const planExt = ".plan"

// Plan is a compaction computed against one snapshot of a notes folder.
type Plan struct {
	Root      string
	CreatedAt time.Time
	Snapshot  *vault.Snapshot
	IDs       map[string]string
	Paths     map[string]string
}

// NewPlan captures a compaction result together with the snapshot it was
// computed from.
func NewPlan(snapshot *vault.Snapshot, renames compaction.RenameMap) *Plan {
	return &Plan{
		Root:      snapshot.Root,
		CreatedAt: time.Now(),
		Snapshot:  snapshot,
		IDs:       renames.IDs,
		Paths:     renames.Paths,
	}
}

// Renames returns the plan's rename maps.
func (p *Plan) Renames() compaction.RenameMap {
	return compaction.RenameMap{IDs: p.IDs, Paths: p.Paths}
}

// cacheEntry is the gob encoded file content.
type cacheEntry struct {
	Plan      *Plan
	Timestamp time.Time
	Key       string
}

// Stats tracks store hits and misses
type Stats struct {
	TotalRequests int64
	Hits          int64
	Misses        int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// Store is a directory of gob encoded plans, one file per key.
type Store struct {
	dir   string
	mutex sync.RWMutex
	stats *Stats
}

// NewStore creates a store in dir. An empty dir defaults to ".zettel/cache"
// under the working directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		dir = filepath.Join(cwd, ".zettel", "cache")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Store{
		dir:   dir,
		stats: &Stats{LastResetTime: time.Now()},
	}, nil
}

// Dir is the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// generateCacheKey maps a key, usually the notes root, to a file name
func (s *Store) generateCacheKey(key string) string {
	return fmt.Sprintf("%016x%s", xxh3.HashString(key), planExt)
}

func (s *Store) getCachePath(key string) string {
	return filepath.Join(s.dir, s.generateCacheKey(key))
}

// Save stores plan under key, replacing any previous plan.
func (s *Store) Save(key string, plan *Plan) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry := cacheEntry{
		Plan:      plan,
		Timestamp: time.Now(),
		Key:       key,
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	// Write then rename so a crashed save never leaves a truncated plan.
	path := s.getCachePath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// Load returns the plan stored under key.
func (s *Store) Load(key string) (*Plan, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, err := readEntry(s.getCachePath(key))
	if err != nil || entry.Key != key || entry.Plan == nil {
		s.recordMiss()
		return nil, false
	}
	s.recordHit()
	return entry.Plan, true
}

// Delete removes the plan stored under key.
func (s *Store) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.getCachePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete plan file: %w", err)
	}
	return nil
}

// Clear removes every plan file.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), planExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, file.Name())); err != nil {
			return fmt.Errorf("failed to delete plan file: %w", err)
		}
	}
	return nil
}

// CleanExpired removes plans older than maxAge and returns how many it removed.
func (s *Store) CleanExpired(maxAge time.Duration) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), planExt) {
			continue
		}
		path := filepath.Join(s.dir, file.Name())
		entry, err := readEntry(path)
		if err != nil || entry.Timestamp.Before(cutoff) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// GetCacheStats returns storage and hit/miss statistics
func (s *Store) GetCacheStats() (map[string]interface{}, error) {
	s.mutex.RLock()
	files, err := os.ReadDir(s.dir)
	s.mutex.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var count int
	var totalSize int64
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), planExt) {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		count++
		totalSize += info.Size()
	}

	s.stats.mutex.RLock()
	defer s.stats.mutex.RUnlock()

	hitRate := 0.0
	if s.stats.TotalRequests > 0 {
		hitRate = float64(s.stats.Hits) / float64(s.stats.TotalRequests) * 100
	}

	return map[string]interface{}{
		"cache_dir":      s.dir,
		"cache_files":    count,
		"total_size":     totalSize,
		"total_requests": s.stats.TotalRequests,
		"hits":           s.stats.Hits,
		"misses":         s.stats.Misses,
		"hit_rate":       hitRate,
	}, nil
}

func readEntry(path string) (*cacheEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry cacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) recordHit() {
	s.stats.mutex.Lock()
	defer s.stats.mutex.Unlock()
	s.stats.TotalRequests++
	s.stats.Hits++
}

func (s *Store) recordMiss() {
	s.stats.mutex.Lock()
	defer s.stats.mutex.Unlock()
	s.stats.TotalRequests++
	s.stats.Misses++
}
