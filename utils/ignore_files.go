package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultIgnoreFile is looked up in the notes root.
const DefaultIgnoreFile = ".zettel-ignore"

// ignoreCacheEntry holds cached ignore patterns with metadata
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

// Global cache for ignore patterns
var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// defaultIgnored are directory or file names never scanned for notes.
var defaultIgnored = []string{
	".git",
	".svn",
	".obsidian",
	".trash",
	".cache",
	".zettel",
	".idea",
	".vscode",
	"node_modules",
	"*.tmp",
	"*.bak",
	"*.swp",
	"*.zettel-tmp-*",
}

// GetIgnorePatterns reads the patterns of the ignore file in root. A missing
// file yields no patterns. Results are cached until the file changes.
func GetIgnorePatterns(root string, name string) ([]string, error) {
	if name == "" {
		name = DefaultIgnoreFile
	}
	ignorePath := filepath.Join(root, name)

	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking %s: %w", name, err)
	}

	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.patterns, nil
		}
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: patterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return patterns, nil
}

// IsDefaultIgnored reports whether any component of a slash separated
// relative path is a name that is never scanned.
func IsDefaultIgnored(path string) bool {
	for _, part := range strings.Split(path, "/") {
		part = strings.ToLower(part)
		for _, pattern := range defaultIgnored {
			if strings.ContainsAny(pattern, "*?[") {
				if ok, _ := filepath.Match(pattern, part); ok {
					return true
				}
				continue
			}
			if part == pattern {
				return true
			}
		}
	}
	return false
}

// readIgnoreFile returns the non-empty, non-comment lines of the file.
func readIgnoreFile(ignorePath string) ([]string, error) {
	content, err := os.ReadFile(ignorePath)
	if err != nil {
		return nil, err
	}
	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsIgnored checks a slash separated relative path against ignore patterns.
// A pattern ending in "/" ignores a whole directory; other patterns match the
// full path or the file name.
func IsIgnored(path string, patterns []string) bool {
	base := path[strings.LastIndex(path, "/")+1:]
	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/") {
			if strings.HasPrefix(path+"/", pattern) {
				return true
			}
			continue
		}
		if match, _ := filepath.Match(pattern, path); match {
			return true
		}
		if match, _ := filepath.Match(pattern, base); match {
			return true
		}
	}
	return false
}

// ClearIgnoreCache clears all cached ignore patterns
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
