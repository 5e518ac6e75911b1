// Package vault connects the identifier engine to a folder of note files: it
// snapshots the folder into records and applies rename plans back to it.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/meysamhadeli/zettel/utils"
)

// Scanner lists note files under Root.
type Scanner struct {
	Root       string
	Extensions []string
	IgnoreFile string
}

// NewScanner creates a scanner for root. Extensions default to ".md".
func NewScanner(root string, extensions []string, ignoreFile string) *Scanner {
	if len(extensions) == 0 {
		extensions = []string{".md"}
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &Scanner{Root: root, Extensions: normalized, IgnoreFile: ignoreFile}
}

// Scan walks Root and snapshots every note file. The id of a file is its name
// without extension; whether it parses is up to the forest builder.
func (s *Scanner) Scan(ctx context.Context) (*Snapshot, error) {
	patterns, err := utils.GetIgnorePatterns(s.Root, s.IgnoreFile)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Root:      s.Root,
		Timestamp: time.Now(),
		Files:     make(map[string]FileSnapshot),
	}

	err = filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relativePath, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		if relativePath == "." {
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if utils.IsDefaultIgnored(relativePath) || utils.IsIgnored(relativePath, patterns) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext, ok := s.matchExtension(d.Name())
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %s, error: %w", relativePath, err)
		}

		snapshot.Files[relativePath] = FileSnapshot{
			RelativePath: relativePath,
			Basename:     d.Name(),
			ID:           d.Name()[:len(d.Name())-len(ext)],
			ModTime:      info.ModTime(),
			Size:         info.Size(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Root, err)
	}

	return snapshot, nil
}

func (s *Scanner) matchExtension(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range s.Extensions {
		if strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			return name[len(name)-len(ext):], true
		}
	}
	return "", false
}
