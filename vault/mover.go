package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meysamhadeli/zettel/utils"
)

// Mover renames a single file. Paths are absolute.
type Mover interface {
	Move(ctx context.Context, from, to string) error
}

// OSMover renames with os.Rename and refuses to overwrite.
type OSMover struct{}

func (OSMover) Move(_ context.Context, from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return fmt.Errorf("move %s: %w: %s", from, ErrTargetExists, to)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", to, err)
	}
	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(to), err)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s: %w", from, err)
	}
	return nil
}

// GitMover uses git mv for tracked files so history follows the rename, and
// falls back to OSMover for untracked ones.
type GitMover struct {
	Git *utils.GitOperations
}

// NewGitMover checks that dir is inside a git repository.
func NewGitMover(ctx context.Context, dir string) (*GitMover, error) {
	git := utils.NewGitOperations(dir)
	if err := git.CheckGitRepo(ctx); err != nil {
		return nil, err
	}
	return &GitMover{Git: git}, nil
}

func (m *GitMover) Move(ctx context.Context, from, to string) error {
	if !m.Git.IsTracked(ctx, from) {
		return OSMover{}.Move(ctx, from, to)
	}
	if _, err := os.Lstat(to); err == nil {
		return fmt.Errorf("move %s: %w: %s", from, ErrTargetExists, to)
	}
	return m.Git.Move(ctx, from, to)
}
