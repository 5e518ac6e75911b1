package utils

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitOperations handles git-related operations
type GitOperations struct {
	workingDir string
}

// NewGitOperations creates a new GitOperations instance
func NewGitOperations(workingDir string) *GitOperations {
	return &GitOperations{workingDir: workingDir}
}

// CheckGitRepo checks if the working directory is inside a git repository
func (g *GitOperations) CheckGitRepo(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = g.workingDir
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not a git repository: %s", g.workingDir)
	}
	return nil
}

// GetGitStatus returns the porcelain status of the working directory
func (g *GitOperations) GetGitStatus(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain", "--", ".")
	cmd.Dir = g.workingDir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get git status: %w", err)
	}
	return string(output), nil
}

// HasUncommittedChanges checks if there are uncommitted changes
func (g *GitOperations) HasUncommittedChanges(ctx context.Context) (bool, error) {
	status, err := g.GetGitStatus(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(status) != "", nil
}

// IsTracked reports whether git tracks the file at path.
func (g *GitOperations) IsTracked(ctx context.Context, path string) bool {
	cmd := exec.CommandContext(ctx, "git", "ls-files", "--error-unmatch", "--", path)
	cmd.Dir = g.workingDir
	return cmd.Run() == nil
}

// Move renames a tracked file with git mv so history follows it.
func (g *GitOperations) Move(ctx context.Context, from, to string) error {
	cmd := exec.CommandContext(ctx, "git", "mv", "--", from, to)
	cmd.Dir = g.workingDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git mv %s %s: %s: %w", from, to, strings.TrimSpace(string(output)), err)
	}
	return nil
}
