package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIgnorePatterns(t *testing.T) {
	ClearIgnoreCache()
	dir := t.TempDir()

	patterns, err := GetIgnorePatterns(dir, "")
	require.NoError(t, err)
	assert.Empty(t, patterns)

	ignorePath := filepath.Join(dir, DefaultIgnoreFile)
	require.NoError(t, os.WriteFile(ignorePath, []byte("# drafts\ndrafts/\n\n*.draft.md\n"), 0644))

	patterns, err = GetIgnorePatterns(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"drafts/", "*.draft.md"}, patterns)

	// A rewrite with a new mtime invalidates the cached patterns.
	require.NoError(t, os.WriteFile(ignorePath, []byte("archive/\n"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(ignorePath, later, later))

	patterns, err = GetIgnorePatterns(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive/"}, patterns)
}

func TestIsDefaultIgnored(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a1.md", false},
		{"topics/a1b.md", false},
		{".git/config", true},
		{".obsidian/workspace.json", true},
		{"sub/node_modules/x.md", true},
		{".zettel/cache/0123.plan", true},
		{"a1.md.zettel-tmp-1", true},
		{"notes.swp", true},
		{".GIT/HEAD", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDefaultIgnored(tt.path))
		})
	}
}

func TestIsIgnored(t *testing.T) {
	patterns := []string{"drafts/", "*.draft.md", "inbox/*.md"}

	assert.True(t, IsIgnored("drafts/a.md", patterns))
	assert.True(t, IsIgnored("drafts", patterns))
	assert.True(t, IsIgnored("topics/a1.draft.md", patterns))
	assert.True(t, IsIgnored("inbox/b.md", patterns))
	assert.False(t, IsIgnored("inbox/sub/b.md", patterns))
	assert.False(t, IsIgnored("draftsx/a.md", patterns))
	assert.False(t, IsIgnored("a1.md", patterns))
}
