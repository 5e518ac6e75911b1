package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/zettel/compaction"
	"github.com/meysamhadeli/zettel/forest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNotes(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# "+name+"\n"), 0644))
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root,
		"a.md", "a1.md", "sub/b.MD", "README.md", "image.png",
		".obsidian/c.md", "drafts/d.md", "scratch.md",
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".zettel-ignore"), []byte("# local\ndrafts/\nscratch.md\n"), 0644))

	snapshot, err := NewScanner(root, []string{"md"}, "").Scan(context.Background())
	require.NoError(t, err)

	records := snapshot.Records()
	assert.Equal(t, []forest.Record{
		{ID: "README", Path: "README.md", Basename: "README.md"},
		{ID: "a", Path: "a.md", Basename: "a.md"},
		{ID: "a1", Path: "a1.md", Basename: "a1.md"},
		{ID: "b", Path: "sub/b.MD", Basename: "b.MD"},
	}, records)

	f := forest.Build(records)
	assert.Equal(t, []string{"a", "a1", "b"}, f.IDs())
}

func TestScanner_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(root, nil, "").Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshot_FingerprintAndDiff(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "b.md")
	scanner := NewScanner(root, nil, "")

	first, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	second, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Empty(t, first.Diff(second))

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("changed content"), 0644))
	writeNotes(t, root, "c.md")
	require.NoError(t, os.Remove(filepath.Join(root, "b.md")))

	third, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), third.Fingerprint())
	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, first.Diff(third))
}

func TestApplier_CompactsFolder(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "c.md", "c1.md", "c1b.md", "sub/f.md", "f1.md")
	scanner := NewScanner(root, nil, "")
	ctx := context.Background()

	snapshot, err := scanner.Scan(ctx)
	require.NoError(t, err)
	result := compaction.Compact(forest.Build(snapshot.Records()))
	require.Equal(t, "b1a.md", filepath.Base(result.Renames.Paths["c1b.md"]))

	summary, err := NewApplier(scanner).Apply(ctx, snapshot, result.Renames.Paths)
	require.NoError(t, err)
	assert.Len(t, summary.Renamed, len(result.Renames.Paths))
	assert.Empty(t, summary.Failed)

	after, err := scanner.Scan(ctx)
	require.NoError(t, err)
	rebuilt := forest.Build(after.Records())
	assert.True(t, rebuilt.Equal(result.Forest), "got %v", rebuilt.IDs())
	assert.Equal(t, []string{"a", "b", "b1", "b1a", "c", "c1"}, rebuilt.IDs())

	content, err := os.ReadFile(filepath.Join(root, "sub", "c.md"))
	require.NoError(t, err)
	assert.Equal(t, "# sub/f.md\n", string(content))
}

func TestApplier_StaleSnapshot(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "c.md")
	scanner := NewScanner(root, nil, "")
	ctx := context.Background()

	snapshot, err := scanner.Scan(ctx)
	require.NoError(t, err)
	writeNotes(t, root, "d.md")

	_, err = NewApplier(scanner).Apply(ctx, snapshot, map[string]string{"c.md": "b.md"})
	assert.ErrorIs(t, err, ErrStaleSnapshot)
	assert.FileExists(t, filepath.Join(root, "c.md"))
}

func TestApplier_RejectsBadPlans(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "c.md", "notes.txt")
	scanner := NewScanner(root, nil, "")
	ctx := context.Background()
	snapshot, err := scanner.Scan(ctx)
	require.NoError(t, err)
	applier := NewApplier(scanner)

	_, err = applier.Apply(ctx, snapshot, map[string]string{"x.md": "y.md"})
	assert.ErrorIs(t, err, ErrMissingSource)

	_, err = applier.Apply(ctx, snapshot, map[string]string{"c.md": "notes.txt"})
	assert.ErrorIs(t, err, ErrTargetExists)

	_, err = applier.Apply(ctx, snapshot, map[string]string{"c.md": "../escape.md"})
	assert.ErrorIs(t, err, ErrOutsideRoot)

	_, err = applier.Apply(ctx, snapshot, map[string]string{"a.md": "b.md", "c.md": "b.md"})
	assert.ErrorIs(t, err, compaction.ErrConflictingTargets)
}

func TestApplier_DryRun(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "c.md")
	scanner := NewScanner(root, nil, "")
	ctx := context.Background()
	snapshot, err := scanner.Scan(ctx)
	require.NoError(t, err)

	applier := NewApplier(scanner)
	applier.DryRun = true
	summary, err := applier.Apply(ctx, snapshot, map[string]string{"c.md": "b.md"})
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, []string{"c.md -> b.md"}, summary.Renamed)
	assert.FileExists(t, filepath.Join(root, "c.md"))
	assert.NoFileExists(t, filepath.Join(root, "b.md"))
}

type failingMover struct {
	calls  int
	failAt int
}

func (m *failingMover) Move(ctx context.Context, from, to string) error {
	m.calls++
	if m.calls == m.failAt {
		return errors.New("disk full")
	}
	return OSMover{}.Move(ctx, from, to)
}

func TestApplier_RollsBackOnFailure(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "c.md", "e.md")
	scanner := NewScanner(root, nil, "")
	ctx := context.Background()
	snapshot, err := scanner.Scan(ctx)
	require.NoError(t, err)

	applier := NewApplier(scanner)
	applier.Mover = &failingMover{failAt: 2}
	summary, err := applier.Apply(ctx, snapshot, map[string]string{"c.md": "b.md", "e.md": "c.md"})
	require.Error(t, err)

	assert.Equal(t, []string{"e.md"}, summary.Failed)
	assert.Equal(t, []string{"c.md"}, summary.RolledBack)
	assert.FileExists(t, filepath.Join(root, "c.md"))
	assert.FileExists(t, filepath.Join(root, "e.md"))
	assert.NoFileExists(t, filepath.Join(root, "b.md"))
}

func TestOSMover_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "b.md")

	err := OSMover{}.Move(context.Background(), filepath.Join(root, "a.md"), filepath.Join(root, "b.md"))
	assert.ErrorIs(t, err, ErrTargetExists)
}
