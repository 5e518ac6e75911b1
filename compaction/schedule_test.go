package compaction

import (
	"strings"
	"testing"

	"github.com/meysamhadeli/zettel/forest"
	"github.com/meysamhadeli/zettel/identifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay runs steps against a set of existing files and fails on overwrite.
func replay(t *testing.T, files map[string]string, steps []Step) map[string]string {
	t.Helper()
	for _, s := range steps {
		content, ok := files[s.From]
		require.True(t, ok, "missing source %s", s.From)
		_, exists := files[s.To]
		require.False(t, exists, "step %s -> %s overwrites a file", s.From, s.To)
		delete(files, s.From)
		files[s.To] = content
	}
	return files
}

func TestSchedule_Chain(t *testing.T) {
	paths := map[string]string{"c.md": "b.md", "f.md": "c.md"}
	steps, err := Schedule(paths)
	require.NoError(t, err)

	assert.Equal(t, []Step{{From: "c.md", To: "b.md"}, {From: "f.md", To: "c.md"}}, steps)
}

func TestSchedule_ChainTailFirst(t *testing.T) {
	paths := map[string]string{"a.md": "b.md", "b.md": "c.md", "c.md": "d.md"}
	steps, err := Schedule(paths)
	require.NoError(t, err)

	files := replay(t, map[string]string{"a.md": "A", "b.md": "B", "c.md": "C"}, steps)
	assert.Equal(t, map[string]string{"b.md": "A", "c.md": "B", "d.md": "C"}, files)
}

func TestSchedule_CycleUsesTemporaryName(t *testing.T) {
	paths := map[string]string{"x.md": "y.md", "y.md": "x.md"}
	steps, err := Schedule(paths)
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.True(t, steps[0].Temporary)
	assert.True(t, strings.HasPrefix(steps[0].To, "x.md"+tempSuffix))

	files := replay(t, map[string]string{"x.md": "X", "y.md": "Y"}, steps)
	assert.Equal(t, map[string]string{"x.md": "Y", "y.md": "X"}, files)
}

func TestSchedule_SkipsNoOps(t *testing.T) {
	steps, err := Schedule(map[string]string{"a.md": "a.md"})
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestSchedule_ConflictingTargets(t *testing.T) {
	_, err := Schedule(map[string]string{"a.md": "c.md", "b.md": "c.md"})
	assert.ErrorIs(t, err, ErrConflictingTargets)
}

func TestSchedule_CompactionPastZ(t *testing.T) {
	ids := make([]string, 0, 27)
	for i := 0; i < 27; i++ {
		ids = append(ids, identifier.EncodeLetters(i))
	}
	snapshot := records(ids...)
	result := Compact(forest.Build(snapshot))

	steps, err := Schedule(result.Renames.Paths)
	require.NoError(t, err)

	files := map[string]string{}
	for _, r := range snapshot {
		files[r.Path] = r.ID
	}
	files = replay(t, files, steps)

	for _, r := range Rewrite(snapshot, result.Renames) {
		_, ok := files[r.Path]
		assert.True(t, ok, "expected %s after replay", r.Path)
	}
	assert.Equal(t, "z", files["notes/aa.md"])
	assert.Equal(t, "aa", files["notes/b.md"])
	assert.Len(t, files, 27)
}
