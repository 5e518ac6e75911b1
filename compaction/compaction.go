// Package compaction closes the gaps that deletions leave in sibling letter
// runs, renaming every affected descendant and file along the way.
package compaction

import (
	"sort"
	"strings"

	"github.com/meysamhadeli/zettel/forest"
	"github.com/meysamhadeli/zettel/identifier"
)

// RenameMap records every id and path whose canonical name changed.
type RenameMap struct {
	IDs   map[string]string
	Paths map[string]string
}

// Rename is one entry of a RenameMap.
type Rename struct {
	From string
	To   string
}

// Result is the compacted forest and the renames that produce it.
type Result struct {
	Forest  forest.Forest
	Renames RenameMap
}

// Compact relabels every run of sibling letter segments to a, b, c, ... in
// sibling order, keeping number segments as they are. A renamed node carries
// its descendants along, and every renamed node with a file gets a new
// basename and path.
func Compact(f forest.Forest) Result {
	renames := RenameMap{IDs: map[string]string{}, Paths: map[string]string{}}
	roots := compactLevel(f.Roots, identifier.ID{}, renames)
	return Result{Forest: forest.Forest{Roots: roots}, Renames: renames}
}

func compactLevel(nodes []forest.Node, parent identifier.ID, renames RenameMap) []forest.Node {
	if len(nodes) == 0 {
		return nil
	}

	sorted := make([]forest.Node, len(nodes))
	copy(sorted, nodes)
	forest.SortNodes(sorted)

	out := make([]forest.Node, 0, len(sorted))
	for i, n := range sorted {
		last := n.ID.Last()
		if last.Kind == identifier.Letters {
			last.Value = identifier.EncodeLetters(i)
		}

		var newID identifier.ID
		if parent.IsZero() {
			newID = identifier.MustNew([]identifier.Segment{last})
		} else {
			newID = parent.Append(last)
		}
		out = append(out, relabel(n, newID, renames))
	}

	// Past "z" the generated run no longer sorts the way it was generated.
	forest.SortNodes(out)
	return out
}

func relabel(n forest.Node, newID identifier.ID, renames RenameMap) forest.Node {
	oldID := n.ID.String()

	var file *forest.FileRef
	if n.File != nil {
		ref := *n.File
		file = &ref
	}

	if newID.String() != oldID {
		renames.IDs[oldID] = newID.String()
		if file != nil {
			base := renameBasename(file.Basename, oldID, newID.String())
			path := replaceBasename(file.Path, base)
			renames.Paths[file.Path] = path
			file = &forest.FileRef{Path: path, Basename: base}
		}
	}

	return forest.Node{
		ID:       newID,
		File:     file,
		Children: compactLevel(n.Children, newID, renames),
	}
}

// renameBasename swaps the id prefix of a file name, or prepends "<id>-" when
// the name does not start with the old id.
func renameBasename(base, oldID, newID string) string {
	if strings.HasPrefix(base, oldID) {
		return newID + base[len(oldID):]
	}
	return newID + "-" + base
}

// replaceBasename swaps the last slash separated component of p.
func replaceBasename(p, base string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return base
	}
	return p[:i+1] + base
}

// Empty reports whether nothing was renamed.
func (m RenameMap) Empty() bool {
	return len(m.IDs) == 0 && len(m.Paths) == 0
}

// SortedIDs lists id renames ordered by old id.
func (m RenameMap) SortedIDs() []Rename {
	return sortedRenames(m.IDs, func(a, b string) bool {
		return identifier.Less(identifier.MustParse(a), identifier.MustParse(b))
	})
}

// SortedPaths lists path renames ordered by old path.
func (m RenameMap) SortedPaths() []Rename {
	return sortedRenames(m.Paths, func(a, b string) bool { return a < b })
}

func sortedRenames(m map[string]string, less func(a, b string) bool) []Rename {
	out := make([]Rename, 0, len(m))
	for from, to := range m {
		out = append(out, Rename{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].From, out[j].From) })
	return out
}

// Rewrite applies renames to a record snapshot. Only records whose path was
// renamed change; their id and basename follow the new path.
func Rewrite(records []forest.Record, renames RenameMap) []forest.Record {
	out := make([]forest.Record, len(records))
	for i, r := range records {
		if newPath, ok := renames.Paths[r.Path]; ok {
			r.Path = newPath
			r.Basename = newPath[strings.LastIndex(newPath, "/")+1:]
			if newID, ok := renames.IDs[r.ID]; ok {
				r.ID = newID
			}
		}
		out[i] = r
	}
	return out
}

// Adopted rebuilds the forest from records after the renames and lists, in
// tree order, the ids that appear in it but not in r.Forest. These are notes
// left out of the original forest, usually orphans, whose missing parent id
// is now taken by a renamed note.
func Adopted(records []forest.Record, r Result) []string {
	rebuilt := forest.Build(Rewrite(records, r.Renames))
	if rebuilt.Equal(r.Forest) {
		return nil
	}

	compacted := make(map[string]bool)
	for _, id := range r.Forest.IDs() {
		compacted[id] = true
	}
	var adopted []string
	for _, id := range rebuilt.IDs() {
		if !compacted[id] {
			adopted = append(adopted, id)
		}
	}
	return adopted
}
