package forest

import (
	"errors"

	"github.com/meysamhadeli/zettel/identifier"
)

// SkipChildren may be returned by a WalkFunc to skip a node's subtree.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node in depth-first pre-order. depth is 0 for
// roots.
type WalkFunc func(n Node, depth int) error

// Walk visits every node in tree order and stops at the first error other
// than SkipChildren.
func (f Forest) Walk(fn WalkFunc) error {
	return walk(f.Roots, 0, fn)
}

func walk(nodes []Node, depth int, fn WalkFunc) error {
	for _, n := range nodes {
		err := fn(n, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := walk(n.Children, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Len counts all nodes.
func (f Forest) Len() int {
	count := 0
	_ = f.Walk(func(Node, int) error {
		count++
		return nil
	})
	return count
}

// Find returns the node with the given canonical id.
func (f Forest) Find(id string) (Node, bool) {
	target, err := identifier.Parse(id)
	if err != nil {
		return Node{}, false
	}
	nodes := f.Roots
	for {
		var next []Node
		for _, n := range nodes {
			if n.ID.Equal(target) {
				return n, true
			}
			if n.ID.IsAncestorOf(target) {
				next = n.Children
				break
			}
		}
		if next == nil {
			return Node{}, false
		}
		nodes = next
	}
}

// IDs lists every canonical id in tree order.
func (f Forest) IDs() []string {
	var ids []string
	_ = f.Walk(func(n Node, _ int) error {
		ids = append(ids, n.ID.String())
		return nil
	})
	return ids
}

// Records flattens file-backed nodes back into records, in tree order.
func (f Forest) Records() []Record {
	var records []Record
	_ = f.Walk(func(n Node, _ int) error {
		if n.File != nil {
			records = append(records, Record{ID: n.ID.String(), Path: n.File.Path, Basename: n.File.Basename})
		}
		return nil
	})
	return records
}

// Equal reports whether both forests have the same ids, files and shape.
func (f Forest) Equal(other Forest) bool {
	return equalNodes(f.Roots, other.Roots)
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].ID.Equal(b[i].ID) {
			return false
		}
		if (a[i].File == nil) != (b[i].File == nil) {
			return false
		}
		if a[i].File != nil && *a[i].File != *b[i].File {
			return false
		}
		if !equalNodes(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}
