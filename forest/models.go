package forest

import (
	"errors"
	"fmt"

	"github.com/meysamhadeli/zettel/identifier"
)

var (
	ErrMissingPath     = errors.New("record has no path")
	ErrMissingBasename = errors.New("record has no basename")
)

// Record is one identifier-bearing file as supplied by a record provider.
type Record struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Basename string `json:"basename"`
}

// Validate rejects records missing a required field.
func (r Record) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("record %q: %w", r.ID, ErrMissingPath)
	}
	if r.Basename == "" {
		return fmt.Errorf("record %q: %w", r.ID, ErrMissingBasename)
	}
	return nil
}

// FileRef is an opaque reference to the file behind a node.
type FileRef struct {
	Path     string `json:"path"`
	Basename string `json:"basename"`
}

// Node is one identifier position and its sorted children.
type Node struct {
	ID       identifier.ID
	File     *FileRef
	Children []Node
}

// Forest is the sorted list of root nodes.
type Forest struct {
	Roots []Node
}

// Rejection is a record Build excluded before tree assembly.
type Rejection struct {
	Record Record
	Err    error
}

// Report lists what Build left out of the forest.
type Report struct {
	Rejected   []Rejection
	Duplicates []string // ids seen more than once; the last record won
	Orphans    []string // ids whose parent has no record, dropped with their subtree
}
