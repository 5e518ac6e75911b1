// Package forest rebuilds the tree implied by a flat list of identifier
// bearing records.
package forest

import (
	"sort"

	"github.com/meysamhadeli/zettel/identifier"
)

// Build parses every record and assembles the forest. Records whose id does
// not parse, or that miss a path or basename, are skipped. When several
// records share an id the last one wins. A record whose parent id has no
// record of its own is dropped together with its descendants.
func Build(records []Record) Forest {
	f, _ := BuildWithReport(records)
	return f
}

// BuildWithReport is Build plus an account of every record left out.
func BuildWithReport(records []Record) (Forest, Report) {
	var report Report

	type entry struct {
		id   identifier.ID
		file FileRef
	}

	byID := make(map[string]entry, len(records))
	order := make([]string, 0, len(records))
	seen := make(map[string]bool)

	for _, r := range records {
		if err := r.Validate(); err != nil {
			report.Rejected = append(report.Rejected, Rejection{Record: r, Err: err})
			continue
		}
		id, err := identifier.Parse(r.ID)
		if err != nil {
			report.Rejected = append(report.Rejected, Rejection{Record: r, Err: err})
			continue
		}
		key := id.String()
		if _, exists := byID[key]; exists {
			if !seen[key] {
				report.Duplicates = append(report.Duplicates, key)
				seen[key] = true
			}
		} else {
			order = append(order, key)
		}
		byID[key] = entry{id: id, file: FileRef{Path: r.Path, Basename: r.Basename}}
	}

	// Group by parent id string; the empty key holds the roots.
	siblings := make(map[string][]identifier.ID)
	for _, key := range order {
		e := byID[key]
		parent, ok := e.id.Parent()
		if !ok {
			siblings[""] = append(siblings[""], e.id)
			continue
		}
		if _, exists := byID[parent.String()]; !exists {
			report.Orphans = append(report.Orphans, key)
			continue
		}
		siblings[parent.String()] = append(siblings[parent.String()], e.id)
	}

	var materialize func(ids []identifier.ID) []Node
	materialize = func(ids []identifier.ID) []Node {
		if len(ids) == 0 {
			return nil
		}
		SortIDs(ids)
		nodes := make([]Node, 0, len(ids))
		for _, id := range ids {
			file := byID[id.String()].file
			nodes = append(nodes, Node{
				ID:       id,
				File:     &file,
				Children: materialize(siblings[id.String()]),
			})
		}
		return nodes
	}

	sort.Strings(report.Orphans)
	return Forest{Roots: materialize(siblings[""])}, report
}

// SortIDs sorts by identifier.Compare. Identifiers that compare equal, such as
// "a01" and "a1", fall back to their canonical strings.
func SortIDs(ids []identifier.ID) {
	sort.SliceStable(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
}

// SortNodes sorts nodes in place with the same order as SortIDs.
func SortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool { return lessID(nodes[i].ID, nodes[j].ID) })
}

func lessID(a, b identifier.ID) bool {
	if c := identifier.Compare(a, b); c != 0 {
		return c < 0
	}
	return a.String() < b.String()
}
