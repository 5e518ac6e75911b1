package compaction

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConflictingTargets is returned when two paths would be renamed to the
// same target.
var ErrConflictingTargets = errors.New("conflicting rename targets")

const tempSuffix = ".zettel-tmp"

// Step is one rename to execute. Temporary steps park a file under a scratch
// name to break a cycle.
type Step struct {
	From      string
	To        string
	Temporary bool
}

// Schedule orders a set of path renames so that no step overwrites a file that
// has not been moved yet. Chains are emitted tail first; cycles go through a
// temporary name.
func Schedule(paths map[string]string) ([]Step, error) {
	pending := make(map[string]string, len(paths))
	targets := make(map[string]string, len(paths))
	for from, to := range paths {
		if from == to {
			continue
		}
		if other, exists := targets[to]; exists {
			return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrConflictingTargets, other, from, to)
		}
		targets[to] = from
		pending[from] = to
	}

	used := make(map[string]bool, 2*len(paths))
	for from, to := range paths {
		used[from] = true
		used[to] = true
	}

	var steps []Step
	counter := 0
	for len(pending) > 0 {
		progressed := false
		for _, from := range sortedKeys(pending) {
			to := pending[from]
			if _, blocked := pending[to]; blocked {
				continue
			}
			steps = append(steps, Step{From: from, To: to})
			delete(pending, from)
			progressed = true
		}
		if progressed {
			continue
		}

		// Every remaining step is part of a cycle.
		from := sortedKeys(pending)[0]
		tmp := tempName(from, used, &counter)
		steps = append(steps, Step{From: from, To: tmp, Temporary: true})
		pending[tmp] = pending[from]
		delete(pending, from)
	}
	return steps, nil
}

func tempName(from string, used map[string]bool, counter *int) string {
	for {
		*counter++
		name := fmt.Sprintf("%s%s-%d", from, tempSuffix, *counter)
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
