package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/zettel/compaction"
	"github.com/pterm/pterm"
)

var (
	ErrStaleSnapshot = errors.New("notes changed since the snapshot was taken")
	ErrMissingSource = errors.New("rename source not in snapshot")
	ErrTargetExists  = errors.New("rename target already exists")
	ErrOutsideRoot   = errors.New("path escapes the notes root")
)

// Summary describes what an Apply call did.
type Summary struct {
	Renamed    []string
	Failed     []string
	RolledBack []string
	Steps      int
	DryRun     bool
}

// Applier executes a path rename map against the folder a snapshot was
// taken from.
type Applier struct {
	Scanner *Scanner
	Mover   Mover
	DryRun  bool
	Logger  *pterm.Logger
}

// NewApplier creates an applier that moves files with os.Rename.
func NewApplier(scanner *Scanner) *Applier {
	return &Applier{Scanner: scanner, Mover: OSMover{}}
}

// Apply rescans the folder and refuses to run when it no longer matches
// snapshot. Renames are executed in a collision-free order. On the first
// failure the steps already executed are reverted and the error is returned.
func (a *Applier) Apply(ctx context.Context, snapshot *Snapshot, paths map[string]string) (Summary, error) {
	summary := Summary{DryRun: a.DryRun}

	fresh, err := a.Scanner.Scan(ctx)
	if err != nil {
		return summary, err
	}
	if fresh.Fingerprint() != snapshot.Fingerprint() {
		return summary, fmt.Errorf("%w: %s", ErrStaleSnapshot, describeDiff(snapshot.Diff(fresh)))
	}

	if err := a.check(snapshot, paths); err != nil {
		return summary, err
	}

	steps, err := compaction.Schedule(paths)
	if err != nil {
		return summary, err
	}
	summary.Steps = len(steps)

	var done []compaction.Step
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			summary.RolledBack = a.rollback(done)
			return summary, err
		}
		if err := a.execute(ctx, step); err != nil {
			summary.Failed = append(summary.Failed, step.From)
			summary.RolledBack = a.rollback(done)
			return summary, fmt.Errorf("apply renames: %w", err)
		}
		if !a.DryRun {
			done = append(done, step)
		}
		if !step.Temporary {
			summary.Renamed = append(summary.Renamed, fmt.Sprintf("%s -> %s", step.From, step.To))
		}
	}

	return summary, nil
}

func (a *Applier) execute(ctx context.Context, step compaction.Step) error {
	from, err := a.resolve(step.From)
	if err != nil {
		return err
	}
	to, err := a.resolve(step.To)
	if err != nil {
		return err
	}
	if a.DryRun {
		a.log("would rename", step)
		return nil
	}
	if err := a.Mover.Move(ctx, from, to); err != nil {
		return err
	}
	a.log("renamed", step)
	return nil
}

// check verifies every source is in the snapshot and no target would
// overwrite a file that is not itself being moved away.
func (a *Applier) check(snapshot *Snapshot, paths map[string]string) error {
	for from, to := range paths {
		if _, ok := snapshot.Files[from]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSource, from)
		}
		if _, moving := paths[to]; moving {
			continue
		}
		abs, err := a.resolve(to)
		if err != nil {
			return err
		}
		if _, err := os.Lstat(abs); err == nil {
			return fmt.Errorf("%w: %s", ErrTargetExists, to)
		}
	}
	return nil
}

// rollback reverts executed steps newest first and returns the ones it
// managed to revert.
func (a *Applier) rollback(done []compaction.Step) []string {
	var reverted []string
	ctx := context.Background()
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		from, _ := a.resolve(step.To)
		to, _ := a.resolve(step.From)
		if err := a.Mover.Move(ctx, from, to); err != nil {
			if a.Logger != nil {
				a.Logger.Error("rollback failed", a.Logger.Args("from", step.To, "to", step.From, "error", err))
			}
			continue
		}
		reverted = append(reverted, step.From)
	}
	return reverted
}

// resolve joins a slash separated relative path onto the root and makes sure
// the result stays inside it.
func (a *Applier) resolve(rel string) (string, error) {
	root := filepath.Clean(a.Scanner.Root)
	p := filepath.Join(root, filepath.FromSlash(rel))
	r, err := filepath.Rel(root, p)
	if err != nil {
		return "", err
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return p, nil
}

func (a *Applier) log(msg string, step compaction.Step) {
	if a.Logger == nil {
		return
	}
	a.Logger.Info(msg, a.Logger.Args("from", step.From, "to", step.To, "temporary", step.Temporary))
}

func describeDiff(changed []string) string {
	const limit = 5
	if len(changed) == 0 {
		return "files changed"
	}
	if len(changed) > limit {
		return fmt.Sprintf("%s and %d more", strings.Join(changed[:limit], ", "), len(changed)-limit)
	}
	return strings.Join(changed, ", ")
}
