package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/plancache"
	"github.com/meysamhadeli/zettel/utils"
	"github.com/meysamhadeli/zettel/vault"
	"github.com/spf13/cobra"
)

var errNoPlan = errors.New("no saved plan, run 'zettel compact' first")

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the plan saved by 'zettel compact'",
	Long: `The 'apply' command renames the files listed by the last 'zettel compact'.
It refuses to run when notes were added, removed or changed since the plan
was made, and reverts the renames already done when one of them fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleApplyCommand(cmd.Context(), rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func handleApplyCommand(ctx context.Context, rootDependencies *RootDependencies) error {
	key := rootDependencies.Config.NotesDir
	plan, ok := rootDependencies.Store.Load(key)
	if !ok {
		return errNoPlan
	}

	fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("Plan from %s:", plan.CreatedAt.Format("2006-01-02 15:04:05"))))
	if err := utils.RenderRenames(os.Stdout, plan.Renames().SortedPaths(), rootDependencies.Config.Theme); err != nil {
		return err
	}
	return applyPlan(ctx, rootDependencies, key, plan)
}

func applyPlan(ctx context.Context, rootDependencies *RootDependencies, key string, plan *plancache.Plan) error {
	applier := rootDependencies.newApplier(ctx)

	spinner, _ := newSpinner().Start("Renaming notes...")
	summary, err := applier.Apply(ctx, plan.Snapshot, plan.Renames().Paths)
	if spinner != nil {
		_ = spinner.Stop()
	}

	if err != nil {
		if errors.Is(err, vault.ErrStaleSnapshot) {
			_ = rootDependencies.Store.Delete(key)
			return fmt.Errorf("%w; run 'zettel compact' again", err)
		}
		if len(summary.RolledBack) > 0 {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Reverted %d rename(s).", len(summary.RolledBack))))
		}
		return err
	}

	if summary.DryRun {
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Dry run: %d file(s) would be renamed in %d step(s).", len(summary.Renamed), summary.Steps)))
		return nil
	}

	if err := rootDependencies.Store.Delete(key); err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not remove the applied plan: %v", err)))
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Renamed %d file(s).", len(summary.Renamed))))
	return nil
}
