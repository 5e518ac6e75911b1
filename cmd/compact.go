package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/meysamhadeli/zettel/compaction"
	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/plancache"
	"github.com/meysamhadeli/zettel/utils"
	"github.com/spf13/cobra"
)

// compactCmd represents the compact command
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Close the gaps between sibling identifiers",
	Long: `The 'compact' command relabels every run of sibling letters to a, b, c, ...
in order, carries the change down to every descendant and lists the file
renames this needs. The plan is saved so 'zettel apply' can run it later;
pass --apply to run it right away.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		var options compactOptions
		options.apply, _ = cmd.Flags().GetBool("apply")
		options.yes, _ = cmd.Flags().GetBool("yes")
		options.adopt, _ = cmd.Flags().GetBool("adopt")
		return handleCompactCommand(cmd.Context(), rootDependencies, options)
	},
}

func init() {
	compactCmd.Flags().BoolP("apply", "a", false, "Apply the renames after showing them")
	compactCmd.Flags().BoolP("yes", "y", false, "Apply without asking for confirmation")
	compactCmd.Flags().Bool("adopt", false, "Save the plan even if it attaches orphaned notes to renamed ones")

	rootCmd.AddCommand(compactCmd)
}

var errAdoptsOrphans = errors.New("plan would attach orphaned notes to renamed ones")

type compactOptions struct {
	apply bool
	yes   bool
	adopt bool
}

func handleCompactCommand(ctx context.Context, rootDependencies *RootDependencies, options compactOptions) error {
	snapshot, f, report, err := loadForest(ctx, rootDependencies)
	if err != nil {
		return err
	}

	if len(report.Duplicates) > 0 || len(report.Orphans) > 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: %d duplicate and %d orphaned identifier(s) are not compacted, see 'zettel check'.",
			len(report.Duplicates), len(report.Orphans))))
	}

	result := compaction.Compact(f)
	key := rootDependencies.Config.NotesDir

	if result.Renames.Empty() {
		if err := rootDependencies.Store.Delete(key); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not remove the previous plan: %v", err)))
		}
		fmt.Println(lipgloss.Green.Render("✓ Nothing to compact."))
		return nil
	}

	if err := utils.RenderRenames(os.Stdout, result.Renames.SortedPaths(), rootDependencies.Config.Theme); err != nil {
		return err
	}

	if adopted := compaction.Adopted(snapshot.Records(), result); len(adopted) > 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: after renaming, %s would become child note(s) of renamed notes.",
			strings.Join(adopted, ", "))))
		if !options.adopt {
			return fmt.Errorf("%w: %s; fix them or pass --adopt", errAdoptsOrphans, strings.Join(adopted, ", "))
		}
	}

	plan := plancache.NewPlan(snapshot, result.Renames)
	if err := rootDependencies.Store.Save(key, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	if !options.apply {
		fmt.Println(lipgloss.BoxStyle.Render(fmt.Sprintf("%d identifier(s), %d file(s) to rename. Run 'zettel apply' to rename them.",
			len(result.Renames.IDs), len(result.Renames.Paths))))
		return nil
	}

	if !options.yes {
		ok, err := utils.ConfirmPrompt(ctx, fmt.Sprintf("Rename %d file(s)?", len(plan.Paths)), bufio.NewReader(os.Stdin))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(lipgloss.Yellow.Render("Compaction cancelled. The plan is kept for 'zettel apply'."))
			return nil
		}
	}

	return applyPlan(ctx, rootDependencies, key, plan)
}
