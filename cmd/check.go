package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/identifier"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("check failed")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [id...]",
	Short: "Validate identifiers or report problems in the notes folder",
	Long: `With arguments, 'check' validates each argument as an identifier.
Without arguments it scans the notes folder and lists files whose name is not
an identifier, identifiers used by more than one file, and notes whose parent
note is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return handleCheckIDs(args)
		}
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleCheckCommand(cmd.Context(), rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func handleCheckIDs(args []string) error {
	failed := 0
	for _, arg := range args {
		id, err := identifier.Parse(arg)
		if err != nil {
			failed++
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ %v", err)))
			continue
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s", id)) + lipgloss.Gray.Render(fmt.Sprintf("  depth %d", id.Depth())))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d identifier(s) invalid", errCheckFailed, failed, len(args))
	}
	return nil
}

func handleCheckCommand(ctx context.Context, rootDependencies *RootDependencies) error {
	_, f, report, err := loadForest(ctx, rootDependencies)
	if err != nil {
		return err
	}

	for _, r := range report.Rejected {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ %s: %v", r.Record.Path, r.Err)))
	}
	for _, id := range report.Duplicates {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("! %s is used by more than one file, only the last one found is kept", id)))
	}
	for _, id := range report.Orphans {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("! %s has no parent note, it and its children are left out", id)))
	}

	problems := len(report.Rejected) + len(report.Duplicates) + len(report.Orphans)
	if problems == 0 {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %d note(s), no problems found", f.Len())))
		return nil
	}
	return fmt.Errorf("%w: %d problem(s) in %s", errCheckFailed, problems, rootDependencies.Config.NotesDir)
}
