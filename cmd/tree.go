package cmd

import (
	"context"
	"fmt"

	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/forest"
	"github.com/meysamhadeli/zettel/vault"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the identifier tree of the notes folder",
	Long: `The 'tree' command scans the notes folder, rebuilds the tree implied by the
file names and prints it. Files whose name is not an identifier, and notes
whose parent is missing, are left out; run 'zettel check' to list them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		files, _ := cmd.Flags().GetBool("files")
		return handleTreeCommand(cmd.Context(), rootDependencies, files)
	},
}

func init() {
	treeCmd.Flags().BoolP("files", "f", false, "Show the file name next to each identifier")

	rootCmd.AddCommand(treeCmd)
}

func handleTreeCommand(ctx context.Context, rootDependencies *RootDependencies, showFiles bool) error {
	_, f, report, err := loadForest(ctx, rootDependencies)
	if err != nil {
		return err
	}

	if len(f.Roots) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No identifier notes found in " + rootDependencies.Config.NotesDir))
		return nil
	}

	root := putils.TreeFromLeveledList(leveledList(f, showFiles))
	root.Text = rootDependencies.Config.NotesDir
	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		return err
	}

	if skipped := len(report.Rejected) + len(report.Orphans); skipped > 0 {
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("%d file(s) left out, see 'zettel check'", skipped)))
	}
	return nil
}

func leveledList(f forest.Forest, showFiles bool) pterm.LeveledList {
	var list pterm.LeveledList
	_ = f.Walk(func(n forest.Node, depth int) error {
		text := n.ID.String()
		if showFiles && n.File != nil {
			text = fmt.Sprintf("%s %s", text, lipgloss.Gray.Render(n.File.Path))
		}
		list = append(list, pterm.LeveledListItem{Level: depth, Text: text})
		return nil
	})
	return list
}

// loadForest scans the notes folder behind a spinner and builds its forest.
func loadForest(ctx context.Context, rootDependencies *RootDependencies) (*vault.Snapshot, forest.Forest, forest.Report, error) {
	spinner, _ := newSpinner().Start("Scanning notes...")

	snapshot, err := rootDependencies.Scanner.Scan(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return nil, forest.Forest{}, forest.Report{}, fmt.Errorf("scan %s: %w", rootDependencies.Config.NotesDir, err)
	}

	f, report := forest.BuildWithReport(snapshot.Records())
	rootDependencies.Logger.Debug("scanned notes", rootDependencies.Logger.Args("files", len(snapshot.Files), "nodes", f.Len()))
	return snapshot, f, report, nil
}
