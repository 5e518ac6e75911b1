package cmd

import (
	"context"
	"fmt"

	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/identifier"
	"github.com/spf13/cobra"
)

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next <id>",
	Short: "Suggest free identifiers for a new child or sibling of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identifier.Parse(args[0])
		if err != nil {
			return err
		}
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleNextCommand(cmd.Context(), rootDependencies, id)
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func handleNextCommand(ctx context.Context, rootDependencies *RootDependencies, id identifier.ID) error {
	snapshot, f, _, err := loadForest(ctx, rootDependencies)
	if err != nil {
		return err
	}
	if _, ok := f.Find(id.String()); !ok {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: %s is not a note in the tree.", id)))
	}

	taken := make(map[string]bool, len(snapshot.Files))
	for _, r := range snapshot.Records() {
		taken[r.ID] = true
	}

	child, err := freeFrom(id.NextChild(), taken)
	if err != nil {
		return err
	}
	fmt.Println(lipgloss.Green.Render("child:   ") + child.String())

	if sibling, err := id.NextSibling(); err == nil {
		sibling, err = freeFrom(sibling, taken)
		if err != nil {
			return err
		}
		fmt.Println(lipgloss.Green.Render("sibling: ") + sibling.String())
	}
	return nil
}

// freeFrom steps through siblings starting at id until one is not taken.
func freeFrom(id identifier.ID, taken map[string]bool) (identifier.ID, error) {
	for taken[id.String()] {
		next, err := id.NextSibling()
		if err != nil {
			return identifier.ID{}, err
		}
		id = next
	}
	return id, nil
}

