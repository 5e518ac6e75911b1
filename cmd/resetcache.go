package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/utils"
	"github.com/spf13/cobra"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Remove saved compaction plans",
	Long: `The 'reset-cache' command removes every plan saved by 'zettel compact' from the
plan directory ('.zettel/cache' in the notes folder unless configured). Use
--older-than to only drop plans past a given age.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")
		olderThan, _ := cmd.Flags().GetDuration("older-than")

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleResetCacheCommand(cmd.Context(), rootDependencies, force, stats, olderThan)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show plan store statistics instead of resetting")
	resetCacheCmd.Flags().Duration("older-than", 0, "Only remove plans older than this (e.g. 24h)")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(ctx context.Context, rootDependencies *RootDependencies, force bool, showStats bool, olderThan time.Duration) error {
	store := rootDependencies.Store

	if showStats {
		cacheStats, err := store.GetCacheStats()
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: Could not show statistics: %v", err)))
			return nil
		}
		fmt.Println(lipgloss.Info.Render("Plan Store Statistics:"))
		if dir, ok := cacheStats["cache_dir"].(string); ok {
			fmt.Printf("  Directory: %s\n", dir)
		}
		if files, ok := cacheStats["cache_files"].(int); ok {
			fmt.Printf("  Saved Plans: %d\n", files)
		}
		if size, ok := cacheStats["total_size"].(int64); ok {
			fmt.Printf("  Total Size: %.2f KB\n", float64(size)/1024)
		}
		return nil
	}

	if olderThan > 0 {
		removed, err := store.CleanExpired(olderThan)
		if err != nil {
			return fmt.Errorf("error cleaning plans: %w", err)
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Removed %d plan(s) older than %s.", removed, olderThan)))
		return nil
	}

	if !force {
		ok, err := utils.ConfirmPrompt(ctx, "Are you sure you want to remove every saved plan?", bufio.NewReader(os.Stdin))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinner, _ := newSpinner().Start("Removing saved plans...")
	err := store.Clear()
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Saved plans in %s have been removed!", store.Dir())))
	return nil
}
