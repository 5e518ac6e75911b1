package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/meysamhadeli/zettel/config"
	"github.com/meysamhadeli/zettel/constants/lipgloss"
	"github.com/meysamhadeli/zettel/plancache"
	"github.com/meysamhadeli/zettel/vault"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// RootDependencies holds what every subcommand needs once the configuration
// is loaded.
type RootDependencies struct {
	Config  *config.Config
	Cwd     string
	Scanner *vault.Scanner
	Store   *plancache.Store
	Logger  *pterm.Logger
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zettel",
	Short: "Inspect and compact Zettelkasten note identifiers.",
	Long: `zettel reads a folder of notes whose file names are Zettelkasten identifiers
such as 'a', 'a1', 'a1b' or 'b12c3', rebuilds the tree they describe and can
compact it by closing gaps between sibling letters, renaming files to match.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("version: %s", config.DefaultConfig.Version)))
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command. Subcommands stop between files and renames
// once ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	store, err := plancache.NewStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Config:  cfg,
		Cwd:     cwd,
		Scanner: vault.NewScanner(cfg.NotesDir, cfg.Extensions, cfg.IgnoreFile),
		Store:   store,
		Logger:  newLogger(cfg.LogLevel),
	}, nil
}

func newLogger(level string) *pterm.Logger {
	logger := pterm.DefaultLogger.WithWriter(os.Stderr)
	switch level {
	case "debug":
		return logger.WithLevel(pterm.LogLevelDebug)
	case "warn":
		return logger.WithLevel(pterm.LogLevelWarn)
	case "error":
		return logger.WithLevel(pterm.LogLevelError)
	default:
		return logger.WithLevel(pterm.LogLevelInfo)
	}
}

// newApplier picks git mv when configured and the notes live in a repository.
func (d *RootDependencies) newApplier(ctx context.Context) *vault.Applier {
	applier := vault.NewApplier(d.Scanner)
	applier.DryRun = d.Config.DryRun
	applier.Logger = d.Logger

	if d.Config.UseGit {
		mover, err := vault.NewGitMover(ctx, d.Config.NotesDir)
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Git is not available, renaming without it: %v", err)))
			return applier
		}
		if dirty, err := mover.Git.HasUncommittedChanges(ctx); err == nil && dirty {
			fmt.Println(lipgloss.Yellow.Render("Warning: the repository has uncommitted changes."))
		}
		applier.Mover = mover
	}
	return applier
}

func newSpinner() *pterm.SpinnerPrinter {
	return pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).WithRemoveWhenDone(true)
}
