// Package commands implements the budgetcsv CLI.
package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budgetcsv/internal/buildinfo"
	"github.com/cleared-dev/budgetcsv/internal/config"
	"github.com/cleared-dev/budgetcsv/internal/logger"
)

type rootOptions struct {
	repo     string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "budgetcsv",
		Short:   "Import bank CSV exports into a local transaction ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "workspace directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(opts),
		newPreviewCommand(opts),
		newScanCommand(opts),
		newUndoCommand(opts),
		newBatchesCommand(opts),
		newAccountsCommand(opts),
	)

	return rootCmd
}

// setupLogger builds the logger from the workspace config and stores it in the command context.
func setupLogger(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Resolve(filepath.Join(opts.repo, config.FileName))
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log, err := logger.New(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}
