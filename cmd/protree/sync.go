package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/protree/protree/pkg/commands/synctemplates"
	"github.com/protree/protree/pkg/config"
	"github.com/protree/protree/pkg/syncer"
)

var (
	syncOverwrite    bool
	syncSkipExisting bool
)

var syncCmd = &cobra.Command{
	Use:   "sync-templates",
	Short: "Install or refresh the user template directory",
	Long: `Copy the canonical template tree into the per-user override directory.
Files that already exist there are resolved interactively: yes/no for
the current file, or all/none to apply one answer to every remaining
conflict.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		mode := syncer.AskEachTime
		switch {
		case syncOverwrite:
			mode = syncer.OverwriteAll
		case syncSkipExisting:
			mode = syncer.SkipAll
		case cfg.Prompt.Assume == "overwrite":
			mode = syncer.OverwriteAll
		case cfg.Prompt.Assume == "skip":
			mode = syncer.SkipAll
		}

		var decisions syncer.DecisionSource
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			decisions = syncer.NewConsoleSource(os.Stdin, os.Stderr)
		} else {
			// No terminal to ask on: conflicts resolve as skip
			decisions = &syncer.StaticSource{Answer: syncer.DecisionExhausted}
		}

		result, err := synctemplates.SyncTemplates(synctemplates.SyncOptions{
			Mode:      mode,
			Decisions: decisions,
		})
		if err != nil {
			return err
		}

		r := result.Report
		if r.Failed > 0 {
			pterm.Warning.Printfln("%d files failed to copy, see the log for details", r.Failed)
		}
		pterm.Success.Printfln("Synced %s -> %s: %d copied, %d overwritten, %d skipped",
			result.Source, result.Target, r.Copied, r.Overwritten, r.Skipped)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncOverwrite, "overwrite", false, "Overwrite all existing files without prompting")
	syncCmd.Flags().BoolVar(&syncSkipExisting, "skip-existing", false, "Keep all existing files without prompting")
	syncCmd.MarkFlagsMutuallyExclusive("overwrite", "skip-existing")
}
