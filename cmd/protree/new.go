package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/protree/protree/pkg/commands/create"
	"github.com/protree/protree/pkg/config"
)

var (
	newDir     string
	newVariant string
	newGit     bool
	newNoGit   bool
)

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a new project tree",
	Long: `Create a new project directory named NAME, scaffolded from the
resolved template tree. The target directory must not already exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		variant := newVariant
		if variant == "" {
			variant = cfg.DefaultVariant
		}

		gitInit := cfg.Git.Init
		if newGit {
			gitInit = true
		}
		if newNoGit {
			gitInit = false
		}

		result, err := create.Create(create.CreateOptions{
			Name:    args[0],
			Dir:     newDir,
			Variant: variant,
			GitInit: gitInit,
		})
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			pterm.Warning.Println(w)
		}
		pterm.Success.Printfln("Created %s (%d directories, %d files, templates from %s)",
			result.ProjectRoot, result.DirsCreated, result.FilesWritten, result.TemplateRoot)
		if result.GitInitialized {
			pterm.Info.Println("Initialized empty git repository")
		}
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newDir, "dir", "d", "", "Parent directory for the new project (default: current directory)")
	newCmd.Flags().StringVarP(&newVariant, "variant", "V", "", "Metadata variant code (default from config)")
	newCmd.Flags().BoolVar(&newGit, "git", false, "Run git init in the new project")
	newCmd.Flags().BoolVar(&newNoGit, "no-git", false, "Do not run git init, overriding config")
}
