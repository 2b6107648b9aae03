// Package create implements the project-creation command: locate a
// template root, derive a manifest, and materialize it into a fresh
// project directory.
package create

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/protree/protree/pkg/errors"
	"github.com/protree/protree/pkg/logging"
	"github.com/protree/protree/pkg/manifest"
	"github.com/protree/protree/pkg/materialize"
	"github.com/protree/protree/pkg/templates"
)

// CreateOptions defines the options for the Create command.
type CreateOptions struct {
	// Name is the project name; it also names the project directory and
	// replaces the marker token in README.md.
	Name string

	// Dir is the parent directory for the new project. Defaults to the
	// current directory.
	Dir string

	// Variant selects metadata/metadata_<variant>.yml.
	Variant string

	// GitInit runs `git init` in the project root after scaffolding.
	GitInit bool
}

// CreateResult reports what was built.
type CreateResult struct {
	ProjectRoot    string
	TemplateRoot   string
	FilesWritten   int
	DirsCreated    int
	Warnings       []string
	GitInitialized bool
}

// Create scaffolds a new project tree.
func Create(opts CreateOptions) (*CreateResult, error) {
	log := logging.GetLogger("commands.create")
	log.Debug().Str("command", "Create").Str("project", opts.Name).Msg("Executing command")

	if opts.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "project name cannot be empty")
	}
	if strings.ContainsAny(opts.Name, "/\\:*?\"<>|") {
		return nil, errors.Newf(errors.ErrInvalidInput, "project name contains invalid characters: %s", opts.Name)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	projectRoot := filepath.Join(dir, opts.Name)

	root, err := templates.Locate(templates.ModeFull)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Build(root, opts.Name, opts.Variant)
	if err != nil {
		return nil, err
	}

	if err := materialize.Materialize(projectRoot, m); err != nil {
		return nil, err
	}

	result := &CreateResult{
		ProjectRoot:  projectRoot,
		TemplateRoot: root,
		FilesWritten: len(m.Operations),
		DirsCreated:  len(m.Dirs),
		Warnings:     m.Warnings,
	}

	if opts.GitInit {
		if err := gitInit(projectRoot); err != nil {
			// The project is fully usable without a repository
			log.Warn().Err(err).Str("root", projectRoot).Msg("git init failed")
			result.Warnings = append(result.Warnings, "git init failed: "+err.Error())
		} else {
			result.GitInitialized = true
		}
	}

	log.Info().
		Str("root", projectRoot).
		Int("files", result.FilesWritten).
		Msg("Project created")

	return result, nil
}

// gitInit runs `git init` in dir.
func gitInit(dir string) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	return cmd.Run()
}
