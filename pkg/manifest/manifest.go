// Package manifest derives the build plan for one project-creation run:
// the fixed directory scaffold plus one file operation per template file.
package manifest

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/protree/protree/pkg/errors"
	"github.com/protree/protree/pkg/logging"
	"github.com/protree/protree/pkg/paths"
	"github.com/protree/protree/pkg/templates"
)

// Well-known file names in template trees and generated projects.
const (
	// ReadmeName is the only file the name transform is bound to
	ReadmeName = "README.md"

	// GitignoreSource is the undotted name templates ship; a literal
	// .gitignore cannot be distributed reliably, so it is renamed at
	// build time
	GitignoreSource = "gitignore"

	// GitignoreTarget is the dotted name written into projects
	GitignoreTarget = ".gitignore"

	// MetadataTarget is the per-project copy of the variant metadata
	MetadataTarget = "_metadata.yml"
)

// ProjectDirs is the fixed directory catalog created for every project,
// independent of template content.
var ProjectDirs = []string{
	"raw",
	"R/import",
	"R/build",
	"R/analysis",
	"R/check",
	"R/utils",
	"R/lib",
	"doc",
	"out/data",
	"out/tables",
	"out/figures",
	"out/manuscript",
	"log",
	"cache",
	".pandoc",
}

// FileOperation describes one file to produce in the project tree.
// When Transform is nil the source is copied byte-for-byte; otherwise the
// source content is passed through Transform and the result written as
// text. An operation never carries both a literal copy and inline
// content.
type FileOperation struct {
	// Target is the path relative to the project root
	Target string

	// Source is the absolute path of the template file
	Source string

	// Transform, if set, rewrites the source content before writing
	Transform Transform
}

// Manifest is the read-only build plan for one project.
type Manifest struct {
	// Root is the template root the plan was derived from
	Root string

	// Variant is the metadata variant code the plan was built for
	Variant string

	// Dirs is always the fixed ProjectDirs catalog
	Dirs []string

	// Operations are executed in order by the materializer
	Operations []FileOperation

	// Warnings records non-fatal degradations, such as a missing
	// variant metadata file
	Warnings []string
}

// Build walks the template root and assembles the manifest for the given
// project name and variant. A missing metadata_<variant>.yml degrades to
// a warning; it never aborts the build.
func Build(root, projectName, variant string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("root", root).
		Str("project", projectName).
		Str("variant", variant).
		Msg("Building manifest")

	m := &Manifest{
		Root:    root,
		Variant: variant,
		Dirs:    ProjectDirs,
	}

	seen := make(map[string]bool)
	metadataDir := filepath.Join(root, paths.MetadataDirName)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == metadataDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		op := FileOperation{Target: rel, Source: path}
		switch rel {
		case GitignoreSource:
			op.Target = GitignoreTarget
		case ReadmeName:
			op.Transform = NameTransform(projectName)
		}

		if seen[op.Target] {
			return errors.Newf(errors.ErrDuplicateTarget, "duplicate manifest target %q", op.Target)
		}
		seen[op.Target] = true

		m.Operations = append(m.Operations, op)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to walk template root %s", root)
	}

	metadataFile := templates.MetadataPath(root, variant)
	if info, err := os.Stat(metadataFile); err == nil && info.Mode().IsRegular() {
		m.Operations = append(m.Operations, FileOperation{
			Target: MetadataTarget,
			Source: metadataFile,
		})
	} else {
		warning := "no metadata file for variant " + variant + " (" + metadataFile + "), project will lack " + MetadataTarget
		m.Warnings = append(m.Warnings, warning)
		logger.Warn().
			Str("variant", variant).
			Str("file", metadataFile).
			Msg("Variant metadata missing, continuing without it")
	}

	logger.Info().
		Int("operations", len(m.Operations)).
		Int("warnings", len(m.Warnings)).
		Msg("Manifest built")

	return m, nil
}
