// Package synctemplates implements the template-sync command: install or
// refresh the per-user template override tree from the canonical
// distribution tree.
package synctemplates

import (
	"github.com/protree/protree/pkg/logging"
	"github.com/protree/protree/pkg/paths"
	"github.com/protree/protree/pkg/syncer"
	"github.com/protree/protree/pkg/templates"
)

// SyncOptions defines the options for the SyncTemplates command.
type SyncOptions struct {
	// TargetDir overrides the user template directory. Defaults to
	// <XDG data home>/protree/templates.
	TargetDir string

	// Mode is the sticky conflict mode the walk starts in.
	Mode syncer.ConflictMode

	// Decisions answers per-file conflict prompts when Mode is
	// AskEachTime.
	Decisions syncer.DecisionSource
}

// SyncResult reports the outcome of one sync run.
type SyncResult struct {
	Source string
	Target string
	Report *syncer.Report
}

// SyncTemplates resolves the canonical template root (never the user
// override directory, which is this command's own target) and merges it
// into the user template directory.
func SyncTemplates(opts SyncOptions) (*SyncResult, error) {
	log := logging.GetLogger("commands.sync")
	log.Debug().Str("command", "SyncTemplates").Msg("Executing command")

	target := opts.TargetDir
	if target == "" {
		target = paths.UserTemplatesDir()
	}

	source, err := templates.Locate(templates.ModeDistOnly)
	if err != nil {
		return nil, err
	}

	decisions := opts.Decisions
	if decisions == nil {
		decisions = &syncer.StaticSource{Answer: syncer.DecisionExhausted}
	}

	report, err := syncer.Sync(source, target, opts.Mode, decisions)
	if err != nil {
		return nil, err
	}

	return &SyncResult{Source: source, Target: target, Report: report}, nil
}
