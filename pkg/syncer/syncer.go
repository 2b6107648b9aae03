// Package syncer replicates a template tree into the per-user override
// directory, resolving per-file conflicts through a DecisionSource.
//
// The sticky conflict mode is threaded explicitly through the walk
// rather than held in a hidden global, so the merge step stays pure and
// testable. A partially synced target is a valid end state: unconflicted
// files are idempotent to re-copy and conflicted files simply re-prompt
// on the next run.
package syncer

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/protree/protree/pkg/logging"
)

// ConflictMode is the run-scoped sticky answer for conflicting files.
type ConflictMode int

const (
	// AskEachTime consults the DecisionSource for every conflict
	AskEachTime ConflictMode = iota

	// OverwriteAll overwrites every conflicting file without prompting
	OverwriteAll

	// SkipAll leaves every conflicting file untouched without prompting
	SkipAll
)

// Decision is one answer from a DecisionSource.
type Decision int

const (
	// DecisionNo skips the current file only
	DecisionNo Decision = iota

	// DecisionYes overwrites the current file only
	DecisionYes

	// DecisionAll overwrites the current file and switches to OverwriteAll
	DecisionAll

	// DecisionNone skips the current file and switches to SkipAll
	DecisionNone

	// DecisionExhausted signals the source has no more answers; the walk
	// silently switches to SkipAll
	DecisionExhausted
)

// DecisionSource supplies conflict answers. Implementations prompt a
// terminal or replay scripted answers in tests.
type DecisionSource interface {
	// Decide is called once per conflicting file with its path relative
	// to the source root.
	Decide(relPath string) Decision
}

// Report summarizes one sync run.
type Report struct {
	Copied      int
	Overwritten int
	Skipped     int
	Failed      int
}

// Total returns the number of files visited.
func (r *Report) Total() int {
	return r.Copied + r.Overwritten + r.Skipped + r.Failed
}

// action is the resolved handling for one conflicting file.
type action int

const (
	actionOverwrite action = iota
	actionSkip
)

// resolveConflict decides what to do with one conflicting file and
// returns the possibly-updated sticky mode. Pure: no filesystem access.
func resolveConflict(mode ConflictMode, relPath string, src DecisionSource) (action, ConflictMode) {
	switch mode {
	case OverwriteAll:
		return actionOverwrite, mode
	case SkipAll:
		return actionSkip, mode
	}

	switch src.Decide(relPath) {
	case DecisionYes:
		return actionOverwrite, AskEachTime
	case DecisionAll:
		return actionOverwrite, OverwriteAll
	case DecisionNone:
		return actionSkip, SkipAll
	case DecisionExhausted:
		return actionSkip, SkipAll
	default: // DecisionNo
		return actionSkip, AskEachTime
	}
}

// Sync walks every regular file under sourceRoot and mirrors it below
// targetRoot, starting in mode. Per-file copy failures are counted and
// the walk continues.
func Sync(sourceRoot, targetRoot string, mode ConflictMode, src DecisionSource) (*Report, error) {
	logger := logging.GetLogger("syncer")
	logger.Info().
		Str("source", sourceRoot).
		Str("target", targetRoot).
		Msg("Syncing templates")

	report := &Report{}

	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return err
		}
		target := filepath.Join(targetRoot, rel)

		if _, statErr := os.Lstat(target); statErr != nil {
			if !os.IsNotExist(statErr) {
				logger.Error().Str("file", rel).Err(statErr).Msg("Failed to check target, skipping")
				report.Failed++
				return nil
			}
			// New file: copy unconditionally, no prompt
			if copyErr := copyFile(path, target); copyErr != nil {
				logger.Error().Str("file", rel).Err(copyErr).Msg("Failed to copy, continuing")
				report.Failed++
				return nil
			}
			logger.Debug().Str("file", rel).Msg("Copied")
			report.Copied++
			return nil
		}

		var act action
		act, mode = resolveConflict(mode, rel, src)
		if act == actionSkip {
			logger.Debug().Str("file", rel).Msg("Skipped")
			report.Skipped++
			return nil
		}

		if copyErr := copyFile(path, target); copyErr != nil {
			logger.Error().Str("file", rel).Err(copyErr).Msg("Failed to overwrite, continuing")
			report.Failed++
			return nil
		}
		logger.Debug().Str("file", rel).Msg("Overwritten")
		report.Overwritten++
		return nil
	})
	if err != nil {
		return report, err
	}

	logger.Info().
		Int("copied", report.Copied).
		Int("overwritten", report.Overwritten).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Sync finished")

	return report, nil
}

// copyFile copies src to dst, creating parent directories as needed.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
