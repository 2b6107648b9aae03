// Package templates locates and inspects protree template trees.
//
// A template root is a directory holding copyable template files plus a
// metadata subdirectory. Several locations may carry one; the locator
// tries them in a fixed priority order and returns the first that
// validates.
package templates

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/protree/protree/pkg/errors"
	"github.com/protree/protree/pkg/logging"
	"github.com/protree/protree/pkg/paths"
)

// Mode controls which locations the locator considers.
type Mode int

const (
	// ModeFull tries every location, including the per-user override
	// directory.
	ModeFull Mode = iota

	// ModeDistOnly excludes the per-user override directory. The sync
	// engine uses this: it writes into the user directory and must not
	// resolve its source from its own half-populated target.
	ModeDistOnly
)

// strategy is one candidate location source in the fallback chain.
// Adding or removing a search location is a one-line change to the
// chain in Locate.
type strategy struct {
	name       string
	candidates func() []string
}

// IsTemplateRoot reports whether dir exists and contains a metadata
// subdirectory. Every location must pass this before it is used.
func IsTemplateRoot(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	meta, err := os.Stat(filepath.Join(dir, paths.MetadataDirName))
	return err == nil && meta.IsDir()
}

// Locate resolves the template root for the given mode. It returns the
// first candidate that validates, or a TEMPLATES_NOT_FOUND error listing
// every path that was checked.
func Locate(mode Mode) (string, error) {
	logger := logging.GetLogger("templates.locator")

	chain := []strategy{
		{name: "environment", candidates: envCandidates},
		{name: "user", candidates: userCandidates},
		{name: "devtree", candidates: devTreeStrategyCandidates},
		{name: "system-data", candidates: paths.SystemTemplateDirs},
		{name: "well-known", candidates: paths.WellKnownTemplateDirs},
		{name: "executable", candidates: executableStrategyCandidates},
	}

	var checked []string
	for _, s := range chain {
		if mode == ModeDistOnly && s.name == "user" {
			logger.Debug().Str("strategy", s.name).Msg("Skipped in dist-only mode")
			continue
		}
		for _, dir := range s.candidates() {
			if dir == "" {
				continue
			}
			checked = append(checked, dir)
			if IsTemplateRoot(dir) {
				logger.Debug().
					Str("strategy", s.name).
					Str("root", dir).
					Msg("Template root resolved")
				return dir, nil
			}
		}
	}

	logger.Warn().Strs("checked", checked).Msg("No template root found")
	return "", errors.New(errors.ErrTemplatesNotFound,
		"no valid template directory found (checked: "+strings.Join(checked, ", ")+")").
		WithDetail("checked", checked)
}

// envCandidates returns the explicit override from PROTREE_TEMPLATES.
func envCandidates() []string {
	if dir := os.Getenv(paths.EnvTemplatesDir); dir != "" {
		return []string{paths.ExpandHome(dir)}
	}
	return nil
}

// userCandidates returns the per-user override directory.
func userCandidates() []string {
	return []string{paths.UserTemplatesDir()}
}

func devTreeStrategyCandidates() []string {
	execDir, err := executableDir()
	if err != nil {
		return nil
	}
	return devTreeCandidates(execDir)
}

// devTreeCandidates walks upward from startDir looking for a go.mod with
// a sibling templates directory. This makes a source checkout usable
// without installing anything.
func devTreeCandidates(startDir string) []string {
	var found []string
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			candidate := filepath.Join(dir, paths.TemplatesDirName)
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				found = append(found, candidate)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return found
		}
		dir = parent
	}
}

func executableStrategyCandidates() []string {
	execDir, err := executableDir()
	if err != nil {
		return nil
	}
	return executableCandidates(execDir)
}

// executableCandidates returns locations relative to the running binary,
// covering tarball-style installs (bin/ next to share/).
func executableCandidates(execDir string) []string {
	return []string{
		filepath.Join(execDir, paths.TemplatesDirName),
		filepath.Join(execDir, "..", "share", paths.AppDirName, paths.TemplatesDirName),
	}
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		resolved = exe
	}
	return filepath.Dir(resolved), nil
}
