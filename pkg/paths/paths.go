// Package paths provides centralized path handling for protree.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvTemplatesDir is the explicit template-root override. It has the
	// highest priority in the locator chain.
	EnvTemplatesDir = "PROTREE_TEMPLATES"

	// EnvConfigDir overrides the XDG config directory for protree
	EnvConfigDir = "PROTREE_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define protree's on-disk layout and are NOT
// user-configurable. They must remain consistent across installations so
// that template sync and lookup agree on locations.
const (
	// AppDirName is the directory name for protree-specific files
	AppDirName = "protree"

	// TemplatesDirName is the subdirectory holding template trees
	TemplatesDirName = "templates"

	// MetadataDirName is the subdirectory a valid template root must contain
	MetadataDirName = "metadata"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "protree.log"
)

// UserTemplatesDir returns the per-user template override directory,
// <XDG data home>/protree/templates. The sync engine writes here; the
// locator reads it in Full mode only.
func UserTemplatesDir() string {
	return filepath.Join(xdg.DataHome, AppDirName, TemplatesDirName)
}

// ConfigDir returns the XDG config directory for protree,
// respecting the PROTREE_CONFIG_DIR override.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the path to the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// SystemTemplateDirs returns template directories derived from the XDG
// system data dirs (e.g. /usr/local/share, /usr/share).
func SystemTemplateDirs() []string {
	dirs := make([]string, 0, len(xdg.DataDirs))
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, AppDirName, TemplatesDirName))
	}
	return dirs
}

// WellKnownTemplateDirs returns the fixed fallback locations checked after
// the XDG system data dirs.
func WellKnownTemplateDirs() []string {
	return []string{
		filepath.Join("/usr/local/share", AppDirName, TemplatesDirName),
		filepath.Join("/usr/share", AppDirName, TemplatesDirName),
		filepath.Join("/opt", AppDirName, TemplatesDirName),
	}
}

// LogFilePath returns the path to the protree log file.
// Respects XDG_STATE_HOME if set.
func LogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return LogFileName
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, AppDirName, LogFileName)
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", err
	}
	return homeDir, nil
}
