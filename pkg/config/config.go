// Package config loads protree configuration: embedded defaults overlaid
// with the user's config.toml from the XDG config directory.
package config

import (
	_ "embed"
	"errors"
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	protreeerrors "github.com/protree/protree/pkg/errors"
	"github.com/protree/protree/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config holds the user-tunable settings
type Config struct {
	// DefaultVariant selects metadata/metadata_<variant>.yml when no
	// variant is given on the command line
	DefaultVariant string `koanf:"default_variant"`

	Git    GitConfig    `koanf:"git"`
	Prompt PromptConfig `koanf:"prompt"`
}

// GitConfig controls post-scaffold version-control bootstrapping
type GitConfig struct {
	Init bool `koanf:"init"`
}

// PromptConfig controls non-interactive sync behavior
type PromptConfig struct {
	// Assume is the sticky conflict mode to start with when no terminal
	// is attached: "" (ask), "overwrite", or "skip"
	Assume string `koanf:"assume"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load returns the merged configuration: embedded defaults, then the user
// config file if one exists.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFilePath())
}

// LoadFrom loads configuration using an explicit user config path.
// Exposed for tests.
func LoadFrom(userConfigPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, protreeerrors.Wrap(err, protreeerrors.ErrConfigParse, "failed to load embedded defaults")
	}

	if _, err := os.Stat(userConfigPath); err == nil {
		if err := k.Load(file.Provider(userConfigPath), toml.Parser()); err != nil {
			return nil, protreeerrors.Wrapf(err, protreeerrors.ErrConfigLoad, "failed to load config from %s", userConfigPath)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, protreeerrors.Wrap(err, protreeerrors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}
