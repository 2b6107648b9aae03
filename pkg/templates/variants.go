package templates

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/protree/protree/pkg/logging"
	"github.com/protree/protree/pkg/paths"
)

// MetadataFilePrefix and MetadataFileSuffix frame the per-variant
// metadata files, metadata_<code>.yml.
const (
	MetadataFilePrefix = "metadata_"
	MetadataFileSuffix = ".yml"
)

// Variant describes one metadata variant shipped by a template root.
type Variant struct {
	// Code is the language/locale code from the file name
	Code string

	// Title is the document title declared in the metadata file, if any
	Title string

	// Path is the absolute path to the metadata file
	Path string
}

// MetadataPath returns the path of the metadata file for the given
// variant code inside root. The file may not exist.
func MetadataPath(root, variant string) string {
	return filepath.Join(root, paths.MetadataDirName, MetadataFilePrefix+variant+MetadataFileSuffix)
}

// Variants enumerates the metadata variants available under root, sorted
// by code. Files that fail to parse are still listed, with an empty
// title.
func Variants(root string) ([]Variant, error) {
	logger := logging.GetLogger("templates.variants")

	entries, err := os.ReadDir(filepath.Join(root, paths.MetadataDirName))
	if err != nil {
		return nil, err
	}

	var variants []Variant
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, MetadataFilePrefix) || !strings.HasSuffix(name, MetadataFileSuffix) {
			continue
		}
		code := strings.TrimSuffix(strings.TrimPrefix(name, MetadataFilePrefix), MetadataFileSuffix)
		if code == "" {
			continue
		}

		path := filepath.Join(root, paths.MetadataDirName, name)
		v := Variant{Code: code, Path: path}

		data, err := os.ReadFile(path)
		if err == nil {
			var doc struct {
				Title string `yaml:"title"`
			}
			if err := yaml.Unmarshal(data, &doc); err != nil {
				logger.Warn().Str("file", path).Err(err).Msg("Failed to parse variant metadata")
			} else {
				v.Title = doc.Title
			}
		}

		variants = append(variants, v)
	}

	sort.Slice(variants, func(i, j int) bool { return variants[i].Code < variants[j].Code })
	return variants, nil
}
