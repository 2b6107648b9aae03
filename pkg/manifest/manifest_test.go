package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protree/protree/pkg/testutil"
)

func findOperation(m *Manifest, target string) *FileOperation {
	for i := range m.Operations {
		if m.Operations[i].Target == target {
			return &m.Operations[i]
		}
	}
	return nil
}

func TestBuild(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "manifest"))
	testutil.CreateFile(t, root, "README.md", "# PROJECT_NAME\n")
	testutil.CreateFile(t, root, "gitignore", "*.log\n")
	testutil.CreateFile(t, root, filepath.Join("R", "main.R"), "source(\"lib.R\")\n")
	testutil.CreateFile(t, root, filepath.Join("metadata", "metadata_en.yml"), "title: Report\n")

	m, err := Build(root, "demo", "en")
	require.NoError(t, err)

	assert.Equal(t, root, m.Root)
	assert.Equal(t, "en", m.Variant)
	assert.Empty(t, m.Warnings)

	// The fixed catalog is attached regardless of template content
	assert.Equal(t, ProjectDirs, m.Dirs)
	assert.Len(t, m.Dirs, 15)

	require.Len(t, m.Operations, 4)

	readme := findOperation(m, "README.md")
	require.NotNil(t, readme)
	assert.NotNil(t, readme.Transform)
	assert.Equal(t, "# demo\n", readme.Transform("# PROJECT_NAME\n"))

	gitignore := findOperation(m, ".gitignore")
	require.NotNil(t, gitignore)
	assert.Nil(t, gitignore.Transform)
	assert.Nil(t, findOperation(m, "gitignore"))

	mainR := findOperation(m, filepath.Join("R", "main.R"))
	require.NotNil(t, mainR)
	assert.Nil(t, mainR.Transform)

	meta := findOperation(m, MetadataTarget)
	require.NotNil(t, meta)
	assert.Equal(t, filepath.Join(root, "metadata", "metadata_en.yml"), meta.Source)
}

func TestBuildMissingVariantWarns(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "manifest"))
	testutil.CreateFile(t, root, "README.md", "# PROJECT_NAME\n")
	testutil.CreateFile(t, root, filepath.Join("metadata", "metadata_en.yml"), "title: Report\n")

	m, err := Build(root, "demo", "xx")
	require.NoError(t, err)

	// Build succeeds, no _metadata.yml operation, one warning recorded
	assert.Nil(t, findOperation(m, MetadataTarget))
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "xx")
	require.Len(t, m.Operations, 1)
}

func TestBuildExcludesMetadataTree(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "manifest"))
	testutil.CreateFile(t, root, filepath.Join("metadata", "metadata_en.yml"), "title: Report\n")
	testutil.CreateFile(t, root, filepath.Join("metadata", "extra.txt"), "never copied\n")
	testutil.CreateFile(t, root, "keep.txt", "kept\n")

	m, err := Build(root, "demo", "en")
	require.NoError(t, err)

	// metadata/ files only surface via the _metadata.yml operation
	assert.Nil(t, findOperation(m, filepath.Join("metadata", "extra.txt")))
	assert.Nil(t, findOperation(m, filepath.Join("metadata", "metadata_en.yml")))
	assert.NotNil(t, findOperation(m, "keep.txt"))
	assert.NotNil(t, findOperation(m, MetadataTarget))
}

func TestBuildNestedGitignoreNotRenamed(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "manifest"))
	testutil.CreateFile(t, root, filepath.Join("R", "gitignore"), "*.Rdata\n")

	m, err := Build(root, "demo", "en")
	require.NoError(t, err)

	// Only a top-level gitignore is renamed
	assert.NotNil(t, findOperation(m, filepath.Join("R", "gitignore")))
	assert.Nil(t, findOperation(m, filepath.Join("R", ".gitignore")))
}

func TestBuildNestedReadmeNotTransformed(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "manifest"))
	testutil.CreateFile(t, root, filepath.Join("doc", "README.md"), "PROJECT_NAME\n")

	m, err := Build(root, "demo", "en")
	require.NoError(t, err)

	op := findOperation(m, filepath.Join("doc", "README.md"))
	require.NotNil(t, op)
	assert.Nil(t, op.Transform)
}

func TestBuildTargetsUnique(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "manifest"))
	testutil.CreateFile(t, root, "gitignore", "from rename\n")
	testutil.CreateFile(t, root, ".gitignore", "already dotted\n")

	_, err := Build(root, "demo", "en")
	assert.Error(t, err)
}
