package templates

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protree/protree/pkg/errors"
	"github.com/protree/protree/pkg/paths"
	"github.com/protree/protree/pkg/testutil"
)

func TestIsTemplateRoot(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  bool
	}{
		{
			name: "valid root with metadata",
			setup: func(t *testing.T) string {
				return testutil.CreateTemplateRoot(t, testutil.TempDir(t, "locator"))
			},
			want: true,
		},
		{
			name: "directory without metadata",
			setup: func(t *testing.T) string {
				return testutil.CreateDir(t, testutil.TempDir(t, "locator"), "templates")
			},
			want: false,
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(testutil.TempDir(t, "locator"), "nope")
			},
			want: false,
		},
		{
			name: "metadata is a file, not a directory",
			setup: func(t *testing.T) string {
				dir := testutil.CreateDir(t, testutil.TempDir(t, "locator"), "templates")
				testutil.CreateFile(t, dir, "metadata", "not a dir")
				return dir
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTemplateRoot(tt.setup(t)))
		})
	}
}

func TestLocateEnvOverride(t *testing.T) {
	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "locator"))
	t.Setenv(paths.EnvTemplatesDir, root)

	got, err := Locate(ModeFull)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestLocateEnvBeatsUserDir(t *testing.T) {
	// Both the env override and the user override dir are valid; the env
	// var must win.
	envRoot := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "locator"))
	t.Setenv(paths.EnvTemplatesDir, envRoot)

	dataHome := testutil.TempDir(t, "locator")
	t.Setenv("XDG_DATA_HOME", dataHome)
	xdg.Reload()
	defer xdg.Reload()

	userRoot := testutil.CreateDir(t, dataHome, filepath.Join(paths.AppDirName, paths.TemplatesDirName))
	testutil.CreateDir(t, userRoot, paths.MetadataDirName)
	require.True(t, IsTemplateRoot(userRoot))

	got, err := Locate(ModeFull)
	require.NoError(t, err)
	assert.Equal(t, envRoot, got)
}

func TestLocateUserDir(t *testing.T) {
	t.Setenv(paths.EnvTemplatesDir, "")

	dataHome := testutil.TempDir(t, "locator")
	t.Setenv("XDG_DATA_HOME", dataHome)
	xdg.Reload()
	defer xdg.Reload()

	userRoot := testutil.CreateDir(t, dataHome, filepath.Join(paths.AppDirName, paths.TemplatesDirName))
	testutil.CreateDir(t, userRoot, paths.MetadataDirName)

	got, err := Locate(ModeFull)
	require.NoError(t, err)
	assert.Equal(t, userRoot, got)
}

func TestLocateDistOnlySkipsUserDir(t *testing.T) {
	t.Setenv(paths.EnvTemplatesDir, "")

	dataHome := testutil.TempDir(t, "locator")
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_DATA_DIRS", testutil.TempDir(t, "locator"))
	xdg.Reload()
	defer xdg.Reload()

	userRoot := testutil.CreateDir(t, dataHome, filepath.Join(paths.AppDirName, paths.TemplatesDirName))
	testutil.CreateDir(t, userRoot, paths.MetadataDirName)

	// The only valid root is the user dir; dist-only must not use it.
	_, err := Locate(ModeDistOnly)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplatesNotFound))
}

func TestLocateNotFoundListsCheckedPaths(t *testing.T) {
	t.Setenv(paths.EnvTemplatesDir, filepath.Join(testutil.TempDir(t, "locator"), "absent"))
	t.Setenv("XDG_DATA_HOME", testutil.TempDir(t, "locator"))
	t.Setenv("XDG_DATA_DIRS", testutil.TempDir(t, "locator"))
	xdg.Reload()
	defer xdg.Reload()

	_, err := Locate(ModeFull)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplatesNotFound))

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	checked, ok := details["checked"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, checked)
	// The env override is the first path tried
	assert.Contains(t, checked[0], "absent")
	assert.Contains(t, err.Error(), checked[0])
}

func TestDevTreeCandidates(t *testing.T) {
	base := testutil.TempDir(t, "locator")
	testutil.CreateFile(t, base, "go.mod", "module example.com/scratch\n")
	tmpl := testutil.CreateDir(t, base, paths.TemplatesDirName)
	nested := testutil.CreateDir(t, base, filepath.Join("cmd", "protree"))

	found := devTreeCandidates(nested)
	require.Len(t, found, 1)
	assert.Equal(t, tmpl, found[0])
}

func TestDevTreeCandidatesNoMarker(t *testing.T) {
	base := testutil.TempDir(t, "locator")
	nested := testutil.CreateDir(t, base, filepath.Join("a", "b"))

	// go.mod missing: the templates dir alone is not enough
	testutil.CreateDir(t, base, paths.TemplatesDirName)
	assert.Empty(t, devTreeCandidates(nested))
}

func TestExecutableCandidates(t *testing.T) {
	got := executableCandidates("/opt/protree/bin")

	require.Len(t, got, 2)
	assert.Equal(t, filepath.Join("/opt/protree/bin", paths.TemplatesDirName), got[0])
	assert.Equal(t, filepath.Join("/opt/protree/bin", "..", "share", paths.AppDirName, paths.TemplatesDirName), got[1])
}
