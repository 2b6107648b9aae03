package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protree/protree/pkg/paths"
	"github.com/protree/protree/pkg/testutil"
)

func setupEnv(t *testing.T) {
	t.Helper()

	root := testutil.CreateTemplateRoot(t, testutil.TempDir(t, "cmd"))
	testutil.CreateFile(t, root, "README.md", "# PROJECT_NAME\n")
	testutil.CreateFile(t, root, filepath.Join("metadata", "metadata_en.yml"), "title: Report\n")
	t.Setenv(paths.EnvTemplatesDir, root)
	t.Setenv(paths.EnvConfigDir, testutil.TempDir(t, "cmd"))
	t.Setenv("XDG_STATE_HOME", testutil.TempDir(t, "cmd"))
}

func TestNewCommand(t *testing.T) {
	setupEnv(t)
	dir := testutil.TempDir(t, "cmd")

	rootCmd.SetArgs([]string{"new", "demo", "--dir", dir, "--no-git"})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())

	assert.True(t, testutil.DirExists(t, filepath.Join(dir, "demo")))
	assert.Equal(t, "# demo\n", testutil.ReadFile(t, filepath.Join(dir, "demo", "README.md")))
}

func TestNewCommandExistingTarget(t *testing.T) {
	setupEnv(t)
	dir := testutil.TempDir(t, "cmd")
	testutil.CreateDir(t, dir, "demo")

	rootCmd.SetArgs([]string{"new", "demo", "--dir", dir, "--no-git"})
	defer rootCmd.SetArgs(nil)
	assert.Error(t, rootCmd.Execute())
}

func TestVariantsCommand(t *testing.T) {
	setupEnv(t)

	rootCmd.SetArgs([]string{"variants"})
	defer rootCmd.SetArgs(nil)
	assert.NoError(t, rootCmd.Execute())
}
