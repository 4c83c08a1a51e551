package serviceutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("FACETCRAWL_TEST_SET", "value")
	t.Setenv("FACETCRAWL_TEST_EMPTY", "")

	require.Equal(t, "value", GetEnvString("FACETCRAWL_TEST_SET", "default"))
	require.Equal(t, "default", GetEnvString("FACETCRAWL_TEST_EMPTY", "default"))
	require.Equal(t, "default", GetEnvString("FACETCRAWL_TEST_UNSET_a8f3", "default"))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FACETCRAWL_TEST_DOTENV=from-file\n"), 0600)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("FACETCRAWL_TEST_DOTENV", "")
	os.Unsetenv("FACETCRAWL_TEST_DOTENV")

	LoadEnv()
	require.Equal(t, "from-file", os.Getenv("FACETCRAWL_TEST_DOTENV"))
}
