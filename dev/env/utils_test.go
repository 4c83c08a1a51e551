package devenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePathPassthrough(t *testing.T) {
	path, err := ResolvePath("out/http")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "out/http", path)
}

func TestResolvePathDevState(t *testing.T) {
	root, err := GetWorkspaceRoot()
	if err != nil {
		t.Fatal(err)
	}

	path, err := ResolvePath("<dev_state>/http")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, filepath.Join(root, "dev", ".state", "http"), path)

	info, err := os.Stat(filepath.Join(root, "dev", ".state"))
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, info.IsDir())
}

func TestIsWorkspaceRoot(t *testing.T) {
	dir := t.TempDir()
	require.False(t, isWorkspaceRoot(dir))

	err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module facetcrawl\n\ngo 1.22.2\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, isWorkspaceRoot(dir))

	err = os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module facetcrawl-fork\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	require.False(t, isWorkspaceRoot(dir))
}
