package collector

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/codereview/internal/models"
	"github.com/joescharf/codereview/internal/output"
)

func newTestUI() (*output.UI, *bytes.Buffer) {
	errOut := &bytes.Buffer{}
	return &output.UI{Out: &bytes.Buffer{}, ErrOut: errOut}, errOut
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollect_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "print('hi')")
	writeFile(t, root, "app.go", "package main")
	writeFile(t, root, "notes.md", "# notes")

	ui, _ := newTestUI()
	files, err := New(root, ui).Collect()
	require.NoError(t, err)

	paths := collectedPaths(files)
	assert.Equal(t, []string{"app.py", "notes.md"}, paths)
}

func TestCollect_PrunesExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.js", "x")
	writeFile(t, root, "node_modules/pkg/index.js", "x")
	writeFile(t, root, "node_modules/pkg/deep/nested.js", "x")
	writeFile(t, root, "dist/bundle.js", "x")

	ui, _ := newTestUI()
	files, err := New(root, ui).Collect()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main.js"}, collectedPaths(files))
}

func TestCollect_SkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.py", "ok")
	writeFile(t, root, "big.py", strings.Repeat("a", DefaultMaxFileSize))

	ui, _ := newTestUI()
	files, err := New(root, ui).Collect()
	require.NoError(t, err)

	assert.Equal(t, []string{"small.py"}, collectedPaths(files))
}

func TestCollect_SkipsBinaryWithWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ok.md", "text")
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin.json"), []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

	ui, errOut := newTestUI()
	files, err := New(root, ui).Collect()
	require.NoError(t, err)

	assert.Equal(t, []string{"ok.md"}, collectedPaths(files))
	assert.Contains(t, errOut.String(), "not valid UTF-8")
}

func TestCollect_DeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.py", "b")
	writeFile(t, root, "a.py", "a")
	writeFile(t, root, "sub/c.py", "c")

	ui, _ := newTestUI()
	c := New(root, ui)

	first, err := c.Collect()
	require.NoError(t, err)
	second, err := c.Collect()
	require.NoError(t, err)

	assert.Equal(t, collectedPaths(first), collectedPaths(second))
	assert.Equal(t, []string{"a.py", "b.py", "sub/c.py"}, collectedPaths(first))
}

func TestCollect_EmptyTree(t *testing.T) {
	ui, _ := newTestUI()
	files, err := New(t.TempDir(), ui).Collect()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func collectedPaths(files []models.SourceFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
