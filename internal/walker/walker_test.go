package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dirSet map[string]bool

func (s dirSet) IsIgnoredDir(name string) bool { return s[name] }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, root string, filter DirFilter) []string {
	t.Helper()
	seq, err := Walk(root, filter)
	require.NoError(t, err)
	var names []string
	for e := range seq {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	sort.Strings(names)
	return names
}

func TestWalk_PrunesIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "pkg", "lib.go"), "package pkg\n")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.js"), "x\n")
	writeFile(t, filepath.Join(root, "pkg", "deep", "node_modules", "inner.js"), "x\n")
	writeFile(t, filepath.Join(root, "pkg", "node_modules.js"), "x\n")

	names := collect(t, root, dirSet{"node_modules": true})

	assert.Equal(t, []string{"main.go", "pkg/lib.go", "pkg/node_modules.js"}, names)
}

func TestWalk_PrunesIgnoredRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vendor")
	writeFile(t, filepath.Join(root, "a.go"), "package a\n")

	assert.Empty(t, collect(t, root, dirSet{"vendor": true}))
	assert.Equal(t, []string{"a.go"}, collect(t, root, dirSet{"node_modules": true}))
}

func TestWalk_IsRestartable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, "b", "c.rs"), "fn c() {}\n")

	first := collect(t, root, dirSet{})
	second := collect(t, root, dirSet{})
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestWalk_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "c.go"} {
		writeFile(t, filepath.Join(root, name), "x\n")
	}
	seq, err := Walk(root, dirSet{})
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestWalk_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.go")
	writeFile(t, target, "package real\n")
	if err := os.Symlink(target, filepath.Join(root, "link.go")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(root, filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	assert.Equal(t, []string{"real.go"}, collect(t, root, dirSet{}))
}

func TestWalk_Errors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeFile(t, file, "x\n")

	_, err := Walk(filepath.Join(root, "missing"), dirSet{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Walk(file, dirSet{})
	assert.ErrorContains(t, err, "not a directory")
}

func TestExtension(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "main.rs", expected: ".rs"},
		{name: "foo.min.js", expected: ".js"},
		{name: "Makefile", expected: ""},
		{name: ".bashrc", expected: ""},
		{name: ".eslintrc.js", expected: ".js"},
		{name: "Main.RS", expected: ".RS"},
		{name: "trailing.", expected: "."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Extension(tc.name))
		})
	}
}
