// Package walker traverses a repository tree, pruning ignored directories.
package walker

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// FileEntry is a regular file reached during traversal.
type FileEntry struct {
	// Path is the file path, joined onto the walk root.
	Path string
	// Name is the base name of the file.
	Name string
	// Ext is the extension including the leading dot, or empty when the file has none.
	Ext string
}

// DirFilter reports whether a directory name is pruned from traversal.
type DirFilter interface {
	IsIgnoredDir(name string) bool
}

// Walk returns a lazy sequence of the regular files under root.
//
// Directories matching filter, root included, are skipped along with their
// contents. Symbolic links are not followed or yielded. Entries that cannot be
// read are skipped. Each range over the sequence starts a fresh traversal.
func Walk(root string, filter DirFilter) (iter.Seq[FileEntry], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to walk %s: not a directory", root)
	}

	return func(yield func(FileEntry) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entry; a directory we failed to open is already skipped.
				return nil
			}
			if d.IsDir() {
				if filter.IsIgnoredDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			entry := FileEntry{Path: path, Name: d.Name(), Ext: Extension(d.Name())}
			if !yield(entry) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

// Extension returns the substring of name from its last '.' to the end.
// Names without a dot, and names whose only dot is the leading one (".bashrc"),
// have no extension.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}
