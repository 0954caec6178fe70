// Package fs locates and opens city data files inside a data directory.
package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/bikeshare"
)

// DataDir is a directory holding city data files, possibly in nested
// subdirectories.
type DataDir struct {
	root string
}

// NewDataDir returns a DataDir rooted at root. An empty root means the
// working directory.
func NewDataDir(root string) DataDir {
	if root == "" {
		root = "."
	}
	return DataDir{root: root}
}

// Root returns the directory searched for data files.
func (d DataDir) Root() string { return d.root }

// Locate returns the path of the data file called name. An absolute name or
// a file directly under the root is used as is. Otherwise name is matched
// as a doublestar pattern against every file below the root ("**/" + name)
// and the lexically first match wins. Errors wrap bikeshare.ErrNotFound.
func (d DataDir) Locate(name string) (string, error) {
	if filepath.IsAbs(name) {
		if err := regularFile(name); err != nil {
			return "", err
		}
		return name, nil
	}

	direct := filepath.Join(d.root, name)
	if regularFile(direct) == nil {
		return direct, nil
	}

	info, err := os.Stat(d.root)
	if err != nil {
		return "", fmt.Errorf("%w: data directory: %w", bikeshare.ErrNotFound, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: data directory %s is not a directory", bikeshare.ErrNotFound, d.root)
	}

	pattern := "**/" + filepath.ToSlash(name)
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("%w: invalid file pattern %q", bikeshare.ErrNotFound, name)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(d.root), pattern, func(path string, entry iofs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: search %s: %w", bikeshare.ErrNotFound, d.root, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s in %s", bikeshare.ErrNotFound, name, d.root)
	}
	slices.Sort(matches)
	return filepath.Join(d.root, filepath.FromSlash(matches[0])), nil
}

// Open locates name and opens it for reading.
func (d DataDir) Open(name string) (io.ReadCloser, error) {
	path, err := d.Locate(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bikeshare.ErrNotFound, err)
	}
	return f, nil
}

func regularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", bikeshare.ErrNotFound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", bikeshare.ErrNotFound, path)
	}
	return nil
}
