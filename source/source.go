// Package source supplies shader source text to the program builder.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Provider returns the complete source text of a named shader.
type Provider interface {
	Source(name string) (string, error)
}

// ReadError reports a shader source that could not be read.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read shader source %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ErrNotFound is wrapped by a ReadError when a provider has no such source.
var ErrNotFound = errors.New("shader source not found")

// Literal serves sources held in memory, keyed by name.
type Literal map[string]string

func (l Literal) Source(name string) (string, error) {
	src, ok := l[name]
	if !ok {
		return "", &ReadError{Name: name, Err: ErrNotFound}
	}
	return src, nil
}

// Dir reads sources from files under a directory. Absolute names are read
// as-is.
type Dir string

func (d Dir) Source(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(string(d), name)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", &ReadError{Name: name, Err: err}
	}
	return string(b), nil
}

// FS reads sources from a file system such as an embed.FS.
type FS struct {
	fsys fs.FS
	root string
}

// NewFS serves the files below root in fsys.
func NewFS(fsys fs.FS, root string) *FS {
	return &FS{fsys: fsys, root: root}
}

func (f *FS) Source(name string) (string, error) {
	path := name
	if f.root != "" && f.root != "." {
		path = f.root + "/" + name
	}
	b, err := fs.ReadFile(f.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", &ReadError{Name: name, Err: err}
	}
	return string(b), nil
}

// Chain tries each provider in order and returns the first source found.
// Errors other than ErrNotFound stop the search.
type Chain []Provider

func (c Chain) Source(name string) (string, error) {
	for _, p := range c {
		src, err := p.Source(name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", &ReadError{Name: name, Err: ErrNotFound}
}

// Pair reads a vertex and a fragment source in one call.
func Pair(p Provider, vertexName, fragmentName string) (vertex, fragment string, err error) {
	vertex, err = p.Source(vertexName)
	if err != nil {
		return "", "", err
	}
	fragment, err = p.Source(fragmentName)
	if err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}
