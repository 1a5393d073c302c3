package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Locator resolves an asset name to a raw byte stream. Any error is treated
// as a recoverable miss and the next locator in the chain is tried. The
// caller closes the returned stream.
type Locator interface {
	Locate(name string) (io.ReadCloser, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(name string) (io.ReadCloser, error)

func (f LocatorFunc) Locate(name string) (io.ReadCloser, error) { return f(name) }

// locatorName labels a locator in logs.
func locatorName(l Locator) string {
	if s, ok := l.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", l)
}

// FileLocator resolves names relative to a directory on disk. Names are
// slash separated and may not escape the root.
type FileLocator struct {
	root string
}

// NewFileLocator creates a locator rooted at dir.
func NewFileLocator(dir string) *FileLocator {
	return &FileLocator{root: dir}
}

func (l *FileLocator) String() string { return "file:" + l.root }

// Root returns the directory this locator resolves against.
func (l *FileLocator) Root() string { return l.root }

// Locate opens root/name.
func (l *FileLocator) Locate(name string) (io.ReadCloser, error) {
	if !fs.ValidPath(name) {
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: fs.ErrInvalid}
	}
	p := filepath.Join(l.root, filepath.FromSlash(name))
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: fmt.Errorf("%s is a directory", p)}
	}
	return f, nil
}

// FSLocator resolves names inside an fs.FS, such as an embed.FS.
type FSLocator struct {
	fsys  fs.FS
	label string
}

// NewFSLocator creates a locator over fsys. label names it in logs.
func NewFSLocator(fsys fs.FS, label string) *FSLocator {
	return &FSLocator{fsys: fsys, label: label}
}

func (l *FSLocator) String() string { return "fs:" + l.label }

// Locate opens name in the file system.
func (l *FSLocator) Locate(name string) (io.ReadCloser, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: fmt.Errorf("%s is a directory", name)}
	}
	return f, nil
}

// MemoryLocator serves assets from an in-memory map. Useful for generated
// content and tests.
type MemoryLocator struct {
	files map[string][]byte
}

// NewMemoryLocator creates a locator over files. The map is not copied.
func NewMemoryLocator(files map[string][]byte) *MemoryLocator {
	if files == nil {
		files = make(map[string][]byte)
	}
	return &MemoryLocator{files: files}
}

func (l *MemoryLocator) String() string { return "memory" }

// Set adds or replaces a file.
func (l *MemoryLocator) Set(name string, data []byte) {
	l.files[name] = data
}

// Locate returns a reader over the stored bytes.
func (l *MemoryLocator) Locate(name string) (io.ReadCloser, error) {
	data, ok := l.files[name]
	if !ok {
		return nil, &LocatorError{Locator: l.String(), Name: name, Err: ErrNotFound}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
