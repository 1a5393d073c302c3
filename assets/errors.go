package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no locator could resolve a name.
	ErrNotFound = errors.New("assets: not found")
	// ErrNoLoader reports that no loader is registered for a discriminator.
	ErrNoLoader = errors.New("assets: no loader registered")
	// ErrTypeMismatch reports a cached asset of a different type than requested.
	ErrTypeMismatch = errors.New("assets: cached asset has a different type")
	// ErrUnsupportedAsset is returned by loaders handed an asset type they
	// cannot populate.
	ErrUnsupportedAsset = errors.New("assets: unsupported asset type")
)

// LocatorError is a recoverable failure of a single locator.
type LocatorError struct {
	Locator string
	Name    string
	Err     error
}

func (e *LocatorError) Error() string {
	return fmt.Sprintf("assets: locator %s: %s: %v", e.Locator, e.Name, e.Err)
}

func (e *LocatorError) Unwrap() error { return e.Err }

// LoaderError is a recoverable failure to decode a located stream.
type LoaderError struct {
	Name      string
	Extension string
	Err       error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("assets: load %s (%s): %v", e.Name, e.Extension, e.Err)
}

func (e *LoaderError) Unwrap() error { return e.Err }
