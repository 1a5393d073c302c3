package assets

import "io"

// Loader populates a freshly constructed asset from a located stream. A
// returned error discards the asset.
type Loader interface {
	Load(a Asset, r io.Reader) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(a Asset, r io.Reader) error

func (f LoaderFunc) Load(a Asset, r io.Reader) error { return f(a, r) }
