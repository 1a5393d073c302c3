package assets

// Asset is a loaded resource. Concrete asset types embed [Base], which
// carries the descriptor and reference count, and override Free to release
// their payload.
type Asset interface {
	Descriptor() Descriptor
	RefCount() int
	// Free releases payload resources. Called by the Manager once the last
	// reference is released, or when a load fails after construction.
	Free()

	bind(d Descriptor)
	acquire()
	release() int
	reset()
}

// Base holds the state shared by every asset type.
type Base struct {
	desc Descriptor
	refs int
}

// Descriptor returns the descriptor the asset was loaded for.
func (b *Base) Descriptor() Descriptor { return b.desc }

// RefCount returns the number of outstanding acquisitions.
func (b *Base) RefCount() int { return b.refs }

// Free is a no-op for assets without payload resources.
func (b *Base) Free() {}

func (b *Base) bind(d Descriptor) { b.desc = d }

func (b *Base) acquire() { b.refs++ }

func (b *Base) release() int {
	if b.refs > 0 {
		b.refs--
	}
	return b.refs
}

func (b *Base) reset() { b.refs = 0 }
