package assets

import (
	"image"
	"path"
	"strings"
)

// Descriptor identifies a logical resource. Implementations are immutable
// value types; equality of the dynamic type and every field decides cache
// identity, so they must be comparable.
type Descriptor interface {
	// Name is the locator-facing resource name, slash separated.
	Name() string
	// Extension selects the Loader. Lowercase, without the leading dot.
	Extension() string
}

// ExtensionOf returns the lowercase extension of name without the dot.
func ExtensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// Path is the plain descriptor: a resource name whose discriminator is its
// extension. Loading a Path as an Image is the same as loading
// ImageDescriptor{Path: p}; both share one cache entry.
type Path string

func (p Path) Name() string      { return string(p) }
func (p Path) Extension() string { return ExtensionOf(string(p)) }

// ImageDescriptor names an image resource. A non-empty Region crops the
// decoded image; the same file with different regions is cached separately.
type ImageDescriptor struct {
	Path   string
	Region image.Rectangle
}

func (d ImageDescriptor) Name() string      { return d.Path }
func (d ImageDescriptor) Extension() string { return ExtensionOf(d.Path) }

// AtlasExtension is the discriminator used by AtlasDescriptor regardless of
// the file's own extension (atlases are usually .json).
const AtlasExtension = "atlas"

// AtlasDescriptor names a TexturePacker atlas description.
type AtlasDescriptor struct {
	Path string
}

func (d AtlasDescriptor) Name() string    { return d.Path }
func (AtlasDescriptor) Extension() string { return AtlasExtension }
