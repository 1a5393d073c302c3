package assets

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Manager resolves descriptors to shared assets through an ordered locator
// chain, a loader registry and a cache.
type Manager struct {
	locators []Locator
	loaders  map[string]Loader
	cache    *Cache
	log      *zap.Logger
}

// NewManager creates an empty manager. A nil logger discards output.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		loaders: make(map[string]Loader),
		cache:   NewCache(),
		log:     log.Named("assets"),
	}
}

// Logger returns the manager's logger, for loaders that report their own
// diagnostics.
func (m *Manager) Logger() *zap.Logger {
	return m.log
}

// RegisterLocator appends l to the locator chain. Earlier registrations are
// tried first.
func (m *Manager) RegisterLocator(l Locator) {
	m.locators = append(m.locators, l)
}

// RegisterLoader binds l to every given discriminator. A later registration
// for the same discriminator replaces the earlier one.
func (m *Manager) RegisterLoader(l Loader, extensions ...string) {
	for _, ext := range extensions {
		m.loaders[strings.ToLower(strings.TrimPrefix(ext, "."))] = l
	}
}

// Locators returns the locator chain in resolution order. The returned slice
// MUST NOT be mutated.
func (m *Manager) Locators() []Locator {
	return m.locators
}

// LoaderFor returns the loader registered for ext.
func (m *Manager) LoaderFor(ext string) (Loader, bool) {
	l, ok := m.loaders[ext]
	return l, ok
}

// Cached returns the live asset for d without acquiring it.
func (m *Manager) Cached(d Descriptor) (Asset, bool) {
	return m.cache.Get(d)
}

// Len returns the number of cached assets.
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Acquire adds a reference to an already loaded asset.
func (m *Manager) Acquire(a Asset) {
	a.acquire()
}

// Load returns the asset for desc, loading and caching it on first use.
// The returned asset has been acquired once for this call; release it with
// Manager.Unload. On failure the zero value is returned with an error
// wrapping ErrNotFound, ErrNoLoader, ErrTypeMismatch or a *LoaderError, and
// nothing is cached.
//
//	img, err := assets.Load[assets.Image](m, assets.ImageDescriptor{Path: "hero.png"})
func Load[T any, A interface {
	*T
	Asset
}, D interface {
	comparable
	Descriptor
}](m *Manager, desc D) (A, error) {
	key := cacheKey[T](desc)
	if cached, ok := m.cache.Get(key); ok {
		a, ok := cached.(A)
		if !ok {
			m.log.Error("cached asset type mismatch",
				zap.String("asset", desc.Name()),
				zap.String("cached", fmt.Sprintf("%T", cached)),
				zap.String("requested", fmt.Sprintf("%T", a)))
			return nil, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, desc.Name(), cached)
		}
		a.acquire()
		return a, nil
	}

	name := desc.Name()
	rc, err := m.locate(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ext := desc.Extension()
	loader, ok := m.loaders[ext]
	if !ok {
		m.log.Error("no loader registered",
			zap.String("asset", name), zap.String("extension", ext))
		return nil, fmt.Errorf("%w for %q (asset %s)", ErrNoLoader, ext, name)
	}

	a := A(new(T))
	a.bind(key)
	if err := loader.Load(a, rc); err != nil {
		a.Free()
		var lerr *LoaderError
		if !errors.As(err, &lerr) {
			lerr = &LoaderError{Name: name, Extension: ext, Err: err}
		}
		m.log.Warn("asset decode failed",
			zap.String("asset", name), zap.String("extension", ext), zap.Error(err))
		return nil, lerr
	}

	m.cache.Put(key, a)
	a.acquire()
	m.log.Debug("asset loaded", zap.String("asset", name), zap.String("extension", ext))
	return a, nil
}

// cacheKey maps a plain Path requested as an Image onto the equivalent
// ImageDescriptor, so both spellings share one cache entry.
func cacheKey[T any](desc Descriptor) Descriptor {
	if p, ok := desc.(Path); ok {
		if _, isImage := any((*T)(nil)).(*Image); isImage {
			return ImageDescriptor{Path: string(p)}
		}
	}
	return desc
}

// locate walks the locator chain; the first stream wins.
func (m *Manager) locate(name string) (io.ReadCloser, error) {
	for _, l := range m.locators {
		rc, err := l.Locate(name)
		if err != nil {
			m.log.Warn("asset locator miss",
				zap.String("asset", name),
				zap.String("locator", locatorName(l)),
				zap.Error(err))
			continue
		}
		if rc != nil {
			return rc, nil
		}
	}
	m.log.Warn("asset not found",
		zap.String("asset", name), zap.Int("locators", len(m.locators)))
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Unload releases one reference to a. When the count reaches zero the asset
// is evicted and its payload freed. a must be non-nil.
func (m *Manager) Unload(a Asset) {
	if a.RefCount() <= 0 {
		m.log.Warn("unload of released asset", zap.String("asset", a.Descriptor().Name()))
		return
	}
	if a.release() > 0 {
		return
	}
	d := a.Descriptor()
	if cached, ok := m.cache.Get(d); ok && cached == a {
		m.cache.Remove(d)
	}
	a.Free()
	m.log.Debug("asset unloaded", zap.String("asset", d.Name()))
}

// UnloadAll evicts and frees every cached asset regardless of outstanding
// references. Handles held by callers become invalid.
func (m *Manager) UnloadAll() {
	all := m.cache.drain()
	for _, a := range all {
		a.reset()
	}
	for _, a := range all {
		a.Free()
	}
	if len(all) > 0 {
		m.log.Debug("assets unloaded", zap.Int("count", len(all)))
	}
}
