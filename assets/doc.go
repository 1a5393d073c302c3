// Package assets resolves named resources to loaded, reference-counted,
// cached objects.
//
// A [Manager] owns an ordered chain of [Locator]s, a registry of [Loader]s
// keyed by discriminator (usually the file extension), and a [Cache] that
// holds at most one live [Asset] per [Descriptor]. [Load] is the generic
// get-or-load entry point:
//
//	m := assets.NewManager(log)
//	m.RegisterLocator(assets.NewFileLocator("data"))
//	m.RegisterLoader(assets.ImageLoader{}, assets.ImageExtensions...)
//
//	img, err := assets.Load[assets.Image](m, assets.ImageDescriptor{Path: "hero.png"})
//	if err != nil {
//		// missing or undecodable assets are an expected outcome
//	}
//	defer m.Unload(img)
//
// Every successful Load acquires one reference. [Manager.Unload] releases
// it; the asset is evicted and its payload freed when the count reaches
// zero.
//
// Resolution misses, decode failures and missing loaders are logged and
// returned as errors; none of them panic. The manager is not safe for
// concurrent use.
package assets
