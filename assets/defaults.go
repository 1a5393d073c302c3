package assets

// RegisterDefaultLoaders binds the built-in loaders to m: images, atlases,
// data documents and Lua scripts.
func RegisterDefaultLoaders(m *Manager) {
	m.RegisterLoader(ImageLoader{}, ImageExtensions...)
	m.RegisterLoader(NewAtlasLoader(m), AtlasExtension)
	m.RegisterLoader(DataLoader{}, DataExtensions...)
	m.RegisterLoader(ScriptLoader{}, ScriptExtensions...)
}
