package assets

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Region describes a sub-rectangle within an atlas page.
type Region struct {
	Page      uint16 // page index within the atlas
	X, Y      uint16 // top-left corner of the packed rect
	Width     uint16 // packed width (may differ from OriginalW if trimmed)
	Height    uint16 // packed height (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed width as authored
	OriginalH uint16 // untrimmed height as authored
	OffsetX   int16  // horizontal trim offset
	OffsetY   int16  // vertical trim offset
	Rotated   bool   // stored 90 degrees clockwise
}

// placeholderPage marks the magenta region returned for unknown names.
// High enough to never collide with a real page.
const placeholderPage = 0xFFFF

// Atlas is a TexturePacker sheet: page images plus named regions. Pages are
// loaded through the same Manager and released when the atlas is freed.
type Atlas struct {
	Base
	manager *Manager
	pages   []*Image
	regions map[string]Region
}

// NumPages returns the number of page images.
func (a *Atlas) NumPages() int { return len(a.pages) }

// Page returns page i, or nil when out of range.
func (a *Atlas) Page(i int) *Image {
	if i < 0 || i >= len(a.pages) {
		return nil
	}
	return a.pages[i]
}

// NumRegions returns the number of named regions.
func (a *Atlas) NumRegions() int { return len(a.regions) }

// Lookup returns the region registered under name.
func (a *Atlas) Lookup(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Region returns the named region. Unknown names log a warning and return a
// 1x1 magenta placeholder so callers still draw something visible.
func (a *Atlas) Region(name string) Region {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if a.manager != nil {
		a.manager.log.Warn("atlas region not found, using placeholder",
			zap.String("atlas", a.Descriptor().Name()), zap.String("region", name))
	}
	return Region{Page: placeholderPage, Width: 1, Height: 1, OriginalW: 1, OriginalH: 1}
}

// SubImage returns the page pixels covered by r. The placeholder region and
// regions on missing pages yield the magenta image.
func (a *Atlas) SubImage(r Region) *ebiten.Image {
	page := a.Page(int(r.Page))
	if page == nil || page.Ebiten() == nil {
		return ensureMagentaImage()
	}
	w, h := int(r.Width), int(r.Height)
	if r.Rotated {
		w, h = h, w
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.X)+w, int(r.Y)+h)
	return page.Ebiten().SubImage(rect).(*ebiten.Image)
}

// Free releases every page.
func (a *Atlas) Free() {
	for _, p := range a.pages {
		if p != nil && p.RefCount() > 0 && a.manager != nil {
			a.manager.Unload(p)
		}
	}
	a.pages = nil
	a.regions = nil
}

// magenta placeholder singleton (no sync.Once, single goroutine)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// AtlasLoader decodes TexturePacker JSON (hash and array formats). Page
// image names are resolved relative to the atlas path and loaded through
// the manager.
type AtlasLoader struct {
	m *Manager
}

// NewAtlasLoader creates a loader that loads pages through m.
func NewAtlasLoader(m *Manager) *AtlasLoader {
	return &AtlasLoader{m: m}
}

func (l *AtlasLoader) Load(a Asset, r io.Reader) error {
	atlas, ok := a.(*Atlas)
	if !ok {
		return fmt.Errorf("%w: atlas loader cannot populate %T", ErrUnsupportedAsset, a)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read atlas: %w", err)
	}
	sheet, err := parseAtlas(data)
	if err != nil {
		return err
	}

	atlas.manager = l.m
	atlas.regions = sheet.regions
	dir := path.Dir(a.Descriptor().Name())
	for _, name := range sheet.pages {
		page, err := Load[Image](l.m, ImageDescriptor{Path: path.Join(dir, name)})
		if err != nil {
			// Free releases the pages loaded so far.
			return fmt.Errorf("atlas page %s: %w", name, err)
		}
		atlas.pages = append(atlas.pages, page)
	}
	return nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

type jsonMeta struct {
	Image string `json:"image"`
}

type parsedAtlas struct {
	pages   []string
	regions map[string]Region
}

// parseAtlas detects the format from the top-level keys.
func parseAtlas(data []byte) (*parsedAtlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     jsonMeta        `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse atlas JSON: %w", err)
	}

	out := &parsedAtlas{regions: make(map[string]Region)}
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			if tex.Image == "" {
				return nil, fmt.Errorf("atlas texture %d has no image", i)
			}
			out.pages = append(out.pages, tex.Image)
			for name, f := range tex.Frames {
				out.regions[name] = frameToRegion(f, uint16(i))
			}
		}
	case probe.Frames != nil:
		if probe.Meta.Image == "" {
			return nil, fmt.Errorf("atlas meta has no image")
		}
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("parse atlas frames: %w", err)
		}
		out.pages = []string{probe.Meta.Image}
		for name, f := range frames {
			out.regions[name] = frameToRegion(f, 0)
		}
	default:
		return nil, fmt.Errorf("atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return out, nil
}

func frameToRegion(f jsonFrame, page uint16) Region {
	return Region{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}
