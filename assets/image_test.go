package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newImageManager(t *testing.T, files map[string][]byte) *Manager {
	t.Helper()
	m := NewManager(nil)
	m.RegisterLocator(NewMemoryLocator(files))
	RegisterDefaultLoaders(m)
	return m
}

func TestImageFromFileLocator(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hero.png"), encodePNG(t, 8, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(nil)
	m.RegisterLocator(NewFileLocator(dir))
	RegisterDefaultLoaders(m)

	img, err := Load[Image](m, ImageDescriptor{Path: "hero.png"})
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 8 || img.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", img.Width(), img.Height())
	}
	if img.Ebiten() == nil {
		t.Fatal("Ebiten image should be set")
	}

	again, _ := Load[Image](m, ImageDescriptor{Path: "hero.png"})
	if again != img || img.RefCount() != 2 {
		t.Errorf("second load: same=%v refs=%d", again == img, img.RefCount())
	}

	m.Unload(img)
	m.Unload(img)
	if img.Ebiten() != nil {
		t.Error("image should be deallocated at zero references")
	}
}

func TestImagePathSharesDescriptorEntry(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"sprite.png": encodePNG(t, 2, 2)})

	byPath, err := Load[Image](m, Path("sprite.png"))
	if err != nil {
		t.Fatal(err)
	}
	byDesc, err := Load[Image](m, ImageDescriptor{Path: "sprite.png"})
	if err != nil {
		t.Fatal(err)
	}
	if byPath != byDesc {
		t.Error("Path and ImageDescriptor should resolve to the same image")
	}
	if byPath.RefCount() != 2 {
		t.Errorf("RefCount = %d, want 2", byPath.RefCount())
	}
	if m.Len() != 1 {
		t.Errorf("cached = %d, want 1", m.Len())
	}
}

func TestImageRegionCrops(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"sheet.png": encodePNG(t, 16, 16)})
	full, err := Load[Image](m, ImageDescriptor{Path: "sheet.png"})
	if err != nil {
		t.Fatal(err)
	}
	part, err := Load[Image](m, ImageDescriptor{Path: "sheet.png", Region: image.Rect(4, 4, 12, 8)})
	if err != nil {
		t.Fatal(err)
	}
	if part == full {
		t.Error("a region is a distinct descriptor and must be a distinct asset")
	}
	if part.Width() != 8 || part.Height() != 4 {
		t.Errorf("region size = %dx%d, want 8x4", part.Width(), part.Height())
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestImageRegionOutOfBounds(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"sheet.png": encodePNG(t, 4, 4)})
	_, err := Load[Image](m, ImageDescriptor{Path: "sheet.png", Region: image.Rect(0, 0, 8, 8)})
	var lerr *LoaderError
	if !errors.As(err, &lerr) {
		t.Errorf("err = %v, want *LoaderError", err)
	}
}

func TestImageDecodeFailure(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"bad.png": []byte("not a png")})
	img, err := Load[Image](m, Path("bad.png"))
	if img != nil || err == nil {
		t.Fatalf("Load = %v, %v; want nil and an error", img, err)
	}
	if m.Len() != 0 {
		t.Error("failed image should not be cached")
	}
}

func TestImageLoaderRejectsOtherAssets(t *testing.T) {
	m := newImageManager(t, map[string][]byte{"a.png": encodePNG(t, 1, 1)})
	_, err := Load[Data](m, Path("a.png"))
	if !errors.Is(err, ErrUnsupportedAsset) {
		t.Errorf("err = %v, want ErrUnsupportedAsset", err)
	}
}

// --- Atlas ---

const hashAtlas = `{
	"frames": {
		"idle": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}, "sourceSize": {"w": 8, "h": 8}},
		"run":  {"frame": {"x": 8, "y": 0, "w": 4, "h": 8}, "rotated": true, "sourceSize": {"w": 8, "h": 4}}
	},
	"meta": {"image": "hero.png"}
}`

const arrayAtlas = `{
	"textures": [
		{"image": "p0.png", "frames": {"a": {"frame": {"x": 0, "y": 0, "w": 2, "h": 2}}}},
		{"image": "p1.png", "frames": {"b": {"frame": {"x": 1, "y": 1, "w": 3, "h": 3}}}}
	]
}`

func TestAtlasHashFormat(t *testing.T) {
	m := newImageManager(t, map[string][]byte{
		"chars/hero.json": []byte(hashAtlas),
		"chars/hero.png":  encodePNG(t, 16, 16),
	})
	a, err := Load[Atlas](m, AtlasDescriptor{Path: "chars/hero.json"})
	if err != nil {
		t.Fatal(err)
	}
	if a.NumPages() != 1 || a.NumRegions() != 2 {
		t.Fatalf("pages=%d regions=%d, want 1 and 2", a.NumPages(), a.NumRegions())
	}
	if a.Page(0).Descriptor() != (ImageDescriptor{Path: "chars/hero.png"}) {
		t.Errorf("page path = %v, want chars/hero.png", a.Page(0).Descriptor())
	}
	r, ok := a.Lookup("run")
	if !ok || !r.Rotated || r.X != 8 || r.Width != 4 {
		t.Errorf("run = %+v", r)
	}
	sub := a.SubImage(r)
	if b := sub.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("rotated sub-image = %v, want 8x4", b)
	}
	if a.Page(5) != nil {
		t.Error("out-of-range page should be nil")
	}
}

func TestAtlasArrayFormat(t *testing.T) {
	m := newImageManager(t, map[string][]byte{
		"sheet.json": []byte(arrayAtlas),
		"p0.png":     encodePNG(t, 4, 4),
		"p1.png":     encodePNG(t, 4, 4),
	})
	a, err := Load[Atlas](m, AtlasDescriptor{Path: "sheet.json"})
	if err != nil {
		t.Fatal(err)
	}
	if a.NumPages() != 2 {
		t.Fatalf("pages = %d, want 2", a.NumPages())
	}
	if r, _ := a.Lookup("b"); r.Page != 1 {
		t.Errorf("b page = %d, want 1", r.Page)
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want atlas plus two pages", m.Len())
	}
}

func TestAtlasMissingRegionPlaceholder(t *testing.T) {
	m := newImageManager(t, map[string][]byte{
		"hero.json": []byte(hashAtlas),
		"hero.png":  encodePNG(t, 16, 16),
	})
	a, err := Load[Atlas](m, AtlasDescriptor{Path: "hero.json"})
	if err != nil {
		t.Fatal(err)
	}
	r := a.Region("nope")
	if r.Page != placeholderPage || r.Width != 1 || r.Height != 1 {
		t.Errorf("placeholder = %+v", r)
	}
	if a.SubImage(r) != ensureMagentaImage() {
		t.Error("placeholder should draw the magenta image")
	}
}

func TestAtlasFreeUnloadsPages(t *testing.T) {
	m := newImageManager(t, map[string][]byte{
		"hero.json": []byte(hashAtlas),
		"hero.png":  encodePNG(t, 16, 16),
	})
	a, err := Load[Atlas](m, AtlasDescriptor{Path: "hero.json"})
	if err != nil {
		t.Fatal(err)
	}
	page := a.Page(0)
	m.Unload(a)
	if page.RefCount() != 0 || m.Len() != 0 {
		t.Errorf("page refs=%d cache len=%d, want 0 and 0", page.RefCount(), m.Len())
	}
}

func TestAtlasMissingPageFails(t *testing.T) {
	m := newImageManager(t, map[string][]byte{
		"sheet.json": []byte(arrayAtlas),
		"p0.png":     encodePNG(t, 4, 4),
	})
	if _, err := Load[Atlas](m, AtlasDescriptor{Path: "sheet.json"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0 after a failed atlas load", m.Len())
	}
}

func TestParseAtlasErrors(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"meta": {}}`,
		`{"frames": {}, "meta": {}}`,
		`{"textures": [{"frames": {}}]}`,
	} {
		if _, err := parseAtlas([]byte(data)); err == nil {
			t.Errorf("parseAtlas(%s) should fail", data)
		}
	}
}
