package grove

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/grove/assets"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newSpriteEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t)
	e.Assets().RegisterLocator(assets.NewMemoryLocator(map[string][]byte{
		"a.png": pngBytes(t, 8, 8),
		"b.png": pngBytes(t, 4, 2),
		"sheet.json": []byte(`{
			"frames": {"idle": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}}},
			"meta": {"image": "a.png"}
		}`),
	}))
	return e
}

func TestSpriteSetSprite(t *testing.T) {
	e := newSpriteEngine(t)
	s := NewSprite("s", e)
	if err := s.SetSprite("a.png"); err != nil {
		t.Fatal(err)
	}
	img := s.Image()
	if img == nil || img.Width() != 8 {
		t.Fatalf("image = %v", img)
	}
	if img.RefCount() != 1 {
		t.Errorf("RefCount = %d, want 1", img.RefCount())
	}

	// Same name: no reload, no extra reference.
	if err := s.SetSprite("a.png"); err != nil {
		t.Fatal(err)
	}
	if s.Image() != img || img.RefCount() != 1 {
		t.Errorf("same name changed state: refs=%d", img.RefCount())
	}

	// Different name releases the previous image.
	if err := s.SetSprite("b.png"); err != nil {
		t.Fatal(err)
	}
	if img.RefCount() != 0 {
		t.Errorf("old image refs = %d, want 0", img.RefCount())
	}
	if s.Image().Width() != 4 {
		t.Errorf("new image width = %d, want 4", s.Image().Width())
	}
	if e.Assets().Len() != 1 {
		t.Errorf("cache len = %d, want 1", e.Assets().Len())
	}
}

func TestSpriteSharedImage(t *testing.T) {
	e := newSpriteEngine(t)
	a := NewSprite("a", e)
	b := NewSprite("b", e)
	_ = a.SetSprite("a.png")
	_ = b.SetSprite("a.png")
	if a.Image() != b.Image() || a.Image().RefCount() != 2 {
		t.Fatal("sprites should share one cached image")
	}
	a.Dispose()
	if b.Image().RefCount() != 1 || e.Assets().Len() != 1 {
		t.Error("disposing one sprite should release only its reference")
	}
	b.Dispose()
	if e.Assets().Len() != 0 {
		t.Error("last sprite disposal should evict the image")
	}
}

func TestSpriteMissingImage(t *testing.T) {
	e := newSpriteEngine(t)
	s := NewSprite("s", e)
	_ = s.SetSprite("a.png")
	err := s.SetSprite("missing.png")
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if s.Image() != nil {
		t.Error("failed load should leave the sprite without an image")
	}
	if e.Assets().Len() != 0 {
		t.Error("previous image should have been released")
	}
	// Drawing with no image is a no-op.
	s.SendEnterTree()
	s.SendDraw(ebiten.NewImage(4, 4))
}

func TestSpriteWithoutEngine(t *testing.T) {
	s := NewSprite("s", nil)
	if err := s.SetSprite("a.png"); !errors.Is(err, ErrNoEngine) {
		t.Errorf("err = %v, want ErrNoEngine", err)
	}
	if err := s.SetRegion("sheet.json", "idle"); !errors.Is(err, ErrNoEngine) {
		t.Errorf("err = %v, want ErrNoEngine", err)
	}
}

func TestSpriteReadyEnablesDraw(t *testing.T) {
	e := newSpriteEngine(t)
	s := NewSprite("s", e)
	if s.HasDraw() {
		t.Error("draw should be disabled before ready")
	}
	e.SetRoot(s.Node)
	if !s.HasDraw() {
		t.Error("draw should be enabled after ready")
	}
}

func TestSpriteDraws(t *testing.T) {
	e := newSpriteEngine(t)
	s := NewSprite("s", e)
	_ = s.SetSprite("a.png")
	s.SetPosition(4, 4)
	s.Rotation = 0.5
	s.Flip(FlipHorizontal)
	e.SetRoot(s.Node)
	e.Draw(ebiten.NewImage(16, 16))
}

func TestSpriteFlip(t *testing.T) {
	s := NewSprite("s", nil)
	s.Flip(FlipHorizontal)
	s.Flip(FlipVertical)
	if s.Flipped() != FlipHorizontal|FlipVertical {
		t.Errorf("Flipped = %v, want both", s.Flipped())
	}
	s.SetFlip(FlipNone)
	if s.Flipped() != FlipNone {
		t.Errorf("Flipped = %v, want none", s.Flipped())
	}
}

func TestSpriteSetRegion(t *testing.T) {
	e := newSpriteEngine(t)
	s := NewSprite("s", e)
	if err := s.SetRegion("sheet.json", "idle"); err != nil {
		t.Fatal(err)
	}
	if s.Atlas() == nil || s.Image() != nil {
		t.Fatal("sprite should draw from the atlas")
	}
	if s.region.Width != 4 {
		t.Errorf("region = %+v", s.region)
	}
	if src := s.source(); src == nil || src.Bounds().Dx() != 4 {
		t.Errorf("source = %v", src)
	}

	// Unknown regions fall back to the placeholder without reloading.
	if err := s.SetRegion("sheet.json", "nope"); err != nil {
		t.Fatal(err)
	}
	if s.Atlas().RefCount() != 1 {
		t.Errorf("atlas refs = %d, want 1", s.Atlas().RefCount())
	}

	// Switching to a plain image releases the atlas and its page.
	_ = s.SetSprite("b.png")
	if e.Assets().Len() != 1 {
		t.Errorf("cache len = %d, want only b.png", e.Assets().Len())
	}
}

func TestGeoMMatchesAffine(t *testing.T) {
	m := [6]float64{0, 1, -1, 0, 10, 20}
	g := geoM(m)
	x, y := g.Apply(1, 0)
	wx, wy := transformPoint(m, 1, 0)
	assertNear(t, "x", x, wx)
	assertNear(t, "y", y, wy)
}
