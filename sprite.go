package grove

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/grove/assets"
	"go.uber.org/zap"
)

// FlipMode mirrors a sprite. Values combine with bitwise OR.
type FlipMode uint8

const (
	FlipNone       FlipMode = 0
	FlipHorizontal FlipMode = 1 << (iota - 1) // mirror across the vertical axis
	FlipVertical                              // mirror across the horizontal axis
)

// Sprite draws an image centered on its absolute position, rotated around
// that point. The image is loaded through the engine's asset manager and
// released when the sprite is disposed or its image replaced. A sprite with
// no image draws nothing.
type Sprite struct {
	*Position

	image  *assets.Image
	atlas  *assets.Atlas
	region assets.Region
	flip   FlipMode
}

// NewSprite creates a detached sprite with no image. Drawing is enabled
// once the sprite is ready.
func NewSprite(name string, e *Engine) *Sprite {
	s := &Sprite{Position: &Position{}}
	initPosition(s.Position, name, e, spriteMRO, s)
	s.OnReady = s.ready
	s.OnDraw = s.draw
	s.OnDispose = s.release
	return s
}

func (s *Sprite) ready() {
	s.SetDraw(true)
}

// SetSprite shows the image named name. Calling it again with the current
// name is a no-op; a different name releases the previous image. On
// failure the sprite is left without an image and the error is returned.
func (s *Sprite) SetSprite(name string) error {
	if s.image != nil && s.atlas == nil && s.image.Descriptor().Name() == name {
		return nil
	}
	if s.manager() == nil {
		return ErrNoEngine
	}
	img, err := assets.Load[assets.Image](s.manager(), assets.ImageDescriptor{Path: name})
	s.release()
	if err != nil {
		s.logFailure("sprite image unavailable", name, err)
		return err
	}
	s.image = img
	return nil
}

// SetRegion shows a named region of the atlas at atlasPath.
func (s *Sprite) SetRegion(atlasPath, region string) error {
	if s.atlas != nil && s.atlas.Descriptor().Name() == atlasPath {
		s.region = s.atlas.Region(region)
		return nil
	}
	if s.manager() == nil {
		return ErrNoEngine
	}
	atlas, err := assets.Load[assets.Atlas](s.manager(), assets.AtlasDescriptor{Path: atlasPath})
	s.release()
	if err != nil {
		s.logFailure("sprite atlas unavailable", atlasPath, err)
		return err
	}
	s.atlas = atlas
	s.region = atlas.Region(region)
	return nil
}

// Image returns the sprite's image, or nil when it has none or draws from
// an atlas.
func (s *Sprite) Image() *assets.Image {
	return s.image
}

// Atlas returns the atlas the sprite draws from, or nil.
func (s *Sprite) Atlas() *assets.Atlas {
	return s.atlas
}

// Flip adds f to the sprite's flip flags.
func (s *Sprite) Flip(f FlipMode) {
	s.flip |= f
}

// SetFlip replaces the sprite's flip flags.
func (s *Sprite) SetFlip(f FlipMode) {
	s.flip = f
}

// Flipped returns the current flip flags.
func (s *Sprite) Flipped() FlipMode {
	return s.flip
}

// source returns the pixels to draw, or nil.
func (s *Sprite) source() *ebiten.Image {
	switch {
	case s.atlas != nil:
		return s.atlas.SubImage(s.region)
	case s.image != nil:
		return s.image.Ebiten()
	}
	return nil
}

func (s *Sprite) draw(screen *ebiten.Image) {
	src := s.source()
	if src == nil || screen == nil {
		return
	}
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-w/2, -h/2)
	if s.atlas != nil && s.region.Rotated {
		op.GeoM.Rotate(-math.Pi / 2)
	}
	fx, fy := 1.0, 1.0
	if s.flip&FlipHorizontal != 0 {
		fx = -1
	}
	if s.flip&FlipVertical != 0 {
		fy = -1
	}
	op.GeoM.Scale(fx, fy)
	m := s.WorldTransform()
	op.GeoM.Concat(geoM(m))
	screen.DrawImage(src, &op)
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// release unloads whatever the sprite currently shows.
func (s *Sprite) release() {
	m := s.manager()
	if s.image != nil {
		if m != nil {
			m.Unload(s.image)
		}
		s.image = nil
	}
	if s.atlas != nil {
		if m != nil {
			m.Unload(s.atlas)
		}
		s.atlas = nil
		s.region = assets.Region{}
	}
}

func (s *Sprite) manager() *assets.Manager {
	if s.engine == nil {
		return nil
	}
	return s.engine.assets
}

func (s *Sprite) logFailure(msg, name string, err error) {
	if s.engine == nil {
		return
	}
	s.engine.log.Warn(msg, zap.String("node", s.Name), zap.String("asset", name), zap.Error(err))
}
