package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageExtensions lists the discriminators ImageLoader can decode.
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"}

// Image is a decoded texture.
type Image struct {
	Base
	img           *ebiten.Image
	width, height int
}

// Ebiten returns the GPU image, or nil once freed.
func (i *Image) Ebiten() *ebiten.Image { return i.img }

// Width returns the decoded width in pixels.
func (i *Image) Width() int { return i.width }

// Height returns the decoded height in pixels.
func (i *Image) Height() int { return i.height }

// Free deallocates the GPU image.
func (i *Image) Free() {
	if i.img != nil {
		i.img.Deallocate()
		i.img = nil
	}
}

func (i *Image) set(src image.Image) {
	b := src.Bounds()
	i.width, i.height = b.Dx(), b.Dy()
	i.img = ebiten.NewImageFromImage(src)
}

// ImageLoader decodes PNG, JPEG, GIF, BMP and WebP streams into *Image.
// An ImageDescriptor with a non-empty Region crops the decoded image.
type ImageLoader struct{}

func (ImageLoader) Load(a Asset, r io.Reader) error {
	img, ok := a.(*Image)
	if !ok {
		return fmt.Errorf("%w: image loader cannot populate %T", ErrUnsupportedAsset, a)
	}
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if d, ok := a.Descriptor().(ImageDescriptor); ok && !d.Region.Empty() {
		if src, err = crop(src, d.Region); err != nil {
			return err
		}
	}
	img.set(src)
	return nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(src image.Image, region image.Rectangle) (image.Image, error) {
	if !region.In(src.Bounds()) {
		return nil, fmt.Errorf("region %v outside image bounds %v", region, src.Bounds())
	}
	si, ok := src.(subImager)
	if !ok {
		return nil, fmt.Errorf("image type %T cannot be cropped", src)
	}
	return si.SubImage(region), nil
}
