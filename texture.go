package wheels

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoding for LoadTexture
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/draw"
)

// Texture is a GPU-resident image that can be bound for drawing.
type Texture struct {
	image *ebiten.Image
	name  string
}

// NewTexture wraps an existing Ebitengine image. The image may be a
// sub-image; its bounds define the texture's extent.
func NewTexture(img *ebiten.Image, name string) *Texture {
	return &Texture{image: img, name: name}
}

// NewTextureFromImage uploads a decoded image to the GPU.
func NewTextureFromImage(img image.Image, name string) *Texture {
	return &Texture{image: ebiten.NewImageFromImage(img), name: name}
}

// NewWhiteTexture returns a 1x1 opaque white texture, the source for
// solid-color geometry.
func NewWhiteTexture() *Texture {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return &Texture{image: img, name: "white"}
}

// LoadTexture decodes an image (PNG, JPEG or GIF) from r and uploads it.
func LoadTexture(r io.Reader, name string) (*Texture, error) {
	img, _, err := ebitenutil.NewImageFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("wheels: failed to load texture %q: %w", name, err)
	}
	return &Texture{image: img, name: name}, nil
}

// Image returns the underlying *ebiten.Image.
func (t *Texture) Image() *ebiten.Image {
	return t.image
}

// Name returns the name given at construction, or "" if none.
func (t *Texture) Name() string {
	return t.name
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.image.Bounds().Dx()
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.image.Bounds().Dy()
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() Point2 {
	b := t.image.Bounds()
	return Point2{X: b.Dx(), Y: b.Dy()}
}

// Replace overwrites the texture's pixels with img in place, so existing
// handles keep resolving to this Texture. img must match the texture size.
func (t *Texture) Replace(img image.Image) error {
	b := t.image.Bounds()
	if img.Bounds().Dx() != b.Dx() || img.Bounds().Dy() != b.Dy() {
		return fmt.Errorf("wheels: texture %q is %dx%d, replacement is %dx%d",
			t.name, b.Dx(), b.Dy(), img.Bounds().Dx(), img.Bounds().Dy())
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	t.image.WritePixels(rgba.Pix)
	return nil
}
