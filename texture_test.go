package wheels

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestTextureSize(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(64, 32), "hero")
	if tex.Width() != 64 || tex.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", tex.Width(), tex.Height())
	}
	if tex.Size() != (Point2{X: 64, Y: 32}) {
		t.Errorf("Size = %v", tex.Size())
	}
	if tex.Name() != "hero" {
		t.Errorf("Name = %q, want hero", tex.Name())
	}
}

func TestTextureSubImageSize(t *testing.T) {
	atlas := ebiten.NewImage(128, 128)
	sub := atlas.SubImage(image.Rect(16, 16, 48, 32)).(*ebiten.Image)
	tex := NewTexture(sub, "")
	if tex.Size() != (Point2{X: 32, Y: 16}) {
		t.Errorf("Size = %v, want 32x16", tex.Size())
	}
}

func TestLoadTexturePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 7))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tex, err := LoadTexture(&buf, "red")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Size() != (Point2{X: 5, Y: 7}) {
		t.Errorf("Size = %v, want 5x7", tex.Size())
	}
}

func TestLoadTextureInvalid(t *testing.T) {
	if _, err := LoadTexture(bytes.NewReader([]byte("not an image")), "bad"); err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestNewTextureFromImage(t *testing.T) {
	tex := NewTextureFromImage(image.NewRGBA(image.Rect(0, 0, 3, 4)), "")
	if tex.Size() != (Point2{X: 3, Y: 4}) {
		t.Errorf("Size = %v, want 3x4", tex.Size())
	}
}

func TestTextureReplaceSizeMismatch(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(8, 8), "t")
	if err := tex.Replace(image.NewRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Error("expected error for mismatched replacement size")
	}
	if err := tex.Replace(image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Errorf("Replace: %v", err)
	}
}

func TestNewWhiteTexture(t *testing.T) {
	tex := NewWhiteTexture()
	if tex.Size() != (Point2{X: 1, Y: 1}) {
		t.Errorf("Size = %v, want 1x1", tex.Size())
	}
}
