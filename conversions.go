package wheels

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RectFromImage converts an image.Rectangle to a Rect.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ImageRect converts r to an image.Rectangle.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// RectF converts r to floating point.
func (r Rect) RectF() RectF {
	return RectF{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// RGBA implements color.Color, returning alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	cr := clamp01(c.R)
	cg := clamp01(c.G)
	cb := clamp01(c.B)
	ca := clamp01(c.A)
	return uint32(cr*ca*0xffff + 0.5), uint32(cg*ca*0xffff + 0.5), uint32(cb*ca*0xffff + 0.5), uint32(ca*0xffff + 0.5)
}

// ColorFromColor converts any color.Color to a straight-alpha Color.
func ColorFromColor(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// ColorScale converts c to an Ebitengine color scale.
func (c Color) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.SetR(float32(c.R * c.A))
	cs.SetG(float32(c.G * c.A))
	cs.SetB(float32(c.B * c.A))
	cs.SetA(float32(c.A))
	return cs
}

// Vec2 converts p to floating point.
func (p Point2) Vec2() Vec2 {
	return Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// ImagePoint converts p to an image.Point.
func (p Point2) ImagePoint() image.Point {
	return image.Pt(p.X, p.Y)
}

// Point2 rounds v down to integer coordinates.
func (v Vec2) Point2() Point2 {
	return Point2{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// ebitenVertex converts v for DrawTriangles32. The position is transformed by
// view and offset by origin; the normalized UV is mapped onto src, the bound
// texture's bounds in its own image coordinates.
func ebitenVertex(v Vertex, view Transform, origin image.Point, src image.Rectangle) ebiten.Vertex {
	x, y := view.Apply(v.Position.X, v.Position.Y)
	return ebiten.Vertex{
		DstX:   float32(x + float64(origin.X)),
		DstY:   float32(y + float64(origin.Y)),
		SrcX:   float32(float64(src.Min.X) + v.UV.X*float64(src.Dx())),
		SrcY:   float32(float64(src.Min.Y) + v.UV.Y*float64(src.Dy())),
		ColorR: float32(v.Color.R),
		ColorG: float32(v.Color.G),
		ColorB: float32(v.Color.B),
		ColorA: float32(v.Color.A),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
