package wheels

import "fmt"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Vertex colors are submitted in straight alpha; Ebitengine premultiplies
// during the draw.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default vertex tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, texture coordinates and measured
// text extents.
type Vec2 struct {
	X, Y float64
}

// Point2 is an integer 2D point, used for texture sizes in pixels.
type Point2 struct {
	X, Y int
}

// Rect is an integer pixel rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the largest rectangle contained by both r and other.
// Disjoint rectangles yield an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// RectF is an axis-aligned rectangle in floating point coordinates, used for
// draw destinations in the Batcher.
type RectF struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r RectF) Intersects(other RectF) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Vertex is one record of the geometry handed to BeginRender.
// UV is a normalized texture coordinate: (0, 0) is the top-left texel of the
// bound texture and (1, 1) its bottom-right corner.
type Vertex struct {
	Position Vec2
	Color    Color
	UV       Vec2
}

// SamplerState selects texture filtering and wrap behavior for a draw.
type SamplerState uint8

const (
	SamplerPointWrap        SamplerState = iota // nearest filtering, repeat
	SamplerPointClamp                           // nearest filtering, clamp
	SamplerLinearWrap                           // bilinear filtering, repeat
	SamplerLinearClamp                          // bilinear filtering, clamp
	SamplerAnisotropicWrap                      // anisotropic filtering, repeat
	SamplerAnisotropicClamp                     // anisotropic filtering, clamp
)

func (s SamplerState) String() string {
	switch s {
	case SamplerPointWrap:
		return "PointWrap"
	case SamplerPointClamp:
		return "PointClamp"
	case SamplerLinearWrap:
		return "LinearWrap"
	case SamplerLinearClamp:
		return "LinearClamp"
	case SamplerAnisotropicWrap:
		return "AnisotropicWrap"
	case SamplerAnisotropicClamp:
		return "AnisotropicClamp"
	default:
		return fmt.Sprintf("SamplerState(%d)", uint8(s))
	}
}

// BlendState selects the compositing operation for a draw.
type BlendState uint8

const (
	BlendAlpha  BlendState = iota // source-over alpha blending
	BlendOpaque                   // opaque copy, no blending
)

func (b BlendState) String() string {
	switch b {
	case BlendAlpha:
		return "AlphaBlend"
	case BlendOpaque:
		return "Opaque"
	default:
		return fmt.Sprintf("BlendState(%d)", uint8(b))
	}
}

// GraphicsState is the per-draw state descriptor built by a batcher.
// It is consumed by DrawBatch and never retained.
type GraphicsState struct {
	Texture        TextureHandle
	Sampler        SamplerState
	Blend          BlendState
	UseScissorRect bool
	ScissorRect    Rect
}

// DefaultGraphicsState draws texture 0 with linear clamped sampling, alpha
// blending and no scissor.
var DefaultGraphicsState = GraphicsState{
	Sampler: SamplerLinearClamp,
	Blend:   BlendAlpha,
}
