package wheels

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Device is the GPU context the Backend drives. Every setter latches one piece
// of state that DrawIndexed consumes; nothing is drawn until DrawIndexed.
type Device interface {
	// Viewport returns the current render target bounds.
	Viewport() image.Rectangle

	NewVertexBuffer(capacity int) (*VertexBuffer, error)
	NewIndexBuffer(capacity int) (*IndexBuffer, error)
	SetVertexBuffer(vb *VertexBuffer)
	SetIndexBuffer(ib *IndexBuffer)

	SetSamplerState(s Sampler)
	SetBlendState(b ebiten.Blend)
	SetDepthStencilState(s DepthStencilState)
	SetRasterizerState(s RasterizerState)
	// SetScissorRect sets the clip rectangle, relative to the target origin.
	// When enabled is false the rectangle is ignored.
	SetScissorRect(rect image.Rectangle, enabled bool)
	ApplyTechnique(t *Technique)
	SetTexture(tex *Texture)

	// DrawIndexed draws primitiveCount triangles starting at startIndex in the
	// bound index buffer.
	DrawIndexed(startIndex, primitiveCount int) error
}

// Sampler is a concrete filter and address mode pair.
type Sampler struct {
	Filter  ebiten.Filter
	Address ebiten.Address
}

// DepthStencilState selects depth and stencil testing.
type DepthStencilState uint8

const (
	// DepthStencilNone disables depth and stencil testing.
	DepthStencilNone DepthStencilState = iota
	DepthStencilDefault
)

// RasterizerState selects triangle culling.
type RasterizerState uint8

const (
	// CullNone rasterizes both windings.
	CullNone RasterizerState = iota
	CullCounterClockwise
)

// Technique is the fixed sprite shader pass: it transforms positions by View
// and samples the bound texture modulated by straight-alpha vertex color.
type Technique struct {
	Name string
	View Transform
}

// NewSpriteTechnique returns the sprite technique with an identity view.
func NewSpriteTechnique() *Technique {
	return &Technique{Name: "sprite", View: IdentityTransform}
}
