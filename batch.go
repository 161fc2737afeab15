package wheels

import (
	"fmt"

	"github.com/google/uuid"
)

// batch is a run of indices drawn with one GraphicsState.
type batch struct {
	state      GraphicsState
	startIndex int
	indexCount int
}

// Batcher accumulates geometry and graphics state and submits it to a
// Renderer as one BeginRender, a DrawBatch per state change, and EndRender.
// Consecutive geometry with identical state is coalesced into a single draw.
type Batcher struct {
	renderer Renderer

	names map[string]TextureHandle
	white TextureHandle
	// hasWhite is false until SetWhiteTexture; FillRect needs it.
	hasWhite bool

	state    GraphicsState
	vertices []Vertex
	indices  []uint32
	batches  []batch
}

// NewBatcher returns a Batcher drawing through r with DefaultGraphicsState.
func NewBatcher(r Renderer) *Batcher {
	return &Batcher{
		renderer: r,
		names:    make(map[string]TextureHandle),
		state:    DefaultGraphicsState,
	}
}

// Renderer returns the renderer the batcher flushes to.
func (b *Batcher) Renderer() Renderer {
	return b.renderer
}

// RegisterTexture binds name to a texture handle and returns the name. An
// empty name is replaced with a generated UUID. Re-registering a name rebinds it.
func (b *Batcher) RegisterTexture(name string, h TextureHandle) string {
	if name == "" {
		name = uuid.NewString()
	}
	b.names[name] = h
	return name
}

// TextureHandle returns the handle bound to name.
func (b *Batcher) TextureHandle(name string) (TextureHandle, bool) {
	h, ok := b.names[name]
	return h, ok
}

// SetWhiteTexture sets the opaque white texture used by FillRect.
func (b *Batcher) SetWhiteTexture(h TextureHandle) {
	b.white = h
	b.hasWhite = true
}

// State returns the state applied to geometry added from now on.
func (b *Batcher) State() GraphicsState {
	return b.state
}

// SetState replaces the whole state for subsequent geometry.
func (b *Batcher) SetState(s GraphicsState) {
	b.state = s
}

// SetTexture selects the texture for subsequent geometry.
func (b *Batcher) SetTexture(h TextureHandle) {
	b.state.Texture = h
}

// SetTextureByName selects a texture registered with RegisterTexture.
func (b *Batcher) SetTextureByName(name string) error {
	h, ok := b.names[name]
	if !ok {
		return fmt.Errorf("wheels: no texture named %q: %w", name, ErrUnknownHandle)
	}
	b.state.Texture = h
	return nil
}

// SetSampler selects the sampler mode for subsequent geometry.
func (b *Batcher) SetSampler(s SamplerState) {
	b.state.Sampler = s
}

// SetBlend selects the blend mode for subsequent geometry.
func (b *Batcher) SetBlend(m BlendState) {
	b.state.Blend = m
}

// SetScissor clips subsequent geometry to r, in target pixels.
func (b *Batcher) SetScissor(r Rect) {
	b.state.UseScissorRect = true
	b.state.ScissorRect = r
}

// ClearScissor disables clipping for subsequent geometry.
func (b *Batcher) ClearScissor() {
	b.state.UseScissorRect = false
	b.state.ScissorRect = Rect{}
}

// PendingBatches returns the number of draws the next Flush will issue.
func (b *Batcher) PendingBatches() int {
	return len(b.batches)
}

// PendingVertices returns the number of vertices waiting to be flushed.
func (b *Batcher) PendingVertices() int {
	return len(b.vertices)
}

// DrawTriangles adds a triangle list with the current state. Indices are
// relative to verts.
func (b *Batcher) DrawTriangles(verts []Vertex, inds []uint32) {
	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices, verts...)
	for _, i := range inds {
		b.indices = append(b.indices, base+i)
	}
	b.extend(len(inds))
}

// DrawQuad adds an axis-aligned quad covering dst, sampling the normalized
// texture rectangle uv.
func (b *Batcher) DrawQuad(dst RectF, uv RectF, c Color) {
	b.appendQuad(
		[4]Vec2{
			{dst.X, dst.Y},
			{dst.X + dst.Width, dst.Y},
			{dst.X, dst.Y + dst.Height},
			{dst.X + dst.Width, dst.Y + dst.Height},
		},
		[4]Vec2{
			{uv.X, uv.Y},
			{uv.X + uv.Width, uv.Y},
			{uv.X, uv.Y + uv.Height},
			{uv.X + uv.Width, uv.Y + uv.Height},
		},
		c,
	)
}

// DrawTexture adds the whole current texture at its pixel size with its
// top-left corner at pos.
func (b *Batcher) DrawTexture(pos Vec2, c Color) error {
	size, err := b.renderer.TextureSize(b.state.Texture)
	if err != nil {
		return err
	}
	b.DrawQuad(RectF{X: pos.X, Y: pos.Y, Width: float64(size.X), Height: float64(size.Y)}, RectF{Width: 1, Height: 1}, c)
	return nil
}

// FillRect adds a solid rectangle using the white texture.
func (b *Batcher) FillRect(r RectF, c Color) error {
	if !b.hasWhite {
		return fmt.Errorf("wheels: FillRect needs a white texture, see SetWhiteTexture")
	}
	prev := b.state.Texture
	b.state.Texture = b.white
	b.DrawQuad(r, RectF{Width: 1, Height: 1}, c)
	b.state.Texture = prev
	return nil
}

// DrawRegion adds an atlas region placed by m. The region's texture becomes
// the current texture.
func (b *Batcher) DrawRegion(r TextureRegion, m Transform, c Color) error {
	size, err := b.renderer.TextureSize(r.Texture)
	if err != nil {
		return err
	}
	b.state.Texture = r.Texture

	// Trim offset shifts the local origin. Visual dimensions are
	// (r.Width, r.Height) whether or not the region is rotated.
	ox := float64(r.OffsetX)
	oy := float64(r.OffsetY)
	w := float64(r.Width)
	h := float64(r.Height)

	// 4 local positions: TL, TR, BL, BR
	var pos [4]Vec2
	lx := [4]float64{ox, ox + w, ox, ox + w}
	ly := [4]float64{oy, oy, oy + h, oy + h}
	for i := range pos {
		pos[i].X, pos[i].Y = m.Apply(lx[i], ly[i])
	}

	// Source corners in atlas pixels.
	var sx, sy [4]float64
	rx := float64(r.X)
	ry := float64(r.Y)
	if r.Rotated {
		// Stored 90° clockwise with stored width r.Height and height r.Width.
		//   Visual TL → atlas (r.X + r.Height, r.Y)
		//   Visual TR → atlas (r.X + r.Height, r.Y + r.Width)
		//   Visual BL → atlas (r.X, r.Y)
		//   Visual BR → atlas (r.X, r.Y + r.Width)
		sx = [4]float64{rx + h, rx + h, rx, rx}
		sy = [4]float64{ry, ry + w, ry, ry + w}
	} else {
		sx = [4]float64{rx, rx + w, rx, rx + w}
		sy = [4]float64{ry, ry, ry + h, ry + h}
	}

	var uv [4]Vec2
	tw, th := float64(size.X), float64(size.Y)
	for i := range uv {
		if tw > 0 && th > 0 {
			uv[i] = Vec2{sx[i] / tw, sy[i] / th}
		}
	}

	b.appendQuad(pos, uv, c)
	return nil
}

// MeasureText measures s with a registered font.
func (b *Batcher) MeasureText(s string, font FontHandle) (Vec2, error) {
	return b.renderer.TextSize(s, font)
}

// Flush submits all pending geometry and resets the batcher for the next
// frame. The current state is kept. On error the pending geometry is dropped.
func (b *Batcher) Flush() error {
	if len(b.batches) == 0 {
		b.reset()
		return nil
	}
	defer b.reset()

	if err := b.renderer.BeginRender(b.vertices, b.indices, len(b.vertices), len(b.indices)); err != nil {
		return err
	}
	for i, bt := range b.batches {
		if err := b.renderer.DrawBatch(bt.state, bt.startIndex, bt.indexCount, i); err != nil {
			b.renderer.EndRender()
			return fmt.Errorf("wheels: batch %d: %w", i, err)
		}
	}
	b.renderer.EndRender()
	return nil
}

func (b *Batcher) reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.batches = b.batches[:0]
}

// appendQuad appends 4 vertices (TL, TR, BL, BR) and 6 indices.
func (b *Batcher) appendQuad(pos, uv [4]Vec2, c Color) {
	base := uint32(len(b.vertices))
	for i := 0; i < 4; i++ {
		b.vertices = append(b.vertices, Vertex{Position: pos[i], Color: c, UV: uv[i]})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	b.indices = append(b.indices,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	b.extend(6)
}

// extend records n new indices under the current state, growing the last
// batch when its state matches.
func (b *Batcher) extend(n int) {
	if n == 0 {
		return
	}
	if last := len(b.batches) - 1; last >= 0 && b.batches[last].state == b.state {
		b.batches[last].indexCount += n
		return
	}
	b.batches = append(b.batches, batch{
		state:      b.state,
		startIndex: len(b.indices) - n,
		indexCount: n,
	})
}
