package wheels

import (
	"fmt"
	"strings"
)

// Renderer is the contract a batching layer drives. Geometry is submitted
// once per batch with BeginRender, drawn in one or more DrawBatch calls, and
// completed with EndRender.
type Renderer interface {
	TextureSize(h TextureHandle) (Point2, error)
	TextSize(text string, font FontHandle) (Vec2, error)
	Viewport() Rect

	BeginRender(vertices []Vertex, indices []uint32, vertexCount, indexCount int) error
	DrawBatch(state GraphicsState, startIndex, indexCount int, batchTag any) error
	EndRender()
}

// GrowthPolicy decides the new capacity of a geometry buffer that is too small.
type GrowthPolicy uint8

const (
	// GrowthExact reallocates to exactly the requested count.
	GrowthExact GrowthPolicy = iota
	// GrowthDouble reallocates to the larger of the requested count and twice
	// the current capacity.
	GrowthDouble
)

func (g GrowthPolicy) String() string {
	switch g {
	case GrowthExact:
		return "exact"
	case GrowthDouble:
		return "double"
	default:
		return fmt.Sprintf("GrowthPolicy(%d)", uint8(g))
	}
}

// ParseGrowthPolicy parses "exact" or "double".
func ParseGrowthPolicy(s string) (GrowthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return GrowthExact, nil
	case "double":
		return GrowthDouble, nil
	default:
		return 0, fmt.Errorf("wheels: unknown growth policy %q: %w", s, ErrInvalidArgument)
	}
}

func (g GrowthPolicy) grow(current, requested int) int {
	if g == GrowthDouble {
		return max(requested, 2*current)
	}
	return requested
}

// BackendOptions configures a Backend.
type BackendOptions struct {
	Growth GrowthPolicy
	// Debug logs buffer growth and per-frame stats at debug level.
	Debug bool
}

// Backend implements Renderer on a Device. It owns the texture and font
// registries and the geometry buffers. A Backend is driven from a single
// render thread and has no internal locking.
type Backend struct {
	device    Device
	textures  *Registry[TextureHandle, *Texture]
	fonts     *Registry[FontHandle, Font]
	vb        *VertexBuffer
	ib        *IndexBuffer
	technique *Technique
	view      *View

	growth GrowthPolicy
	debug  bool
	stats  FrameStats
}

var _ Renderer = (*Backend)(nil)

// NewBackend returns a Backend drawing through device, which must not be nil.
func NewBackend(device Device, opts BackendOptions) *Backend {
	if device == nil {
		panic("wheels: NewBackend requires a non-nil Device")
	}
	return &Backend{
		device:    device,
		textures:  NewRegistry[TextureHandle, *Texture]("texture"),
		fonts:     NewRegistry[FontHandle, Font]("font"),
		technique: NewSpriteTechnique(),
		growth:    opts.Growth,
		debug:     opts.Debug,
	}
}

// Device returns the device the backend draws through.
func (b *Backend) Device() Device {
	return b.device
}

// AddTexture registers tex and returns its handle.
func (b *Backend) AddTexture(tex *Texture) TextureHandle {
	return b.textures.Register(tex)
}

// AddFont registers f and returns its handle.
func (b *Backend) AddFont(f Font) FontHandle {
	return b.fonts.Register(f)
}

// Texture resolves a texture handle.
func (b *Backend) Texture(h TextureHandle) (*Texture, error) {
	return b.textures.Resolve(h)
}

// Font resolves a font handle.
func (b *Backend) Font(h FontHandle) (Font, error) {
	return b.fonts.Resolve(h)
}

// SetView sets the camera whose matrix transforms every draw. nil draws in
// target pixel coordinates.
func (b *Backend) SetView(v *View) {
	b.view = v
	if v == nil {
		b.technique.View = IdentityTransform
	}
}

// View returns the camera set by SetView, or nil.
func (b *Backend) View() *View {
	return b.view
}

// TextureSize returns the pixel size of a registered texture.
func (b *Backend) TextureSize(h TextureHandle) (Point2, error) {
	tex, err := b.textures.Resolve(h)
	if err != nil {
		return Point2{}, err
	}
	return tex.Size(), nil
}

// TextSize measures text with a registered font.
func (b *Backend) TextSize(text string, font FontHandle) (Vec2, error) {
	f, err := b.fonts.Resolve(font)
	if err != nil {
		return Vec2{}, err
	}
	w, h := f.MeasureString(text)
	return Vec2{X: w, Y: h}, nil
}

// Viewport returns the device's current render target bounds.
func (b *Backend) Viewport() Rect {
	return RectFromImage(b.device.Viewport())
}

// VertexCapacity returns the vertex buffer capacity, 0 before the first
// BeginRender.
func (b *Backend) VertexCapacity() int {
	if b.vb == nil {
		return 0
	}
	return b.vb.Capacity()
}

// IndexCapacity returns the index buffer capacity, 0 before the first
// BeginRender.
func (b *Backend) IndexCapacity() int {
	if b.ib == nil {
		return 0
	}
	return b.ib.Capacity()
}

// Stats returns the counters for the current or most recent frame.
func (b *Backend) Stats() FrameStats {
	return b.stats
}

// BeginRender uploads the first vertexCount vertices and indexCount indices,
// growing the geometry buffers if needed, and binds them for DrawBatch.
// Allocation failures are returned unchanged.
func (b *Backend) BeginRender(vertices []Vertex, indices []uint32, vertexCount, indexCount int) error {
	if vertexCount < 0 || vertexCount > len(vertices) {
		return fmt.Errorf("wheels: vertex count %d outside [0, %d]: %w", vertexCount, len(vertices), ErrInvalidArgument)
	}
	if indexCount < 0 || indexCount > len(indices) {
		return fmt.Errorf("wheels: index count %d outside [0, %d]: %w", indexCount, len(indices), ErrInvalidArgument)
	}

	b.stats = FrameStats{}

	// Both buffers are allocated before either replaces the bound one, so a
	// failed index allocation leaves the previous geometry intact.
	vb, ib := b.vb, b.ib
	var reallocs int
	if vb == nil || vb.Capacity() < vertexCount {
		n := b.growth.grow(b.VertexCapacity(), vertexCount)
		var err error
		if vb, err = b.device.NewVertexBuffer(n); err != nil {
			return err
		}
		reallocs++
	}
	if ib == nil || ib.Capacity() < indexCount {
		n := b.growth.grow(b.IndexCapacity(), indexCount)
		var err error
		if ib, err = b.device.NewIndexBuffer(n); err != nil {
			return err
		}
		reallocs++
	}
	if vb != b.vb {
		b.logGrowth("vertex", b.VertexCapacity(), vb.Capacity())
		b.vb = vb
	}
	if ib != b.ib {
		b.logGrowth("index", b.IndexCapacity(), ib.Capacity())
		b.ib = ib
	}
	b.stats.Reallocations = reallocs

	if err := b.vb.SetData(vertices[:vertexCount]); err != nil {
		return err
	}
	if err := b.ib.SetData(indices[:indexCount]); err != nil {
		return err
	}
	b.device.SetVertexBuffer(b.vb)
	b.device.SetIndexBuffer(b.ib)

	b.stats.VerticesUploaded = vertexCount
	b.stats.IndicesUploaded = indexCount
	return nil
}

// DrawBatch applies state and draws indexCount indices starting at
// startIndex of the bound index buffer as a triangle list. batchTag is not
// interpreted.
func (b *Backend) DrawBatch(state GraphicsState, startIndex, indexCount int, batchTag any) error {
	if err := b.applyState(state); err != nil {
		return err
	}
	if err := b.device.DrawIndexed(startIndex, indexCount/3); err != nil {
		return err
	}
	b.stats.DrawCalls++
	b.stats.Triangles += indexCount / 3
	return nil
}

// EndRender completes the batch.
func (b *Backend) EndRender() {
	if b.debug {
		Logger().Debug("frame", b.stats.keyvals()...)
	}
}

func (b *Backend) logGrowth(kind string, from, to int) {
	if b.debug {
		Logger().Debug("growing geometry buffer", "buffer", kind, "from", from, "to", to)
	}
}
