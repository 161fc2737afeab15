package wheels

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DeviceConfig bounds the geometry buffers an EbitenDevice will allocate.
// Zero means unlimited.
type DeviceConfig struct {
	MaxVertices int
	MaxIndices  int
}

// EbitenDevice implements Device on top of an Ebitengine render target. State
// setters only record values; DrawIndexed converts the vertices its index
// range references and issues one DrawTriangles32 call.
type EbitenDevice struct {
	target *ebiten.Image
	cfg    DeviceConfig

	vb        *VertexBuffer
	ib        *IndexBuffer
	sampler   Sampler
	blend     ebiten.Blend
	depth     DepthStencilState
	raster    RasterizerState
	scissor   image.Rectangle
	scissorOn bool
	technique *Technique
	texture   *Texture

	// Converted vertices of the last drawn range, reused while the source
	// buffer, range, texture bounds and view are unchanged.
	verts      []ebiten.Vertex
	vertsValid bool
	vertsVB    *VertexBuffer
	vertsVer   uint64
	vertsLo    int
	vertsHi    int
	vertsSrc   image.Rectangle
	vertsView  Transform
	vertsDst   image.Point

	local []uint32 // rebased indices of the current draw
}

// NewEbitenDevice returns a device drawing into target. target may be nil
// and bound later with SetTarget.
func NewEbitenDevice(target *ebiten.Image, cfg DeviceConfig) *EbitenDevice {
	return &EbitenDevice{
		target: target,
		cfg:    cfg,
		blend:  ebiten.BlendSourceOver,
	}
}

// SetTarget rebinds the render target, typically to the screen image passed
// to Game.Draw each frame.
func (d *EbitenDevice) SetTarget(target *ebiten.Image) {
	d.target = target
}

// Target returns the current render target.
func (d *EbitenDevice) Target() *ebiten.Image {
	return d.target
}

// Viewport returns the bounds of the current render target, or the empty
// rectangle when no target is bound.
func (d *EbitenDevice) Viewport() image.Rectangle {
	if d.target == nil {
		return image.Rectangle{}
	}
	return d.target.Bounds()
}

// NewVertexBuffer allocates a vertex buffer of exactly capacity elements.
func (d *EbitenDevice) NewVertexBuffer(capacity int) (*VertexBuffer, error) {
	if err := checkAllocation("vertex", capacity, d.cfg.MaxVertices); err != nil {
		return nil, err
	}
	return newVertexBuffer(capacity), nil
}

// NewIndexBuffer allocates an index buffer of exactly capacity elements.
func (d *EbitenDevice) NewIndexBuffer(capacity int) (*IndexBuffer, error) {
	if err := checkAllocation("index", capacity, d.cfg.MaxIndices); err != nil {
		return nil, err
	}
	return newIndexBuffer(capacity), nil
}

func checkAllocation(kind string, capacity, limit int) error {
	if capacity < 0 || (limit > 0 && capacity > limit) {
		return &AllocationError{Buffer: kind, Count: capacity, Limit: limit}
	}
	return nil
}

func (d *EbitenDevice) SetVertexBuffer(vb *VertexBuffer) { d.vb = vb }

func (d *EbitenDevice) SetIndexBuffer(ib *IndexBuffer) { d.ib = ib }

func (d *EbitenDevice) SetSamplerState(s Sampler) { d.sampler = s }

func (d *EbitenDevice) SetBlendState(b ebiten.Blend) { d.blend = b }

func (d *EbitenDevice) SetDepthStencilState(s DepthStencilState) { d.depth = s }

func (d *EbitenDevice) SetRasterizerState(s RasterizerState) { d.raster = s }

func (d *EbitenDevice) SetScissorRect(rect image.Rectangle, enabled bool) {
	d.scissor = rect
	d.scissorOn = enabled
}

func (d *EbitenDevice) ApplyTechnique(t *Technique) { d.technique = t }

func (d *EbitenDevice) SetTexture(tex *Texture) { d.texture = tex }

// DrawIndexed draws primitiveCount triangles from the bound index buffer
// starting at startIndex, using the latched state.
func (d *EbitenDevice) DrawIndexed(startIndex, primitiveCount int) error {
	switch {
	case d.target == nil:
		return fmt.Errorf("wheels: draw with no render target: %w", ErrUnsupportedState)
	case d.vb == nil || d.ib == nil:
		return fmt.Errorf("wheels: draw with no geometry bound: %w", ErrUnsupportedState)
	case d.technique == nil:
		return fmt.Errorf("wheels: draw with no technique applied: %w", ErrUnsupportedState)
	case d.texture == nil:
		return fmt.Errorf("wheels: draw with no texture bound: %w", ErrUnsupportedState)
	case d.depth != DepthStencilNone:
		return fmt.Errorf("wheels: depth/stencil state %d: %w", d.depth, ErrUnsupportedState)
	case d.raster != CullNone:
		return fmt.Errorf("wheels: rasterizer state %d: %w", d.raster, ErrUnsupportedState)
	}

	end := startIndex + primitiveCount*3
	if startIndex < 0 || primitiveCount < 0 || end > d.ib.Len() {
		return fmt.Errorf("wheels: index range [%d, %d) outside uploaded %d indices: %w",
			startIndex, end, d.ib.Len(), ErrInvalidArgument)
	}
	if primitiveCount == 0 {
		return nil
	}
	indices := d.ib.Data()[startIndex:end]
	lo, hi, err := vertexRange(indices, d.vb.Len())
	if err != nil {
		return err
	}

	bounds := d.target.Bounds()
	clip, ok := d.clipRect(bounds)
	if !ok {
		return nil
	}
	dst := d.target
	if clip != bounds {
		dst = d.target.SubImage(clip).(*ebiten.Image)
	}

	src := d.texture.Image()
	verts := d.convertVertices(lo, hi, src.Bounds(), bounds.Min)
	dst.DrawTriangles32(verts, d.rebaseIndices(indices, lo), src, d.drawOptions())
	return nil
}

// vertexRange returns the half-open range of vertices referenced by indices.
// Every index must be below n.
func vertexRange(indices []uint32, n int) (lo, hi int, err error) {
	minIdx, maxIdx := uint32(n), uint32(0)
	for _, idx := range indices {
		if int(idx) >= n {
			return 0, 0, fmt.Errorf("wheels: index %d outside uploaded %d vertices: %w", idx, n, ErrInvalidArgument)
		}
		minIdx = min(minIdx, idx)
		maxIdx = max(maxIdx, idx)
	}
	return int(minIdx), int(maxIdx) + 1, nil
}

// clipRect returns the region of a target with the given bounds that a draw
// may touch. The scissor rectangle is relative to the target's top-left
// corner. ok is false when nothing remains visible.
func (d *EbitenDevice) clipRect(bounds image.Rectangle) (clip image.Rectangle, ok bool) {
	if !d.scissorOn {
		return bounds, !bounds.Empty()
	}
	clip = d.scissor.Add(bounds.Min).Intersect(bounds)
	return clip, !clip.Empty()
}

// drawOptions translates the latched sampler and blend state.
func (d *EbitenDevice) drawOptions() *ebiten.DrawTrianglesOptions {
	return &ebiten.DrawTrianglesOptions{
		Blend:          d.blend,
		Filter:         d.sampler.Filter,
		Address:        d.sampler.Address,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	}
}

// rebaseIndices returns indices shifted so that vertex lo becomes vertex 0.
func (d *EbitenDevice) rebaseIndices(indices []uint32, lo int) []uint32 {
	if lo == 0 {
		return indices
	}
	d.local = d.local[:0]
	for _, idx := range indices {
		d.local = append(d.local, idx-uint32(lo))
	}
	return d.local
}

// convertVertices returns vertices [lo, hi) of the bound buffer in Ebitengine
// form, reconverting only when an input changed.
func (d *EbitenDevice) convertVertices(lo, hi int, src image.Rectangle, origin image.Point) []ebiten.Vertex {
	view := d.technique.View
	if d.vertsValid && d.vertsVB == d.vb && d.vertsVer == d.vb.Version() &&
		d.vertsLo == lo && d.vertsHi == hi &&
		d.vertsSrc == src && d.vertsView == view && d.vertsDst == origin {
		return d.verts
	}

	data := d.vb.Data()[lo:hi]
	if cap(d.verts) < len(data) {
		d.verts = make([]ebiten.Vertex, len(data))
	}
	d.verts = d.verts[:len(data)]
	for i, v := range data {
		d.verts[i] = ebitenVertex(v, view, origin, src)
	}

	d.vertsValid = true
	d.vertsVB = d.vb
	d.vertsVer = d.vb.Version()
	d.vertsLo, d.vertsHi = lo, hi
	d.vertsSrc = src
	d.vertsView = view
	d.vertsDst = origin
	return d.verts
}

// Screenshot writes the current render target to dir as a PNG named after a
// timestamp and label, returning the file path. It must be called while the
// game loop is running.
func (d *EbitenDevice) Screenshot(dir, label string) (string, error) {
	if d.target == nil {
		return "", fmt.Errorf("wheels: screenshot: no render target")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("wheels: screenshot: mkdir %s: %w", dir, err)
	}

	bounds := d.target.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	d.target.ReadPixels(pixels)

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", time.Now().Format("20060102_150405"), sanitizeLabel(label)))
	if err := writePNG(path, unpremultiply(pixels, w, h)); err != nil {
		return "", fmt.Errorf("wheels: screenshot: %w", err)
	}
	return path, nil
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
