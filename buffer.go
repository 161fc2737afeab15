package wheels

import "fmt"

// geometryBuffer is fixed-capacity storage for uploaded geometry. Its
// capacity is chosen at allocation and never changes; growing means
// allocating a new buffer.
type geometryBuffer[T any] struct {
	data    []T
	count   int
	version uint64
}

func (b *geometryBuffer[T]) Capacity() int {
	return len(b.data)
}

// Len returns the number of elements uploaded by the last SetData call.
func (b *geometryBuffer[T]) Len() int {
	return b.count
}

// Data returns the uploaded elements. The slice aliases the buffer and is
// valid until the next SetData.
func (b *geometryBuffer[T]) Data() []T {
	return b.data[:b.count]
}

// Version changes on every upload.
func (b *geometryBuffer[T]) Version() uint64 {
	return b.version
}

func (b *geometryBuffer[T]) setData(kind string, src []T) error {
	if len(src) > len(b.data) {
		return fmt.Errorf("wheels: %d elements exceed %s buffer capacity %d: %w",
			len(src), kind, len(b.data), ErrInvalidArgument)
	}
	b.count = copy(b.data, src)
	b.version++
	return nil
}

// VertexBuffer holds vertices for indexed drawing.
type VertexBuffer struct {
	geometryBuffer[Vertex]
}

func newVertexBuffer(capacity int) *VertexBuffer {
	return &VertexBuffer{geometryBuffer[Vertex]{data: make([]Vertex, capacity)}}
}

// SetData uploads src into the start of the buffer.
func (b *VertexBuffer) SetData(src []Vertex) error {
	return b.setData("vertex", src)
}

// IndexBuffer holds 32-bit triangle-list indices.
type IndexBuffer struct {
	geometryBuffer[uint32]
}

func newIndexBuffer(capacity int) *IndexBuffer {
	return &IndexBuffer{geometryBuffer[uint32]{data: make([]uint32, capacity)}}
}

// SetData uploads src into the start of the buffer.
func (b *IndexBuffer) SetData(src []uint32) error {
	return b.setData("index", src)
}
