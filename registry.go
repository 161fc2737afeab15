package wheels

// TextureHandle identifies a Texture registered with a Backend.
type TextureHandle int

// FontHandle identifies a Font registered with a Backend. Font handles are
// numbered independently of texture handles.
type FontHandle int

// Registry is a dense, append-only table mapping small integer handles to
// resources. Handles are assigned from 0 in registration order and are never
// reused; there is no way to remove an entry.
type Registry[H ~int, T any] struct {
	kind  string
	items []T
}

// NewRegistry returns an empty registry. kind names the resource class in
// lookup errors.
func NewRegistry[H ~int, T any](kind string) *Registry[H, T] {
	return &Registry[H, T]{kind: kind}
}

// Register stores res and returns its handle. It never fails.
func (r *Registry[H, T]) Register(res T) H {
	h := H(len(r.items))
	r.items = append(r.items, res)
	return h
}

// Resolve returns the resource registered under h.
func (r *Registry[H, T]) Resolve(h H) (T, error) {
	if h < 0 || int(h) >= len(r.items) {
		var zero T
		return zero, &LookupError{Kind: r.kind, Handle: int(h)}
	}
	return r.items[h], nil
}

// Len returns the number of registered resources, which is also the next
// handle to be issued.
func (r *Registry[H, T]) Len() int {
	return len(r.items)
}
