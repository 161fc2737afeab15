package wheels

import (
	"errors"
	"testing"
)

func TestRegistryHandlesIncreaseFromZero(t *testing.T) {
	r := NewRegistry[TextureHandle, *Texture]("texture")
	for i := 0; i < 10; i++ {
		h := r.Register(newTestTexture(1, 1))
		if int(h) != i {
			t.Fatalf("handle %d = %d, want %d", i, h, i)
		}
	}
	if r.Len() != 10 {
		t.Errorf("Len = %d, want 10", r.Len())
	}
}

func TestRegistryResolveIdentity(t *testing.T) {
	r := NewRegistry[TextureHandle, *Texture]("texture")
	texs := make([]*Texture, 5)
	handles := make([]TextureHandle, 5)
	for i := range texs {
		texs[i] = newTestTexture(i+1, i+1)
		handles[i] = r.Register(texs[i])
	}
	for i, h := range handles {
		got, err := r.Resolve(h)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", h, err)
		}
		if got != texs[i] {
			t.Errorf("Resolve(%d) returned a different object", h)
		}
	}
}

func TestRegistrySameResourceTwice(t *testing.T) {
	r := NewRegistry[FontHandle, Font]("font")
	f := DefaultFont()
	a := r.Register(f)
	b := r.Register(f)
	if a == b {
		t.Errorf("re-registration reused handle %d", a)
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := NewRegistry[FontHandle, Font]("font")
	r.Register(DefaultFont())

	for _, h := range []FontHandle{-1, 1, 999} {
		_, err := r.Resolve(h)
		if !errors.Is(err, ErrUnknownHandle) {
			t.Errorf("Resolve(%d) err = %v, want ErrUnknownHandle", h, err)
		}
		var le *LookupError
		if errors.As(err, &le) && (le.Kind != "font" || le.Handle != int(h)) {
			t.Errorf("LookupError = %+v", le)
		}
	}
}

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry[TextureHandle, *Texture]("texture")
	if _, err := r.Resolve(0); err == nil {
		t.Error("Resolve(0) on empty registry succeeded")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&LookupError{Kind: "texture", Handle: 999}, "wheels: unknown texture handle 999"},
		{&StateError{Field: "blend", Value: 9}, "wheels: blend value 9 is not a valid enumeration value"},
		{&AllocationError{Buffer: "index", Count: 10, Limit: 4}, "wheels: cannot allocate index buffer of 10 elements (limit 4)"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
