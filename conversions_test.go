package wheels

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestRectImageRoundTrip(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	ir := r.ImageRect()
	if ir != image.Rect(10, 20, 40, 60) {
		t.Errorf("ImageRect = %v", ir)
	}
	if back := RectFromImage(ir); back != r {
		t.Errorf("RectFromImage = %+v, want %+v", back, r)
	}
}

func TestRectToRectF(t *testing.T) {
	got := Rect{X: 1, Y: 2, Width: 3, Height: 4}.RectF()
	if got != (RectF{1, 2, 3, 4}) {
		t.Errorf("RectF = %+v", got)
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	r, g, b, a := Color{R: 1, G: 0.5, B: 0, A: 0.5}.RGBA()
	if a != 0x8000 {
		t.Errorf("a = %#x, want 0x8000", a)
	}
	if r != 0x8000 {
		t.Errorf("r = %#x, want 0x8000", r)
	}
	if g != 0x4000 || b != 0 {
		t.Errorf("g, b = %#x, %#x, want 0x4000, 0", g, b)
	}
}

func TestColorFromColor(t *testing.T) {
	c := ColorFromColor(color.NRGBA{R: 255, G: 0, B: 51, A: 255})
	if math.Abs(c.R-1) > 1e-3 || c.G != 0 || math.Abs(c.B-0.2) > 1e-3 || c.A != 1 {
		t.Errorf("ColorFromColor = %+v", c)
	}

	// Premultiplied input is converted to straight alpha.
	c = ColorFromColor(color.RGBA{R: 64, A: 128})
	if math.Abs(c.R-0.5) > 0.01 || math.Abs(c.A-128.0/255) > 1e-3 {
		t.Errorf("ColorFromColor premultiplied = %+v", c)
	}
}

func TestColorScale(t *testing.T) {
	cs := Color{R: 1, G: 0.5, B: 0, A: 0.5}.ColorScale()
	if cs.R() != 0.5 || cs.G() != 0.25 || cs.B() != 0 || cs.A() != 0.5 {
		t.Errorf("ColorScale = (%v, %v, %v, %v)", cs.R(), cs.G(), cs.B(), cs.A())
	}
}

func TestPointConversions(t *testing.T) {
	p := Point2{X: 3, Y: -4}
	if p.Vec2() != (Vec2{3, -4}) {
		t.Errorf("Vec2 = %v", p.Vec2())
	}
	if p.ImagePoint() != image.Pt(3, -4) {
		t.Errorf("ImagePoint = %v", p.ImagePoint())
	}
	if got := (Vec2{X: 2.7, Y: -0.5}).Point2(); got != (Point2{X: 2, Y: -1}) {
		t.Errorf("Point2 = %v, want (2, -1)", got)
	}
}

func TestEbitenVertex(t *testing.T) {
	v := Vertex{Position: Vec2{4, 6}, Color: Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, UV: Vec2{0.5, 0.25}}
	ev := ebitenVertex(v, IdentityTransform, image.Pt(100, 200), image.Rect(10, 20, 30, 60))
	if ev.DstX != 104 || ev.DstY != 206 {
		t.Errorf("Dst = (%v, %v), want (104, 206)", ev.DstX, ev.DstY)
	}
	if ev.SrcX != 20 || ev.SrcY != 30 {
		t.Errorf("Src = (%v, %v), want (20, 30)", ev.SrcX, ev.SrcY)
	}
	if ev.ColorR != 0.25 || ev.ColorG != 0.5 || ev.ColorB != 0.75 || ev.ColorA != 1 {
		t.Errorf("color = (%v, %v, %v, %v)", ev.ColorR, ev.ColorG, ev.ColorB, ev.ColorA)
	}
}
