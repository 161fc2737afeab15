package wheels

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenFloat, TweenVec2, TweenColor,
// TweenRotation) and call Update(dt) each frame. The group writes values
// directly into the target fields.
//
// There is no global animation manager; callers call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. A cancelled or finished group does nothing.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Cancel stops the group, leaving the fields at their current values.
func (g *TweenGroup) Cancel() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenFloat animates *f to the given value.
func TweenFloat(f *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(f, to, duration, fn)
	return g
}

// TweenVec2 animates both components of *v to the given vector, for example a
// sprite position fed to the Batcher.
func TweenVec2(v *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&v.X, to.X, duration, fn)
	g.add(&v.Y, to.Y, duration, fn)
	return g
}

// TweenColor animates all four components of *c (R, G, B, A) to the target color.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&c.R, to.R, duration, fn)
	g.add(&c.G, to.G, duration, fn)
	g.add(&c.B, to.B, duration, fn)
	g.add(&c.A, to.A, duration, fn)
	return g
}

// TweenRotation animates the view's rotation to the target value in radians.
func TweenRotation(v *View, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&v.Rotation, to, duration, fn)
	return g
}
