package wheels

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for view X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View is a 2D camera: the world position it centers on, zoom, rotation and
// the target-space viewport it renders into. Its matrix is applied to every
// vertex by the sprite technique.
type View struct {
	// X and Y are the world-space position the view centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the view rotation in radians (clockwise).
	Rotation float64
	// Viewport is the target-space rectangle this view renders into.
	Viewport RectF

	followTarget *Vec2
	followLerp   float64

	// BoundsEnabled clamps the position so the visible area stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the view is clamped to when
	// BoundsEnabled is true.
	Bounds RectF

	viewMatrix    Transform
	invViewMatrix Transform
	dirty         bool

	// Last inputs the matrix was computed from, so direct field writes are
	// picked up without MarkDirty.
	lastX, lastY, lastZoom, lastRot float64
	lastViewport                    RectF

	scrollTween *scrollAnim
	zoomTween   *gween.Tween
}

// NewView returns a View centered on the middle of viewport with no zoom.
func NewView(viewport RectF) *View {
	return &View{
		X:        viewport.X + viewport.Width/2,
		Y:        viewport.Y + viewport.Height/2,
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// Follow makes the view track target, a world position updated by the caller.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (v *View) Follow(target *Vec2, lerp float64) {
	v.followTarget = target
	v.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (v *View) Unfollow() {
	v.followTarget = nil
}

// ScrollTo animates the view to the given world position over duration seconds.
func (v *View) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates Zoom to zoom over duration seconds.
func (v *View) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	v.zoomTween = gween.New(float32(v.Zoom), float32(zoom), duration, easeFn)
}

// IsAnimating reports whether a scroll or zoom animation is in progress.
func (v *View) IsAnimating() bool {
	return v.scrollTween != nil || v.zoomTween != nil
}

// SetBounds enables bounds clamping.
func (v *View) SetBounds(bounds RectF) {
	v.BoundsEnabled = true
	v.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (v *View) ClearBounds() {
	v.BoundsEnabled = false
}

// Update advances follow, scroll and zoom animations and bounds clamping by
// dt seconds. Call it once per tick.
func (v *View) Update(dt float32) {
	if v.followTarget != nil {
		v.X += (v.followTarget.X - v.X) * v.followLerp
		v.Y += (v.followTarget.Y - v.Y) * v.followLerp
	}

	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.X = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.Y = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}

	if v.zoomTween != nil {
		val, done := v.zoomTween.Update(dt)
		v.Zoom = float64(val)
		if done {
			v.zoomTween = nil
		}
	}

	if v.BoundsEnabled {
		v.clampToBounds()
	}
}

// clampToBounds restricts the position so the visible area stays within Bounds.
func (v *View) clampToBounds() {
	halfW := v.Viewport.Width / (2 * v.Zoom)
	halfH := v.Viewport.Height / (2 * v.Zoom)

	minX := v.Bounds.X + halfW
	maxX := v.Bounds.X + v.Bounds.Width - halfW
	minY := v.Bounds.Y + halfH
	maxY := v.Bounds.Y + v.Bounds.Height - halfH

	// If bounds are smaller than the visible area, center the view.
	if minX > maxX {
		v.X = v.Bounds.X + v.Bounds.Width/2
	} else {
		v.X = math.Max(minX, math.Min(v.X, maxX))
	}
	if minY > maxY {
		v.Y = v.Bounds.Y + v.Bounds.Height/2
	} else {
		v.Y = math.Max(minY, math.Min(v.Y, maxY))
	}
}

// Matrix returns the world-to-target transform:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy is the viewport center.
func (v *View) Matrix() Transform {
	v.computeViewMatrix()
	return v.viewMatrix
}

func (v *View) computeViewMatrix() {
	if !v.dirty && v.X == v.lastX && v.Y == v.lastY && v.Zoom == v.lastZoom &&
		v.Rotation == v.lastRot && v.Viewport == v.lastViewport {
		return
	}
	v.dirty = false
	v.lastX, v.lastY, v.lastZoom, v.lastRot = v.X, v.Y, v.Zoom, v.Rotation
	v.lastViewport = v.Viewport

	cx := v.Viewport.X + v.Viewport.Width/2
	cy := v.Viewport.Y + v.Viewport.Height/2

	cos := math.Cos(-v.Rotation)
	sin := math.Sin(-v.Rotation)
	z := v.Zoom

	// [a c tx]   [z*cos  -z*sin  cx + z*(-cos*X + sin*Y)]
	// [b d ty] = [z*sin   z*cos  cy + z*(-sin*X - cos*Y)]
	a := z * cos
	c := -z * sin
	b := z * sin
	d := z * cos
	tx := cx + z*(-cos*v.X+sin*v.Y)
	ty := cy + z*(-sin*v.X-cos*v.Y)

	v.viewMatrix = Transform{a, b, c, d, tx, ty}
	v.invViewMatrix = v.viewMatrix.Invert()
}

// WorldToScreen converts world coordinates to target coordinates.
func (v *View) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeViewMatrix()
	return v.viewMatrix.Apply(wx, wy)
}

// ScreenToWorld converts target coordinates to world coordinates.
func (v *View) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeViewMatrix()
	return v.invViewMatrix.Apply(sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the visible area in
// world space.
func (v *View) VisibleBounds() RectF {
	v.computeViewMatrix()
	inv := v.invViewMatrix

	vx := v.Viewport.X
	vy := v.Viewport.Y
	vr := vx + v.Viewport.Width
	vb := vy + v.Viewport.Height

	x0, y0 := inv.Apply(vx, vy)
	x1, y1 := inv.Apply(vr, vy)
	x2, y2 := inv.Apply(vr, vb)
	x3, y3 := inv.Apply(vx, vb)

	return boundsOf(x0, y0, x1, y1, x2, y2, x3, y3)
}

// MarkDirty forces a recomputation of the view matrix.
func (v *View) MarkDirty() {
	v.dirty = true
}

// boundsOf returns the axis-aligned box around four corners.
func boundsOf(x0, y0, x1, y1, x2, y2, x3, y3 float64) RectF {
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return RectF{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
