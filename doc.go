// Package wheels is an [Ebitengine] 2D render backend for immediate-mode
// batchers.
//
// A batcher collects textured triangles and hands them to a [Renderer] once
// per frame. wheels implements that contract on top of Ebitengine: it keeps
// integer handles for textures and fonts, uploads each frame's geometry into
// growth-only buffers, and translates every batch's [GraphicsState] into
// device state before issuing an indexed draw.
//
// # Quick start
//
// Create a device for the screen image, wrap it in a [Backend] and feed it
// from a [Batcher]:
//
//	device := wheels.NewEbitenDevice(nil, wheels.DeviceConfig{})
//	backend := wheels.NewBackend(device, wheels.BackendOptions{})
//	batcher := wheels.NewBatcher(backend)
//
//	hero := backend.AddTexture(tex)
//	batcher.SetWhiteTexture(backend.AddTexture(wheels.NewWhiteTexture()))
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		device.SetTarget(screen)
//		batcher.SetTexture(hero)
//		batcher.DrawTexture(wheels.Vec2{X: 10, Y: 10}, wheels.ColorWhite)
//		batcher.Flush()
//	}
//
// # Frames
//
// Every frame is one [Backend.BeginRender], any number of
// [Backend.DrawBatch] calls and one [Backend.EndRender]. BeginRender copies
// the vertex and index data into device buffers, growing them when a frame
// needs more room. Buffers never shrink. With [GrowthExact] the new capacity
// equals the request; [GrowthDouble] at least doubles it.
//
// # State translation
//
// DrawBatch applies state in a fixed order: sampler, blend, depth/stencil
// and rasterizer, scissor, shader technique and finally the texture. Point
// sampling maps to [ebiten.FilterNearest]; linear and anisotropic map to
// [ebiten.FilterLinear]. Wrap maps to [ebiten.AddressRepeat] and clamp to
// [ebiten.AddressClampToZero]. Alpha blending is source-over; opaque is a
// copy. Depth testing and face culling are always off.
//
// # Errors
//
// Unknown handles produce a [*LookupError], unrecognised state values a
// [*StateError] and rejected buffer allocations an [*AllocationError]. All
// of them match their sentinel with [errors.Is].
//
// # Extras
//
// [View] provides a scrollable, zoomable camera transform with [gween]
// tweens. [LoadAtlas] reads TexturePacker JSON, [LoadBitmapFont] reads
// BMFont descriptors, and [TextureWatcher] hot-reloads textures from disk.
// [Config] loads backend settings from TOML.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package wheels
