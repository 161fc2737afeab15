package wheels

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// samplerFor maps a sampler mode to the device filter and address mode.
// Ebitengine has no anisotropic filter, so anisotropic modes sample linearly.
func samplerFor(s SamplerState) (Sampler, error) {
	switch s {
	case SamplerPointWrap:
		return Sampler{Filter: ebiten.FilterNearest, Address: ebiten.AddressRepeat}, nil
	case SamplerPointClamp:
		return Sampler{Filter: ebiten.FilterNearest, Address: ebiten.AddressClampToZero}, nil
	case SamplerLinearWrap:
		return Sampler{Filter: ebiten.FilterLinear, Address: ebiten.AddressRepeat}, nil
	case SamplerLinearClamp:
		return Sampler{Filter: ebiten.FilterLinear, Address: ebiten.AddressClampToZero}, nil
	case SamplerAnisotropicWrap:
		return Sampler{Filter: ebiten.FilterLinear, Address: ebiten.AddressRepeat}, nil
	case SamplerAnisotropicClamp:
		return Sampler{Filter: ebiten.FilterLinear, Address: ebiten.AddressClampToZero}, nil
	default:
		return Sampler{}, &StateError{Field: "sampler", Value: int(s)}
	}
}

// blendFor maps a blend mode to the Ebitengine blend operation.
func blendFor(b BlendState) (ebiten.Blend, error) {
	switch b {
	case BlendAlpha:
		return ebiten.BlendSourceOver, nil
	case BlendOpaque:
		return ebiten.BlendCopy, nil
	default:
		return ebiten.Blend{}, &StateError{Field: "blend", Value: int(b)}
	}
}

// applyState pushes state to the device in a fixed order: sampler, blend,
// depth/stencil and rasterizer, scissor, technique, texture. It stops at the
// first failing step.
func (b *Backend) applyState(state GraphicsState) error {
	sampler, err := samplerFor(state.Sampler)
	if err != nil {
		return err
	}
	b.device.SetSamplerState(sampler)

	blend, err := blendFor(state.Blend)
	if err != nil {
		return err
	}
	b.device.SetBlendState(blend)

	b.device.SetDepthStencilState(DepthStencilNone)
	b.device.SetRasterizerState(CullNone)

	if state.UseScissorRect {
		b.device.SetScissorRect(state.ScissorRect.ImageRect(), true)
	} else {
		b.device.SetScissorRect(image.Rectangle{}, false)
	}

	if b.view != nil {
		b.technique.View = b.view.Matrix()
	}
	b.device.ApplyTechnique(b.technique)

	tex, err := b.textures.Resolve(state.Texture)
	if err != nil {
		return err
	}
	b.device.SetTexture(tex)
	return nil
}
