package native

import (
	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var textureFormats = map[pulse.TextureFormat]wgpu.TextureFormat{
	pulse.TextureFormatRGBA8Unorm:     wgpu.TextureFormatRGBA8Unorm,
	pulse.TextureFormatRGBA8UnormSrgb: wgpu.TextureFormatRGBA8UnormSrgb,
	pulse.TextureFormatBGRA8Unorm:     wgpu.TextureFormatBGRA8Unorm,
	pulse.TextureFormatBGRA8UnormSrgb: wgpu.TextureFormatBGRA8UnormSrgb,
	pulse.TextureFormatRGBA16Float:    wgpu.TextureFormatRGBA16Float,
	pulse.TextureFormatRGB10A2Unorm:   wgpu.TextureFormatRGB10A2Unorm,
}

func toTextureFormat(format pulse.TextureFormat) (wgpu.TextureFormat, bool) {
	converted, ok := textureFormats[format]
	return converted, ok
}

// fromTextureFormat returns false for formats a surface can offer but
// the context does not know about.
func fromTextureFormat(format wgpu.TextureFormat) (pulse.TextureFormat, bool) {
	for key, value := range textureFormats {
		if value == format {
			return key, true
		}
	}

	return pulse.TextureFormatUndefined, false
}

func toPresentMode(mode pulse.PresentMode) wgpu.PresentMode {
	switch mode {
	case pulse.PresentModeImmediate:
		return wgpu.PresentModeImmediate
	case pulse.PresentModeMailbox:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}

func fromPresentMode(mode wgpu.PresentMode) (pulse.PresentMode, bool) {
	switch mode {
	case wgpu.PresentModeFifo:
		return pulse.PresentModeFifo, true
	case wgpu.PresentModeImmediate:
		return pulse.PresentModeImmediate, true
	case wgpu.PresentModeMailbox:
		return pulse.PresentModeMailbox, true
	default:
		return 0, false
	}
}

func powerPreference(pref pulse.PowerPreference) wgpu.PowerPreference {
	switch pref {
	case pulse.PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	case pulse.PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

func blendState(mode pulse.BlendMode) *wgpu.BlendState {
	switch mode {
	case pulse.BlendAlpha:
		return &wgpu.BlendStateAlphaBlending
	case pulse.BlendPremultipliedAlpha:
		return &wgpu.BlendStatePremultipliedAlphaBlending
	default:
		// no blending, the fragment replaces the target
		return nil
	}
}

func toTopology(topology pulse.PrimitiveTopology) wgpu.PrimitiveTopology {
	switch topology {
	case pulse.PrimitiveTopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case pulse.PrimitiveTopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case pulse.PrimitiveTopologyPointList:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

func toFrontFace(face pulse.FrontFace) wgpu.FrontFace {
	if face == pulse.FrontFaceCW {
		return wgpu.FrontFaceCW
	}

	return wgpu.FrontFaceCCW
}

func toCullMode(mode pulse.CullMode) wgpu.CullMode {
	switch mode {
	case pulse.CullModeFront:
		return wgpu.CullModeFront
	case pulse.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}
