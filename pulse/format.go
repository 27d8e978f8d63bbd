package pulse

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=TextureFormat -trimprefix=TextureFormat

type TextureFormat int

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatRGBA8Unorm
	TextureFormatRGBA8UnormSrgb
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSrgb
	TextureFormatRGBA16Float
	TextureFormatRGB10A2Unorm
)

// IsSRGB returns true if the hardware applies the srgb transfer function
// when writing to a texture of this format.
func (f TextureFormat) IsSRGB() bool {
	return f == TextureFormatRGBA8UnormSrgb || f == TextureFormatBGRA8UnormSrgb
}

//go:generate go tool stringer -type=PresentMode -trimprefix=PresentMode

type PresentMode int

const (
	// PresentModeFifo waits for the vertical blank. It is supported everywhere.
	PresentModeFifo PresentMode = iota
	PresentModeImmediate
	PresentModeMailbox
)

type TextureUsage uint32

const (
	TextureUsageRenderAttachment TextureUsage = 1 << iota
	TextureUsageCopySrc
)

// SurfaceConfig is the contract between the application and the presentation
// backend. Width and Height must match the window or presentation fails.
type SurfaceConfig struct {
	Format      TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	Usage       TextureUsage

	// Maximum number of frames queued for presentation.
	FrameLatency uint32
}

type PowerPreference int

const (
	PowerPreferenceHighPerformance PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceNone
)

var powerPreferenceNames = map[PowerPreference]string{
	PowerPreferenceHighPerformance: "high-performance",
	PowerPreferenceLowPower:        "low-power",
	PowerPreferenceNone:            "none",
}

func (p PowerPreference) String() string {
	if name, ok := powerPreferenceNames[p]; ok {
		return name
	}

	return fmt.Sprintf("PowerPreference(%d)", int(p))
}

func (p PowerPreference) MarshalText() ([]byte, error) {
	name, ok := powerPreferenceNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown power preference %d", int(p))
	}

	return []byte(name), nil
}

func (p *PowerPreference) UnmarshalText(text []byte) error {
	return unmarshalName(powerPreferenceNames, text, p, "power preference")
}

// FormatPolicy decides which of the formats a surface supports is used.
type FormatPolicy int

const (
	// FormatPreferSRGB picks the first srgb format, or the first
	// supported format if there is none.
	FormatPreferSRGB FormatPolicy = iota

	// FormatFirstSupported picks the format the surface prefers.
	FormatFirstSupported
)

var formatPolicyNames = map[FormatPolicy]string{
	FormatPreferSRGB:     "prefer-srgb",
	FormatFirstSupported: "first-supported",
}

func (p FormatPolicy) String() string {
	if name, ok := formatPolicyNames[p]; ok {
		return name
	}

	return fmt.Sprintf("FormatPolicy(%d)", int(p))
}

func (p FormatPolicy) MarshalText() ([]byte, error) {
	name, ok := formatPolicyNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown format policy %d", int(p))
	}

	return []byte(name), nil
}

func (p *FormatPolicy) UnmarshalText(text []byte) error {
	return unmarshalName(formatPolicyNames, text, p, "format policy")
}

// Choose selects a format from the supported formats. It returns false
// if there are no supported formats.
func (p FormatPolicy) Choose(supported []TextureFormat) (TextureFormat, bool) {
	if len(supported) == 0 {
		return TextureFormatUndefined, false
	}

	if p == FormatPreferSRGB {
		for _, format := range supported {
			if format.IsSRGB() {
				return format, true
			}
		}
	}

	return supported[0], true
}

func choosePresentMode(requested PresentMode, supported []PresentMode) PresentMode {
	if len(supported) == 0 {
		return requested
	}

	for _, mode := range supported {
		if mode == requested {
			return mode
		}
	}

	return PresentModeFifo
}

func unmarshalName[T comparable](names map[T]string, text []byte, target *T, what string) error {
	for value, name := range names {
		if strings.EqualFold(name, string(text)) {
			*target = value
			return nil
		}
	}

	return fmt.Errorf("unknown %s %q", what, string(text))
}
