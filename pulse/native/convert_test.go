package native

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/triangle/pulse"
)

func TestClassifyAcquireError(t *testing.T) {
	tests := []struct {
		status string
		want   pulse.AcquireFailure
		ok     bool
	}{
		{"got status=SurfaceGetCurrentTextureStatusTimeout", pulse.AcquireTimeout, true},
		{"got status=SurfaceGetCurrentTextureStatusOutdated", pulse.AcquireOutdated, true},
		{"got status=SurfaceGetCurrentTextureStatusLost", pulse.AcquireLost, true},
		{"got status=SurfaceGetCurrentTextureStatusDeviceLost", pulse.AcquireLost, true},
		{"got status=SurfaceGetCurrentTextureStatusOutOfMemory", pulse.AcquireOutOfMemory, true},
		{"got status=SurfaceGetCurrentTextureStatusError", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			have, ok := classifyAcquireError(errors.New(tt.status))
			if ok != tt.ok || (ok && have != tt.want) {
				t.Fatalf("want (%s, %v), have (%s, %v)", tt.want, tt.ok, have, ok)
			}
		})
	}
}

func TestTextureFormatMapping(t *testing.T) {
	for format := range textureFormats {
		converted, ok := toTextureFormat(format)
		if !ok {
			t.Fatalf("no wgpu format for %s", format)
		}

		back, ok := fromTextureFormat(converted)
		if !ok || back != format {
			t.Fatalf("%s maps back to %s", format, back)
		}
	}

	if _, ok := toTextureFormat(pulse.TextureFormatUndefined); ok {
		t.Fatalf("undefined format must not map")
	}
}

func TestParseLogLevel(t *testing.T) {
	if _, ok := parseLogLevel("debug"); !ok {
		t.Fatalf("expected lowercase level to parse")
	}

	if _, ok := parseLogLevel(""); ok {
		t.Fatalf("empty value must leave the log level alone")
	}
}
