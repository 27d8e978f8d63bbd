package pulse_test

import (
	"testing"

	"github.com/oliverbestmann/triangle/pulse"
)

func TestFormatPolicy_Choose(t *testing.T) {
	tests := []struct {
		name      string
		policy    pulse.FormatPolicy
		supported []pulse.TextureFormat
		want      pulse.TextureFormat
		wantOk    bool
	}{
		{"empty", pulse.FormatPreferSRGB, nil, pulse.TextureFormatUndefined, false},
		{"only linear", pulse.FormatPreferSRGB, []pulse.TextureFormat{pulse.TextureFormatRGBA8Unorm}, pulse.TextureFormatRGBA8Unorm, true},
		{"srgb later", pulse.FormatPreferSRGB, []pulse.TextureFormat{pulse.TextureFormatRGB10A2Unorm, pulse.TextureFormatRGBA8UnormSrgb}, pulse.TextureFormatRGBA8UnormSrgb, true},
		{"first wins", pulse.FormatFirstSupported, []pulse.TextureFormat{pulse.TextureFormatRGB10A2Unorm, pulse.TextureFormatRGBA8UnormSrgb}, pulse.TextureFormatRGB10A2Unorm, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have, ok := tt.policy.Choose(tt.supported)
			if have != tt.want || ok != tt.wantOk {
				t.Fatalf("want (%s, %v), have (%s, %v)", tt.want, tt.wantOk, have, ok)
			}
		})
	}
}

func TestPowerPreference_UnmarshalText(t *testing.T) {
	var pref pulse.PowerPreference

	if err := pref.UnmarshalText([]byte("Low-Power")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if pref != pulse.PowerPreferenceLowPower {
		t.Fatalf("unexpected preference %s", pref)
	}

	if err := pref.UnmarshalText([]byte("turbo")); err == nil {
		t.Fatalf("expected an error for an unknown preference")
	}
}

func TestFormatPolicy_UnmarshalText(t *testing.T) {
	var policy pulse.FormatPolicy

	if err := policy.UnmarshalText([]byte("first-supported")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if policy != pulse.FormatFirstSupported {
		t.Fatalf("unexpected policy %s", policy)
	}

	if err := policy.UnmarshalText([]byte("")); err == nil {
		t.Fatalf("expected an error for an empty policy")
	}
}

func TestAcquireError_Message(t *testing.T) {
	err := &pulse.AcquireError{Reason: pulse.AcquireOutdated}

	if have := err.Error(); have != "acquire frame: Outdated" {
		t.Fatalf("unexpected message %q", have)
	}
}
