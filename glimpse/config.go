package glimpse

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

//go:generate go tool stringer -type=FullscreenMode

// FullscreenMode selects how the window occupies the screen.
type FullscreenMode int

const (
	Windowed FullscreenMode = iota
	Fullscreen
	Borderless
)

func (m FullscreenMode) valid() bool {
	return m >= Windowed && m <= Borderless
}

func (m FullscreenMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("unknown fullscreen mode %d", int(m))
	}

	return []byte(strings.ToLower(m.String())), nil
}

func (m *FullscreenMode) UnmarshalText(text []byte) error {
	for candidate := Windowed; candidate <= Borderless; candidate++ {
		if strings.EqualFold(string(text), candidate.String()) {
			*m = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown fullscreen mode %q", string(text))
}

// WindowConfig describes the window to build. A window copies the config
// when it is built, changing it afterwards has no effect.
type WindowConfig struct {
	Title      string         `yaml:"title"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Resizable  bool           `yaml:"resizable"`
	Fullscreen FullscreenMode `yaml:"fullscreen"`
	VSync      bool           `yaml:"vsync"`

	// Upper bound for the frame rate, zero disables the cap.
	MaxFPS int `yaml:"max_fps"`

	Decorated bool `yaml:"decorated"`

	// Hints are passed to the window system before the window is created,
	// e.g. "platform": "x11".
	Hints map[string]string `yaml:"hints,omitempty"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:      "Triangle",
		Width:      1024,
		Height:     768,
		Resizable:  true,
		Fullscreen: Windowed,
		VSync:      false,
		MaxFPS:     60,
		Decorated:  true,
	}
}

// WithDefaults fills in a title and size if they are missing.
func (c WindowConfig) WithDefaults() WindowConfig {
	defaults := DefaultWindowConfig()

	if c.Title == "" {
		c.Title = defaults.Title
	}

	c.Width = orDefault(c.Width, defaults.Width)
	c.Height = orDefault(c.Height, defaults.Height)

	return c
}

func (c WindowConfig) Validate() error {
	var errs []error

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}

	if c.MaxFPS < 0 {
		errs = append(errs, fmt.Errorf("max fps must not be negative, got %d", c.MaxFPS))
	}

	if !c.Fullscreen.valid() {
		errs = append(errs, fmt.Errorf("unknown fullscreen mode %d", int(c.Fullscreen)))
	}

	return errors.Join(errs...)
}

// Hint returns the value of a window system hint, or the empty string.
func (c WindowConfig) Hint(name string) string {
	return c.Hints[name]
}

func orDefault[T constraints.Integer](value, fallback T) T {
	if value <= 0 {
		return fallback
	}

	return value
}
