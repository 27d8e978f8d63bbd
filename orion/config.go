package orion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/oliverbestmann/triangle/glimpse"
	"github.com/oliverbestmann/triangle/pulse"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of the application. Every field
// can be overwritten from a yaml file.
type Config struct {
	Window   glimpse.WindowConfig `yaml:"window"`
	Graphics GraphicsConfig       `yaml:"graphics"`

	LogLevel slog.Level `yaml:"log_level"`

	// Profile mode to record, empty disables profiling.
	Profile string `yaml:"profile"`
}

type GraphicsConfig struct {
	PowerPreference      pulse.PowerPreference `yaml:"power_preference"`
	FormatPolicy         pulse.FormatPolicy    `yaml:"format_policy"`
	ForceFallbackAdapter bool                  `yaml:"force_fallback_adapter"`

	// Clear color as srgb encoded rgba values in the range 0 to 1.
	ClearColor [4]float32 `yaml:"clear_color,flow"`

	MaxConsecutiveFailures int    `yaml:"max_consecutive_failures"`
	FrameLatency           uint32 `yaml:"frame_latency"`
}

func DefaultConfig() Config {
	opts := pulse.DefaultOptions()

	return Config{
		Window: glimpse.DefaultWindowConfig(),
		Graphics: GraphicsConfig{
			PowerPreference:        opts.PowerPreference,
			FormatPolicy:           opts.FormatPolicy,
			ClearColor:             [4]float32{0, 0, 0, 1},
			MaxConsecutiveFailures: opts.MaxConsecutiveFailures,
			FrameLatency:           opts.FrameLatency,
		},
		LogLevel: slog.LevelInfo,
	}
}

// LoadConfig reads the config file at path on top of the defaults and
// applies overrides from the environment. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		if err := decodeStrictYAML(data, &config); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return err
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup("WGPU_FORCE_FALLBACK_ADAPTER"); ok {
		c.Graphics.ForceFallbackAdapter = value == "1"
	}

	if value, ok := lookup("TRIANGLE_LOG_LEVEL"); ok && value != "" {
		if err := c.LogLevel.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("parse TRIANGLE_LOG_LEVEL: %w", err)
		}
	}

	return nil
}

func (c Config) Validate() error {
	var errs []error

	if err := c.Window.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("window: %w", err))
	}

	if c.Graphics.MaxConsecutiveFailures < 0 {
		errs = append(errs, fmt.Errorf("graphics: max_consecutive_failures must not be negative"))
	}

	for _, value := range c.Graphics.ClearColor {
		if value < 0 || value > 1 {
			errs = append(errs, fmt.Errorf("graphics: clear_color components must be in [0, 1], got %v", c.Graphics.ClearColor))
			break
		}
	}

	if _, err := profileMode(c.Profile); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// GraphicsOptions converts the config into options for pulse.New.
func (c Config) GraphicsOptions(width, height uint32) pulse.Options {
	opts := pulse.DefaultOptions()

	opts.Width = width
	opts.Height = height
	opts.PowerPreference = c.Graphics.PowerPreference
	opts.FormatPolicy = c.Graphics.FormatPolicy
	opts.ForceFallbackAdapter = c.Graphics.ForceFallbackAdapter
	opts.MaxConsecutiveFailures = c.Graphics.MaxConsecutiveFailures

	if c.Graphics.FrameLatency > 0 {
		opts.FrameLatency = c.Graphics.FrameLatency
	}

	rgba := c.Graphics.ClearColor
	opts.ClearColor = pulse.ColorSRGBA(rgba[0], rgba[1], rgba[2], rgba[3])

	if c.Window.VSync {
		opts.PresentMode = pulse.PresentModeFifo
	} else {
		opts.PresentMode = pulse.PresentModeImmediate
	}

	return opts
}

// AppOptions returns the loop options derived from the window config.
func (c Config) AppOptions() AppOptions {
	return AppOptions{
		MaxFPS: c.Window.MaxFPS,
		VSync:  c.Window.VSync,
	}
}

func normalizeProfile(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}
