package core

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/hellogl/engine/colors"
	"github.com/hubastard/hellogl/engine/logging"
)

// Config for the engine run.
type Config struct {
	Title      string       `toml:"title"`
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	VSync      bool         `toml:"vsync"`
	DepthBits  int          `toml:"depth_bits"`
	ClearColor colors.Color `toml:"clear_color"`
	// AssetDir overrides the embedded shaders and bitmaps when set.
	AssetDir string `toml:"asset_dir"`
	LogLevel string `toml:"log_level"`
	// ProfilePath, when set, receives a speedscope capture of frame phases on exit.
	ProfilePath string `toml:"profile"`
}

// DefaultConfig is a 400x300 window with a 24-bit depth buffer and vsync on.
func DefaultConfig(title string) Config {
	return Config{
		Title:      title,
		Width:      400,
		Height:     300,
		VSync:      true,
		DepthBits:  24,
		ClearColor: colors.Black,
		LogLevel:   "info",
	}
}

// LoadConfig overlays the TOML file at path onto def. A missing file yields def unchanged.
func LoadConfig(path string, def Config) (Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := ParseConfig(b, def)
	if err != nil {
		return def, fmt.Errorf("config %q: %w", path, err)
	}
	logging.Logger().Debug("loaded config", "path", path)
	return cfg, nil
}

// ParseConfig decodes TOML onto def. Unknown keys are rejected.
func ParseConfig(b []byte, def Config) (Config, error) {
	cfg := def
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return def, err
	}
	if err := cfg.Validate(); err != nil {
		return def, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.DepthBits != 0 && c.DepthBits != 16 && c.DepthBits != 24 && c.DepthBits != 32 {
		return fmt.Errorf("unsupported depth_bits %d", c.DepthBits)
	}
	if err := c.ClearColor.Validate(); err != nil {
		return fmt.Errorf("clear_color: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
