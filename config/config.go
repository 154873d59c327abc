// Package config loads the optional ooui.yaml runtime configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by Resolve.
const FileName = "ooui.yaml"

// Config represents ooui.yaml.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Layout LayoutConfig `yaml:"layout"`
	Log    LogConfig    `yaml:"log"`
	Debug  DebugConfig  `yaml:"debug"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// WindowConfig sizes the demo window.
type WindowConfig struct {
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Title  string `yaml:"title,omitempty"`
}

// LayoutConfig bounds the layout pass.
type LayoutConfig struct {
	MaxDepth        int               `yaml:"max_depth,omitempty"`
	RootConstraints ConstraintsConfig `yaml:"root_constraints"`
}

// ConstraintsConfig is the root box constraint. A zero max means unbounded.
type ConstraintsConfig struct {
	MinWidth  float64 `yaml:"min_width,omitempty"`
	MaxWidth  float64 `yaml:"max_width,omitempty"`
	MinHeight float64 `yaml:"min_height,omitempty"`
	MaxHeight float64 `yaml:"max_height,omitempty"`
}

// LogConfig selects logger level and format ("text" or "json").
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DebugConfig enables the debug surfaces.
type DebugConfig struct {
	Addr      string `yaml:"addr,omitempty"`
	Inspector bool   `yaml:"inspector,omitempty"`
}

// ThemeConfig points at a theme file.
type ThemeConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 800, Height: 600, Title: "ooui"},
		Layout: LayoutConfig{MaxDepth: 512},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the file at path. A missing file yields Default.
// OOUI_LOG_LEVEL and OOUI_LOG_FORMAT override the log section.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := Parse(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Parse decodes data over cfg; keys absent from data keep cfg's values.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Resolve loads ooui.yaml from dir. When the window title is unset and dir
// holds a go.mod, the title defaults to the module's last path element.
func Resolve(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Window.Title) == "" || cfg.Window.Title == Default().Window.Title {
		if name, ok := moduleName(dir); ok {
			cfg.Window.Title = name
		}
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.Layout.MaxDepth < 0 {
		return fmt.Errorf("layout.max_depth must not be negative, got %d", c.Layout.MaxDepth)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	rc := c.Layout.RootConstraints
	if rc.MaxWidth != 0 && rc.MinWidth > rc.MaxWidth {
		return fmt.Errorf("layout.root_constraints: min_width %v exceeds max_width %v", rc.MinWidth, rc.MaxWidth)
	}
	if rc.MaxHeight != 0 && rc.MinHeight > rc.MaxHeight {
		return fmt.Errorf("layout.root_constraints: min_height %v exceeds max_height %v", rc.MinHeight, rc.MaxHeight)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Bounds returns the root constraints with zero maxima replaced by the
// window size, or by +Inf when the window size is zero too.
func (c ConstraintsConfig) Bounds(w WindowConfig) (minW, maxW, minH, maxH float64) {
	maxW, maxH = c.MaxWidth, c.MaxHeight
	if maxW == 0 {
		maxW = float64(w.Width)
		if maxW == 0 {
			maxW = math.Inf(1)
		}
	}
	if maxH == 0 {
		maxH = float64(w.Height)
		if maxH == 0 {
			maxH = math.Inf(1)
		}
	}
	return c.MinWidth, maxW, c.MinHeight, maxH
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("OOUI_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("OOUI_LOG_FORMAT"); ok && v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
}

func moduleName(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", false
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", false
	}
	prefix, _, ok := module.SplitPathVersion(path)
	if !ok {
		prefix = path
	}
	parts := strings.Split(prefix, "/")
	return parts[len(parts)-1], true
}
