// Package theme maps widget selectors to draw styles.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selector identifies a widget for style lookup.
type Selector struct {
	Element string
	ID      string
	Classes []string
}

// Key renders the selector as element#id.class1.class2.
func (s Selector) Key() string {
	var b strings.Builder
	b.WriteString(s.Element)
	if s.ID != "" {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, class := range s.Classes {
		b.WriteByte('.')
		b.WriteString(class)
	}
	return b.String()
}

func (s Selector) String() string {
	return s.Key()
}

// Color is an RGBA color that decodes from "#rgb", "#rrggbb" or
// "#rrggbbaa".
type Color color.RGBA

func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA(c).RGBA()
}

// IsZero reports whether the color was never set.
func (c Color) IsZero() bool {
	return c == Color{}
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}

// ParseColor parses a hex color.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return Color{}, fmt.Errorf("color %q: missing '#'", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Style is what the render pass needs to draw one entity.
type Style struct {
	Background  Color   `yaml:"background,omitempty"`
	Foreground  Color   `yaml:"foreground,omitempty"`
	Border      Color   `yaml:"border,omitempty"`
	BorderWidth float64 `yaml:"border_width,omitempty"`
}

// Theme is a flat selector-key to style table. There is no cascade: Lookup
// tries the exact key, then the element alone.
type Theme struct {
	styles map[string]Style
}

type document struct {
	Styles map[string]Style `yaml:"styles"`
}

// New returns a theme over styles.
func New(styles map[string]Style) *Theme {
	t := &Theme{styles: make(map[string]Style, len(styles))}
	for k, v := range styles {
		t.styles[k] = v
	}
	return t
}

// Parse decodes a YAML theme document.
func Parse(data []byte) (*Theme, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	return New(doc.Styles), nil
}

// Load reads a YAML theme from path. An empty path yields an empty theme.
func Load(path string) (*Theme, error) {
	if path == "" {
		return New(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("theme %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	return Parse(data)
}

// Set adds or replaces the style for key.
func (t *Theme) Set(key string, style Style) {
	t.styles[key] = style
}

// Len returns the number of styles.
func (t *Theme) Len() int {
	return len(t.styles)
}

// Lookup returns the style for a selector key.
func (t *Theme) Lookup(key string) (Style, bool) {
	if t == nil {
		return Style{}, false
	}
	if s, ok := t.styles[key]; ok {
		return s, true
	}
	element := key
	if i := strings.IndexAny(key, "#."); i >= 0 {
		element = key[:i]
	}
	s, ok := t.styles[element]
	return s, ok
}

// Resolve is Lookup for a Selector.
func (t *Theme) Resolve(sel Selector) (Style, bool) {
	return t.Lookup(sel.Key())
}

// Marshal encodes the theme back to YAML.
func (t *Theme) Marshal() ([]byte, error) {
	return yaml.Marshal(document{Styles: t.styles})
}
