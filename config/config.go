// Package config loads the gooey effect settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/gooey/motion"
	"github.com/phanxgames/gooey/sdf"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the full effect configuration. Zero fields in a file keep their
// defaults.
type Config struct {
	Window   WindowSpec   `yaml:"window"`
	Canvas   CanvasSpec   `yaml:"canvas"`
	View     ViewSpec     `yaml:"view"`
	Layout   LayoutSpec   `yaml:"layout"`
	Physics  PhysicsSpec  `yaml:"physics"`
	Material MaterialSpec `yaml:"material"`
	Menu     []MenuSpec   `yaml:"menu"`
	Debug    bool         `yaml:"debug"`
}

// WindowSpec sizes the desktop window and the color it is cleared to.
type WindowSpec struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background Color  `yaml:"background"`
}

// CanvasSpec places the effect's shading surface on screen, in pixels.
type CanvasSpec struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ViewSpec maps the canvas onto world space: Center sits at the canvas
// middle and Scale world units span its shorter side.
type ViewSpec struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Scale   float64 `yaml:"scale"`
}

// LayoutSpec mirrors motion.Layout.
type LayoutSpec struct {
	// Count of blobs, parent included. Zero derives it from the menu length.
	Count              int     `yaml:"count"`
	BaseX              float64 `yaml:"base_x"`
	BaseY              float64 `yaml:"base_y"`
	Spacing            float64 `yaml:"spacing"`
	OpenLead           float64 `yaml:"open_lead"`
	OpenStep           float64 `yaml:"open_step"`
	Stagger            float64 `yaml:"stagger"`
	ParentOpenRadius   float64 `yaml:"parent_open_radius"`
	ParentClosedRadius float64 `yaml:"parent_closed_radius"`
	ChildOpenRadius    float64 `yaml:"child_open_radius"`
}

// GainsSpec mirrors motion.Gains.
type GainsSpec struct {
	StiffnessMin  float64 `yaml:"stiffness_min"`
	StiffnessSpan float64 `yaml:"stiffness_span"`
	DampingMin    float64 `yaml:"damping_min"`
	DampingSpan   float64 `yaml:"damping_span"`
}

// PhysicsSpec holds the spring coefficients of the blob animation.
type PhysicsSpec struct {
	Open            GainsSpec `yaml:"open"`
	Close           GainsSpec `yaml:"close"`
	RadiusStiffness float64   `yaml:"radius_stiffness"`
	RadiusDamping   float64   `yaml:"radius_damping"`
	TravelFactor    float64   `yaml:"travel_factor"`
}

// MaterialSpec holds the blend radius and the glass shading parameters.
type MaterialSpec struct {
	Blend              float64 `yaml:"blend"`
	IOR                float64 `yaml:"ior"`
	Tint               Color   `yaml:"tint"`
	Refraction         float64 `yaml:"refraction"`
	Aberration         float64 `yaml:"aberration"`
	Edge               float64 `yaml:"edge"`
	EdgeFrequency      float64 `yaml:"edge_frequency"`
	SpecularPrimary    float64 `yaml:"specular_primary"`
	ShininessPrimary   float64 `yaml:"shininess_primary"`
	SpecularSecondary  float64 `yaml:"specular_secondary"`
	ShininessSecondary float64 `yaml:"shininess_secondary"`
	Rim                float64 `yaml:"rim"`
	BaseAlpha          float64 `yaml:"base_alpha"`
	FresnelAlpha       float64 `yaml:"fresnel_alpha"`
	RimAlpha           float64 `yaml:"rim_alpha"`
	// Backdrop refracts whatever was drawn under the canvas instead of Tint.
	Backdrop bool `yaml:"backdrop"`
}

// MenuSpec is one menu entry.
type MenuSpec struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

// Default returns the built-in configuration: a three-entry menu on a
// 200x600 canvas.
func Default() Config {
	l := motion.DefaultLayout()
	t := motion.DefaultTuning()
	m := sdf.DefaultMaterial()
	return Config{
		Window: WindowSpec{
			Title:      "gooey",
			Width:      480,
			Height:     640,
			Background: Color{R: 0.08, G: 0.09, B: 0.12, A: 1},
		},
		Canvas: CanvasSpec{X: 240, Y: 20, Width: 200, Height: 600},
		View:   ViewSpec{CenterX: 0.95, CenterY: 1.4, Scale: 1.4},
		Layout: LayoutSpec{
			BaseX:              l.BaseX,
			BaseY:              l.BaseY,
			Spacing:            l.Spacing,
			OpenLead:           l.OpenLead,
			OpenStep:           l.OpenStep,
			Stagger:            l.Stagger,
			ParentOpenRadius:   l.ParentOpenRadius,
			ParentClosedRadius: l.ParentClosedRadius,
			ChildOpenRadius:    l.ChildOpenRadius,
		},
		Physics: PhysicsSpec{
			Open:            GainsSpec(t.Open),
			Close:           GainsSpec(t.Close),
			RadiusStiffness: t.RadiusStiffness,
			RadiusDamping:   t.RadiusDamping,
			TravelFactor:    t.TravelFactor,
		},
		Material: MaterialSpec{
			Blend:              sdf.DefaultBlend,
			IOR:                m.IOR,
			Tint:               Color{R: m.Tint.R, G: m.Tint.G, B: m.Tint.B, A: 1},
			Refraction:         m.Refraction,
			Aberration:         m.Aberration,
			Edge:               m.Edge,
			EdgeFrequency:      m.EdgeFrequency,
			SpecularPrimary:    m.SpecularPrimary,
			ShininessPrimary:   m.ShininessPrimary,
			SpecularSecondary:  m.SpecularSecondary,
			ShininessSecondary: m.ShininessSecondary,
			Rim:                m.Rim,
			BaseAlpha:          m.BaseAlpha,
			FresnelAlpha:       m.FresnelAlpha,
			RimAlpha:           m.RimAlpha,
		},
		Menu: []MenuSpec{
			{Icon: "⌂", Label: "Home"},
			{Icon: "☺", Label: "About"},
			{Icon: "@", Label: "Contact"},
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.View.Scale <= 0:
		return fmt.Errorf("%w: view.scale %v must be positive", ErrInvalid, c.View.Scale)
	case c.Material.Blend < 0:
		return fmt.Errorf("%w: material.blend %v is negative", ErrInvalid, c.Material.Blend)
	case c.Material.IOR <= 0:
		return fmt.Errorf("%w: material.ior %v must be positive", ErrInvalid, c.Material.IOR)
	case c.Physics.RadiusDamping < 0 || c.Physics.Open.DampingMin < 0 || c.Physics.Close.DampingMin < 0:
		return fmt.Errorf("%w: physics damping must be non-negative", ErrInvalid)
	}
	if err := c.MotionLayout().Validate(); err != nil {
		return fmt.Errorf("%w: layout: %w", ErrInvalid, err)
	}
	return nil
}

// MotionLayout converts the layout section. A zero count is derived from the
// number of menu entries.
func (c *Config) MotionLayout() motion.Layout {
	l := motion.LayoutForItems(len(c.Menu))
	if c.Layout.Count != 0 {
		l.Count = c.Layout.Count
	}
	s := c.Layout
	l.BaseX, l.BaseY, l.Spacing = s.BaseX, s.BaseY, s.Spacing
	l.OpenLead, l.OpenStep, l.Stagger = s.OpenLead, s.OpenStep, s.Stagger
	l.ParentOpenRadius = s.ParentOpenRadius
	l.ParentClosedRadius = s.ParentClosedRadius
	l.ChildOpenRadius = s.ChildOpenRadius
	return l
}

// Tuning converts the physics section.
func (c *Config) Tuning() motion.Tuning {
	p := c.Physics
	return motion.Tuning{
		Open:            motion.Gains(p.Open),
		Close:           motion.Gains(p.Close),
		RadiusStiffness: p.RadiusStiffness,
		RadiusDamping:   p.RadiusDamping,
		TravelFactor:    p.TravelFactor,
	}
}

// SDFMaterial converts the material section.
func (c *Config) SDFMaterial() sdf.Material {
	m := c.Material
	return sdf.Material{
		IOR:                m.IOR,
		Tint:               sdf.RGB{R: m.Tint.R, G: m.Tint.G, B: m.Tint.B},
		Refraction:         m.Refraction,
		Aberration:         m.Aberration,
		Edge:               m.Edge,
		EdgeFrequency:      m.EdgeFrequency,
		SpecularPrimary:    m.SpecularPrimary,
		ShininessPrimary:   m.ShininessPrimary,
		SpecularSecondary:  m.SpecularSecondary,
		ShininessSecondary: m.ShininessSecondary,
		Rim:                m.Rim,
		BaseAlpha:          m.BaseAlpha,
		FresnelAlpha:       m.FresnelAlpha,
		RimAlpha:           m.RimAlpha,
	}
}

// SDFView converts the view section.
func (c *Config) SDFView() sdf.View {
	return sdf.View{Center: sdf.Vec2{X: c.View.CenterX, Y: c.View.CenterY}, Scale: c.View.Scale}
}

// Color is a straight-alpha color written as "#RRGGBB" or "#RRGGBBAA".
type Color struct {
	R, G, B, A float64
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA"; the leading '#' is optional.
func ParseColor(v string) (Color, error) {
	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid color format: %s", v)
	}
	var ch [4]float64
	ch[3] = 1
	for i := 0; i < len(s)/2; i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %s: %w", v, err)
		}
		ch[i] = float64(n) / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func (c Color) String() string {
	b := func(v float64) uint8 { return uint8(min(max(v, 0), 1)*255 + 0.5) }
	return fmt.Sprintf("#%02X%02X%02X%02X", b(c.R), b(c.G), b(c.B), b(c.A))
}
