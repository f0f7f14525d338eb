// Package preset maps named parameter sets onto resize operations.
// Built-ins cover the common asset shapes; a YAML file can add or
// override entries.
package preset

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
)

// Preset is one named operation: an op tag plus the subset of parameters
// that op reads, mirroring the CLI flags of the matching verb.
type Preset struct {
	Name       string `yaml:"name"`
	Op         string `yaml:"op"`                 // limit, fit, fill, pad
	Geometry   string `yaml:"geometry,omitempty"` // limit only, e.g. "1920x1080"
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	Gravity    string `yaml:"gravity,omitempty"`
	Background string `yaml:"background,omitempty"`
	Format     string `yaml:"format,omitempty"`
	Quality    int    `yaml:"quality,omitempty"`
}

// Built-in presets.
var builtins = map[string]Preset{
	"thumbnail": {
		Name: "thumbnail", Op: "fill",
		Width: 150, Height: 150,
		Quality: 82,
	},
	"avatar": {
		Name: "avatar", Op: "fill",
		Width: 256, Height: 256,
		Quality: 85,
	},
	"banner": {
		Name: "banner", Op: "fit",
		Width: 1280, Height: 640,
		Quality: 85,
	},
	"og": {
		Name: "og", Op: "pad",
		Width: 1200, Height: 630,
		Background: "white",
		Format:     "jpeg",
		Quality:    85,
	},
	"web": {
		Name: "web", Op: "limit",
		Geometry: "1920x1080",
		Quality:  82,
	},
}

// Table holds the effective preset set: built-ins plus file overrides.
type Table struct {
	presets map[string]Preset
}

// NewTable returns a table with only the built-in presets.
func NewTable() *Table {
	t := &Table{presets: make(map[string]Preset, len(builtins))}
	for name, p := range builtins {
		t.presets[name] = p
	}
	return t
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile merges presets from a YAML file over the current table.
// Entries with the same name replace built-ins.
func (t *Table) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read presets: %w", err)
	}
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse presets: %w", err)
	}
	for _, p := range f.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset without a name in %s", path)
		}
		t.presets[p.Name] = p
	}
	return nil
}

// Get returns a preset by name.
func (t *Table) Get(name string) (Preset, bool) {
	p, ok := t.presets[name]
	return p, ok
}

// Names returns all preset names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.presets))
	for n := range t.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Spec expands the preset into a resolver spec.
func (p Preset) Spec() (geometry.Spec, error) {
	switch p.Op {
	case "limit":
		geom := p.Geometry
		if geom == "" {
			geom = fmt.Sprintf("%dx%d", p.Width, p.Height)
		}
		w, h, err := geometry.ParseGeometry(geom)
		if err != nil {
			return geometry.Spec{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		return geometry.Spec{Mode: geometry.Limit, Width: w, Height: h}, nil

	case "fit":
		return geometry.Spec{
			Mode: geometry.Fit,
			Box:  geometry.Size{W: p.Width, H: p.Height},
		}, nil

	case "fill":
		g, err := geometry.ParseGravity(p.Gravity)
		if err != nil {
			return geometry.Spec{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		return geometry.Spec{
			Mode:    geometry.Fill,
			Box:     geometry.Size{W: p.Width, H: p.Height},
			Gravity: g,
		}, nil

	case "pad":
		g, err := geometry.ParseGravity(p.Gravity)
		if err != nil {
			return geometry.Spec{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		bg, err := geometry.ParseBackground(p.Background)
		if err != nil {
			return geometry.Spec{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		return geometry.Spec{
			Mode:       geometry.Pad,
			Box:        geometry.Size{W: p.Width, H: p.Height},
			Gravity:    g,
			Background: bg,
		}, nil

	default:
		return geometry.Spec{}, fmt.Errorf("preset %s: unknown op %q", p.Name, p.Op)
	}
}
