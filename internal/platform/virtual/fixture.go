package virtual

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/mj1618/a11y-conform/internal/platform"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture describes a target application: its menu tree and controls.
type Fixture struct {
	Name     string         `yaml:"name"`
	Bounds   string         `yaml:"bounds"`
	Menu     []MenuItemSpec `yaml:"menu"`
	Controls []ControlSpec  `yaml:"controls"`
}

// MenuItemSpec is one menu item; items with children start collapsed.
type MenuItemSpec struct {
	Name     string         `yaml:"name"`
	ID       string         `yaml:"id"`
	Disabled bool           `yaml:"disabled"`
	Items    []MenuItemSpec `yaml:"items"`
}

// ControlSpec describes a control. Type "text" (default) exposes value and
// text patterns; "button" exposes neither.
type ControlSpec struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Class       string         `yaml:"class"`
	Type        string         `yaml:"type"`
	Bounds      string         `yaml:"bounds"`
	Text        string         `yaml:"text"`
	Rich        bool           `yaml:"rich"` // implicit terminating paragraph break
	ReadOnly    bool           `yaml:"read_only"`
	Disabled    bool           `yaml:"disabled"`
	Password    bool           `yaml:"password"`
	MaxLength   int            `yaml:"max_length"`
	Numeric     bool           `yaml:"numeric"` // accepts decimal digits only
	Unsupported []string       `yaml:"unsupported"`
	Attributes  map[string]any `yaml:"attributes"`
	Runs        []RunSpec      `yaml:"runs"`
	Embedded    []EmbeddedSpec `yaml:"embedded"`
}

// RunSpec overrides attributes over [Start, End) character positions.
type RunSpec struct {
	Start      int            `yaml:"start"`
	End        int            `yaml:"end"`
	Attributes map[string]any `yaml:"attributes"`
}

// EmbeddedSpec is a child control hosted inside a text control at Offset.
type EmbeddedSpec struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Class  string `yaml:"class"`
	Offset int    `yaml:"offset"`
}

// LoadFixture reads a fixture from path, or the embedded default when path is empty.
func LoadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture: %w", err)
		}
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid fixture YAML: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	if f.Name == "" {
		return errors.New("fixture: name is required")
	}
	if f.Bounds != "" {
		if _, err := platform.ParseRect(f.Bounds); err != nil {
			return fmt.Errorf("fixture: %w", err)
		}
	}
	for i, c := range f.Controls {
		if c.Type != "" && c.Type != "text" && c.Type != "button" {
			return fmt.Errorf("fixture: control %d: unknown type %q", i, c.Type)
		}
		if c.Bounds != "" {
			if _, err := platform.ParseRect(c.Bounds); err != nil {
				return fmt.Errorf("fixture: control %q: %w", c.ID, err)
			}
		}
		for _, name := range c.Unsupported {
			if _, ok := platform.AttributeByName(name); !ok {
				return fmt.Errorf("fixture: control %q: unknown attribute %q", c.ID, name)
			}
		}
		if _, err := parseAttributes(c.Attributes); err != nil {
			return fmt.Errorf("fixture: control %q: %w", c.ID, err)
		}
		for _, r := range c.Runs {
			if r.Start < 0 || r.End < r.Start {
				return fmt.Errorf("fixture: control %q: invalid run [%d,%d)", c.ID, r.Start, r.End)
			}
			if _, err := parseAttributes(r.Attributes); err != nil {
				return fmt.Errorf("fixture: control %q: %w", c.ID, err)
			}
		}
	}
	return nil
}

func parseAttributes(raw map[string]any) (map[platform.AttributeID]any, error) {
	out := make(map[platform.AttributeID]any, len(raw))
	for name, v := range raw {
		d, ok := platform.AttributeByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown attribute %q", name)
		}
		val, err := d.Parse(v)
		if err != nil {
			return nil, err
		}
		out[d.ID] = val
	}
	return out, nil
}
