// Package model holds serializable snapshots of a live element tree.
package model

import (
	"fmt"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// Element is one node of a snapshot.
type Element struct {
	ID           int       `yaml:"i"              json:"i"`             // Sequential integer ID
	Name         string    `yaml:"n,omitempty"    json:"n,omitempty"`   // Accessible name
	Class        string    `yaml:"c"              json:"c"`             // Class name
	AutomationID string    `yaml:"id,omitempty"   json:"id,omitempty"`  // Automation id
	Bounds       [4]int    `yaml:"b,flow"         json:"b"`             // [x, y, width, height]
	Enabled      *bool     `yaml:"e,omitempty"    json:"e,omitempty"`   // nil = enabled (omit); false = disabled
	Expandable   bool      `yaml:"x,omitempty"    json:"x,omitempty"`   // Still collapsed when the snapshot was taken
	Patterns     []string  `yaml:"p,flow,omitempty" json:"p,omitempty"` // Supported control patterns
	Children     []Element `yaml:"k,omitempty"    json:"k,omitempty"`   // Child elements
}

// SnapshotOptions controls Snapshot.
type SnapshotOptions struct {
	Expand   bool // expand enabled collapsed containers before descending
	MaxDepth int  // 0 = unlimited
}

const maxSnapshotElements = 1 << 16

// Snapshot copies the tree under root, numbering elements depth first from 1.
func Snapshot(root platform.Element, opts SnapshotOptions) (Element, error) {
	if root == nil {
		return Element{}, platform.ErrNullArgument
	}
	next := 0
	el, err := snapshot(root, opts, 1, &next)
	return el, err
}

func snapshot(el platform.Element, opts SnapshotOptions, depth int, next *int) (Element, error) {
	*next++
	if *next > maxSnapshotElements {
		return Element{}, fmt.Errorf("tree exceeds %d elements", maxSnapshotElements)
	}
	b := el.Bounds()
	out := Element{
		ID:           *next,
		Name:         el.Name(),
		Class:        el.ClassName(),
		AutomationID: el.AutomationID(),
		Bounds:       [4]int{b.X, b.Y, b.Width, b.Height},
	}
	if !el.IsEnabled() {
		disabled := false
		out.Enabled = &disabled
	}
	if _, ok := el.TextPattern(); ok {
		out.Patterns = append(out.Patterns, "text")
	}
	if _, ok := el.ValuePattern(); ok {
		out.Patterns = append(out.Patterns, "value")
	}

	if el.IsExpandable() {
		if !opts.Expand || !el.IsEnabled() {
			out.Expandable = true
			return out, nil
		}
		if err := el.Expand(); err != nil {
			return out, fmt.Errorf("expand %q: %w", el.Name(), err)
		}
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return out, nil
	}
	for child := el.FirstChild(); child != nil; child = child.NextSibling() {
		c, err := snapshot(child, opts, depth+1, next)
		if err != nil {
			return out, err
		}
		out.Children = append(out.Children, c)
	}
	return out, nil
}

// Label is the element's name, or its class in angle brackets when unnamed.
func (e Element) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return "<" + e.Class + ">"
}
