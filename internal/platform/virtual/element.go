package virtual

import (
	"fmt"

	"github.com/mj1618/a11y-conform/internal/platform"
)

type elementKind int

const (
	kindWindow elementKind = iota
	kindMenuBar
	kindMenuItem
	kindControl
)

// element is a node of the virtual accessibility tree.
type element struct {
	kind     elementKind
	name     string
	class    string
	autoID   string
	enabled  bool
	bounds   platform.Rect
	parent   *element
	children []*element

	expanded bool
	text     *textControl
}

func (e *element) Name() string         { return e.name }
func (e *element) ClassName() string    { return e.class }
func (e *element) AutomationID() string { return e.autoID }
func (e *element) IsEnabled() bool      { return e.enabled }
func (e *element) Bounds() platform.Rect {
	return e.bounds
}

// IsExpandable reports a collapsed menu item that has a submenu.
func (e *element) IsExpandable() bool {
	return e.kind == kindMenuItem && len(e.children) > 0 && !e.expanded
}

func (e *element) Expand() error {
	if e.kind != kindMenuItem || len(e.children) == 0 {
		return fmt.Errorf("expand %q: %w", e.name, platform.ErrInvalidOperation)
	}
	if !e.enabled {
		return fmt.Errorf("expand %q: %w", e.name, platform.ErrElementNotEnabled)
	}
	e.expanded = true
	return nil
}

// FirstChild hides submenu items until the menu item is expanded.
func (e *element) FirstChild() platform.Element {
	if len(e.children) == 0 || (e.kind == kindMenuItem && !e.expanded) {
		return nil
	}
	return e.children[0]
}

func (e *element) NextSibling() platform.Element {
	if e.parent == nil {
		return nil
	}
	siblings := e.parent.children
	for i, s := range siblings {
		if s == e && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

func (e *element) TextPattern() (platform.TextPattern, bool) {
	if e.text == nil || e.text.password {
		return nil, false
	}
	return e.text, true
}

func (e *element) ValuePattern() (platform.ValuePattern, bool) {
	if e.text == nil {
		return nil, false
	}
	return e.text, true
}

func (e *element) addChild(child *element) {
	child.parent = e
	e.children = append(e.children, child)
}

// walk visits e and every descendant, including collapsed submenus.
func (e *element) walk(fn func(*element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
