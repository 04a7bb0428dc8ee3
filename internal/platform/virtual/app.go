package virtual

import (
	"fmt"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// Application is a running instance of a fixture.
type Application struct {
	root    *element
	menuBar *element
}

// Launcher opens fresh applications from fixtures.
type Launcher struct{}

// Launch builds a new application; instances share no state.
func (Launcher) Launch(opts platform.LaunchOptions) (platform.Application, error) {
	f, err := LoadFixture(opts.Fixture)
	if err != nil {
		return nil, err
	}
	app, err := New(f)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// New builds an application from a parsed fixture.
func New(f *Fixture) (*Application, error) {
	bounds := platform.Rect{Width: 800, Height: 600}
	if f.Bounds != "" {
		bounds, _ = platform.ParseRect(f.Bounds)
	}
	root := &element{kind: kindWindow, name: f.Name, class: "Window", enabled: true, bounds: bounds}
	app := &Application{root: root}

	if len(f.Menu) > 0 {
		app.menuBar = &element{kind: kindMenuBar, name: "Application", class: "MenuBar", enabled: true}
		root.addChild(app.menuBar)
		for _, item := range f.Menu {
			app.menuBar.addChild(buildMenuItem(item))
		}
	}

	for _, cs := range f.Controls {
		el, err := buildControl(cs)
		if err != nil {
			return nil, fmt.Errorf("control %q: %w", cs.ID, err)
		}
		root.addChild(el)
	}
	return app, nil
}

func buildMenuItem(item MenuItemSpec) *element {
	el := &element{
		kind:    kindMenuItem,
		name:    item.Name,
		class:   "MenuItem",
		autoID:  item.ID,
		enabled: !item.Disabled,
	}
	for _, child := range item.Items {
		el.addChild(buildMenuItem(child))
	}
	return el
}

func buildControl(cs ControlSpec) (*element, error) {
	class := cs.Class
	if class == "" {
		class = "Control"
	}
	el := &element{
		kind:    kindControl,
		name:    cs.Name,
		class:   class,
		autoID:  cs.ID,
		enabled: !cs.Disabled,
	}
	if cs.Bounds != "" {
		el.bounds, _ = platform.ParseRect(cs.Bounds)
	}
	if cs.Type == "button" {
		return el, nil
	}

	ctl, err := newTextControl(el, cs)
	if err != nil {
		return nil, err
	}
	for _, emb := range cs.Embedded {
		child := &element{
			kind:    kindControl,
			name:    emb.Name,
			class:   emb.Class,
			autoID:  emb.ID,
			enabled: true,
		}
		el.addChild(child)
		ctl.addEmbedded(child, emb.Offset)
	}
	ctl.rebuild()
	el.text = ctl
	return el, nil
}

func (a *Application) Root() platform.Element { return a.root }

func (a *Application) MenuBar() (platform.Element, error) {
	if a.menuBar == nil {
		return nil, fmt.Errorf("application %q has no menu bar: %w", a.root.name, platform.ErrInvalidOperation)
	}
	return a.menuBar, nil
}

func (a *Application) FindByAutomationID(id string) (platform.Element, error) {
	var found *element
	a.root.walk(func(e *element) bool {
		if e.autoID == id {
			found = e
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("element with automation id %q not found", id)
	}
	return found, nil
}
