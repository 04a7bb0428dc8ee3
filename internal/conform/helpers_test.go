package conform

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/platform/virtual"
)

const singleLine = "String 1 String 2 String 3"

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewContext(logger), &buf
}

func launch(t *testing.T) platform.Application {
	t.Helper()
	app, err := virtual.Launcher{}.Launch(platform.LaunchOptions{})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	return app
}

// textControl finds id in a fresh default application and sets its value
// unless value is nil.
func textControl(t *testing.T, id string, value *string) (platform.Element, platform.TextPattern, platform.ValuePattern) {
	t.Helper()
	app := launch(t)
	el, err := app.FindByAutomationID(id)
	if err != nil {
		t.Fatal(err)
	}
	tp, ok := el.TextPattern()
	if !ok {
		t.Fatalf("%s has no text pattern", id)
	}
	vp, ok := el.ValuePattern()
	if !ok {
		t.Fatalf("%s has no value pattern", id)
	}
	if value != nil {
		if err := vp.SetValue(*value); err != nil {
			t.Fatalf("set value: %v", err)
		}
	}
	return el, tp, vp
}

func ptr(s string) *string { return &s }

// wrappedRange forwards to a real range; tests override single operations to
// simulate faulty providers.
type wrappedRange struct {
	platform.TextRange
	moveEndpoint func(r platform.TextRange, ep platform.Endpoint, unit platform.TextUnit, count int) (int, error)
	expand       func(r platform.TextRange, unit platform.TextUnit) error
	find         func(r platform.TextRange, attr platform.AttributeID, value any, backward bool) (platform.TextRange, error)
	findText     func(r platform.TextRange, text string, backward, ignoreCase bool) (platform.TextRange, error)
}

func unwrap(r platform.TextRange) platform.TextRange {
	if w, ok := r.(*wrappedRange); ok {
		return w.TextRange
	}
	return r
}

func (w *wrappedRange) Clone() platform.TextRange {
	c := *w
	c.TextRange = w.TextRange.Clone()
	return &c
}

func (w *wrappedRange) Compare(other platform.TextRange) (bool, error) {
	return w.TextRange.Compare(unwrap(other))
}

func (w *wrappedRange) CompareEndpoints(ep platform.Endpoint, target platform.TextRange, targetEp platform.Endpoint) (int, error) {
	return w.TextRange.CompareEndpoints(ep, unwrap(target), targetEp)
}

func (w *wrappedRange) MoveEndpointByRange(ep platform.Endpoint, target platform.TextRange, targetEp platform.Endpoint) error {
	return w.TextRange.MoveEndpointByRange(ep, unwrap(target), targetEp)
}

func (w *wrappedRange) MoveEndpointByUnit(ep platform.Endpoint, unit platform.TextUnit, count int) (int, error) {
	if w.moveEndpoint != nil {
		return w.moveEndpoint(w.TextRange, ep, unit, count)
	}
	return w.TextRange.MoveEndpointByUnit(ep, unit, count)
}

func (w *wrappedRange) ExpandToEnclosingUnit(unit platform.TextUnit) error {
	if w.expand != nil {
		return w.expand(w.TextRange, unit)
	}
	return w.TextRange.ExpandToEnclosingUnit(unit)
}

func (w *wrappedRange) FindAttribute(attr platform.AttributeID, value any, backward bool) (platform.TextRange, error) {
	if w.find != nil {
		return w.find(w.TextRange, attr, value, backward)
	}
	return w.TextRange.FindAttribute(attr, value, backward)
}

func (w *wrappedRange) FindText(text string, backward, ignoreCase bool) (platform.TextRange, error) {
	if w.findText != nil {
		return w.findText(w.TextRange, text, backward, ignoreCase)
	}
	return w.TextRange.FindText(text, backward, ignoreCase)
}

// docPattern serves doc as the document range of a real pattern.
type docPattern struct {
	platform.TextPattern
	doc platform.TextRange
}

func (p docPattern) DocumentRange() platform.TextRange { return p.doc }
