package scenario

import (
	"errors"
	"fmt"

	"github.com/mj1618/a11y-conform/internal/conform"
	"github.com/mj1618/a11y-conform/internal/platform"
)

func init() {
	for _, s := range builtins {
		Default.Register(s)
	}
}

var builtins = []*Scenario{
	{
		Name:        "menu-structure",
		Description: "Compare the menu bar against expected structure markup, expanding menus as they are reached",
		Inputs:      []string{"structure"},
		Run:         runMenuStructure,
	},
	{
		Name:        "properties",
		Description: "Walk the whole element tree checking names, class names and automation id uniqueness",
		Run:         runProperties,
	},
	{
		Name:        "text-unit-counts",
		Description: "Count every text unit of the control's document and check the counts are repeatable",
		Inputs:      []string{"control", "sample"},
		Run:         runUnitCounts,
	},
	{
		Name:        "range-navigation",
		Description: "Check MoveEndpointByUnit, Move and ExpandToEnclosingUnit against the unit counts",
		Inputs:      []string{"control", "sample"},
		Run:         runRangeNavigation,
	},
	{
		Name:        "text-attributes",
		Description: "Check every text attribute with matching and non-matching FindAttribute searches",
		Inputs:      []string{"control", "sample"},
		Run:         runTextAttributes,
	},
	{
		Name:        "text-pattern",
		Description: "Check document text, whole-document selection, visible ranges, text search and hit testing",
		Inputs:      []string{"control", "sample"},
		Run:         runTextPattern,
	},
	{
		Name:        "range-errors",
		Description: "Feed invalid arguments to range and text pattern operations and check the error kinds",
		Inputs:      []string{"control"},
		Run:         runRangeErrors,
	},
	{
		Name:        "value-errors",
		Description: "Check that read-only, disabled, password, length-limited and numeric-only controls refuse invalid value access",
		Inputs:      []string{"limited", "numeric"},
		Run:         runValueErrors,
	},
}

var errNoControl = errors.New("no control selected (set --control)")

// textTarget is the control under test and its patterns.
type textTarget struct {
	el    platform.Element
	text  platform.TextPattern
	value platform.ValuePattern
}

// prepare resolves the control under test and writes the selected sample to it.
func prepare(sc *conform.Context, app platform.Application, args Args) (*textTarget, error) {
	if args.Control == "" {
		return nil, errNoControl
	}
	el, err := app.FindByAutomationID(args.Control)
	if err != nil {
		return nil, err
	}
	tp, ok := el.TextPattern()
	if !ok {
		return nil, fmt.Errorf("control %q does not support the text pattern: %w", args.Control, platform.ErrInvalidOperation)
	}
	vp, _ := el.ValuePattern()
	if args.Sample != SampleNone {
		if vp == nil {
			return nil, fmt.Errorf("control %q has no value pattern to write the %s sample", args.Control, args.Sample)
		}
		sc.Step("set %s sample on %s", args.Sample, args.Control)
		if err := vp.SetValue(args.Sample.Text()); err != nil {
			return nil, fmt.Errorf("set sample: %w", err)
		}
	}
	return &textTarget{el: el, text: tp, value: vp}, nil
}

func runMenuStructure(sc *conform.Context, app platform.Application, args Args) error {
	if args.Structure == "" {
		return errors.New("no expected structure given (set --structure)")
	}
	expected, err := conform.ParseStructure(args.Structure)
	if err != nil {
		return err
	}
	bar, err := app.MenuBar()
	if err != nil {
		return err
	}
	// The markup root wraps the menu bar's items.
	return conform.VerifyStructure(sc, expected.FirstChild, bar.FirstChild())
}

func runProperties(sc *conform.Context, app platform.Application, _ Args) error {
	return conform.WalkProperties(sc, app.Root())
}

func runUnitCounts(sc *conform.Context, app platform.Application, args Args) error {
	t, err := prepare(sc, app, args)
	if err != nil {
		return err
	}
	doc := t.text.DocumentRange()
	sc.Step("count units")
	first, err := conform.CountAll(doc)
	if err != nil {
		return err
	}
	sc.Comment("unit counts: %s", first)
	sc.Step("count units again")
	second, err := conform.CountAll(doc)
	if err != nil {
		return err
	}
	if second != first {
		sc.Discrepancy("unit counts changed between runs: first %s, second %s", first, second)
	}
	return nil
}

func runRangeNavigation(sc *conform.Context, app platform.Application, args Args) error {
	t, err := prepare(sc, app, args)
	if err != nil {
		return err
	}
	doc := t.text.DocumentRange()
	counts, err := conform.CountAll(doc)
	if err != nil {
		return err
	}
	sc.Comment("unit counts: %s", counts)
	return conform.VerifyNavigation(sc, doc, counts)
}

func runTextAttributes(sc *conform.Context, app platform.Application, args Args) error {
	t, err := prepare(sc, app, args)
	if err != nil {
		return err
	}
	return conform.VerifyAttributes(sc, t.text.DocumentRange())
}

func runTextPattern(sc *conform.Context, app platform.Application, args Args) error {
	t, err := prepare(sc, app, args)
	if err != nil {
		return err
	}
	if t.value != nil {
		expected := args.Sample.Text()
		if args.Sample == SampleNone {
			if expected, err = t.value.Value(); err != nil {
				return fmt.Errorf("read value: %w", err)
			}
		}
		if err := conform.VerifyDocumentText(sc, t.text, expected); err != nil {
			return err
		}
		if err := conform.VerifySelection(sc, t.text, t.value); err != nil {
			return err
		}
	}
	if err := conform.VerifyVisibleRange(sc, t.text); err != nil {
		return err
	}
	if err := conform.VerifyFindText(sc, t.text); err != nil {
		return err
	}
	return conform.VerifyRangeFromPoint(sc, t.text, t.el)
}

func runRangeErrors(sc *conform.Context, app platform.Application, args Args) error {
	t, err := prepare(sc, app, args)
	if err != nil {
		return err
	}
	foreign := foreignRange(app, t.el)
	if foreign == nil {
		sc.Comment("no second text control found, cross-container cases skipped")
	}
	cases := conform.RangeCases(t.text, foreign)
	cases = append(cases, conform.PatternCases(t.text, t.el)...)
	return conform.RunCases(sc, cases)
}

// foreignRange returns the document range of the first text control other than self.
func foreignRange(app platform.Application, self platform.Element) platform.TextRange {
	var found platform.TextRange
	walk(app.Root(), func(el platform.Element) bool {
		if el == self {
			return true
		}
		if tp, ok := el.TextPattern(); ok {
			found = tp.DocumentRange()
			return false
		}
		return true
	})
	return found
}

// runValueErrors classifies every control with a value pattern by its state.
// A control without a text pattern is treated as a password control.
func runValueErrors(sc *conform.Context, app platform.Application, args Args) error {
	var readOnly, disabled, password platform.ValuePattern
	walk(app.Root(), func(el platform.Element) bool {
		vp, ok := el.ValuePattern()
		if !ok {
			return true
		}
		_, hasText := el.TextPattern()
		switch {
		case !el.IsEnabled():
			if disabled == nil {
				disabled = vp
			}
		case vp.IsReadOnly():
			if readOnly == nil {
				readOnly = vp
			}
		case !hasText:
			if password == nil {
				password = vp
			}
		}
		return true
	})
	limited, err := namedValuePattern(app, args.Limited)
	if err != nil {
		return err
	}
	numeric, err := namedValuePattern(app, args.Numeric)
	if err != nil {
		return err
	}
	cases := conform.ValueCases(readOnly, disabled, password, limited, numeric)
	if len(cases) == 0 {
		return errors.New("no read-only, disabled, password, length-limited or numeric-only control found")
	}
	return conform.RunCases(sc, cases)
}

// namedValuePattern returns the value pattern of the control with automation
// id, or nil when id is empty.
func namedValuePattern(app platform.Application, id string) (platform.ValuePattern, error) {
	if id == "" {
		return nil, nil
	}
	el, err := app.FindByAutomationID(id)
	if err != nil {
		return nil, err
	}
	vp, ok := el.ValuePattern()
	if !ok {
		return nil, fmt.Errorf("control %q does not support the value pattern: %w", id, platform.ErrInvalidOperation)
	}
	return vp, nil
}

// walk visits el and its descendants depth first without expanding anything.
func walk(el platform.Element, fn func(platform.Element) bool) bool {
	for ; el != nil; el = el.NextSibling() {
		if !fn(el) {
			return false
		}
		if !walk(el.FirstChild(), fn) {
			return false
		}
	}
	return true
}
