package conform

import (
	"fmt"
	"math"
	"strings"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// CollapseAtStart returns a clone of doc collapsed onto its Start endpoint.
func CollapseAtStart(doc platform.TextRange) (platform.TextRange, error) {
	text, err := doc.GetText(-1)
	if err != nil {
		return nil, fmt.Errorf("collapse at start: %w", err)
	}
	want := 0
	if text != "" {
		want = -1
	}
	r := doc.Clone()
	moved, err := r.MoveEndpointByUnit(platform.EndpointEnd, platform.UnitDocument, -1)
	if err != nil {
		return nil, fmt.Errorf("collapse at start: %w", err)
	}
	if moved != want {
		return nil, fmt.Errorf("collapse at start: moved End by %d documents, expected %d", moved, want)
	}
	if err := expectSameEndpoint(r, doc, platform.EndpointStart); err != nil {
		return nil, fmt.Errorf("collapse at start: %w", err)
	}
	return r, nil
}

// CollapseAtEnd returns a clone of doc collapsed onto its End endpoint.
// Trailing line breaks are not navigable content, so moving Start of a
// document that holds only line breaks may report 0 or 1 documents; either
// way the result must end up collapsed at End.
func CollapseAtEnd(doc platform.TextRange) (platform.TextRange, error) {
	text, err := doc.GetText(-1)
	if err != nil {
		return nil, fmt.Errorf("collapse at end: %w", err)
	}
	breaksOnly := text != "" && strings.TrimRight(text, "\r\n") == ""
	want := 0
	if text != "" && !breaksOnly {
		want = 1
	}
	r := doc.Clone()
	moved, err := r.MoveEndpointByUnit(platform.EndpointStart, platform.UnitDocument, 1)
	if err != nil {
		return nil, fmt.Errorf("collapse at end: %w", err)
	}
	switch {
	case breaksOnly && moved == 0:
		if err := r.MoveEndpointByRange(platform.EndpointStart, doc, platform.EndpointEnd); err != nil {
			return nil, fmt.Errorf("collapse at end: %w", err)
		}
	case breaksOnly && moved == 1:
	case moved != want:
		return nil, fmt.Errorf("collapse at end: moved Start by %d documents, expected %d", moved, want)
	}
	if err := expectSameEndpoint(r, doc, platform.EndpointEnd); err != nil {
		return nil, fmt.Errorf("collapse at end: %w", err)
	}
	cmp, err := r.CompareEndpoints(platform.EndpointStart, r, platform.EndpointEnd)
	if err != nil {
		return nil, fmt.Errorf("collapse at end: %w", err)
	}
	if cmp != 0 {
		return nil, fmt.Errorf("collapse at end: range is not degenerate (compare = %d)", cmp)
	}
	return r, nil
}

func expectSameEndpoint(r, doc platform.TextRange, ep platform.Endpoint) error {
	cmp, err := r.CompareEndpoints(ep, doc, ep)
	if err != nil {
		return err
	}
	if cmp != 0 {
		return fmt.Errorf("%s endpoint differs from the document %s (compare = %d)", ep, ep, cmp)
	}
	return nil
}

type collapseFunc func(platform.TextRange) (platform.TextRange, error)

// endpointMove is one MoveEndpointByUnit check: collapse, then move ep by count.
type endpointMove struct {
	from     string
	collapse collapseFunc
	ep       platform.Endpoint
	count    int
}

// rangeMove is one Move check: collapse, then move the whole range by count.
type rangeMove struct {
	from     string
	collapse collapseFunc
	count    int
}

// VerifyNavigation checks MoveEndpointByUnit, Move and ExpandToEnclosingUnit
// against counts, then checks that moving away from the document in the
// unproductive direction moves nothing. Count mismatches are recorded on sc
// and returned together as a *Report; an empty expansion or a failure to
// build a collapsed range is returned immediately.
func VerifyNavigation(sc *Context, doc platform.TextRange, counts UnitCountTable) error {
	negated := counts.Negate()
	var zero UnitCountTable

	sc.Step("MoveEndpointByUnit with extreme counts")
	productive := []endpointMove{
		{"start", CollapseAtStart, platform.EndpointStart, math.MaxInt},
		{"start", CollapseAtStart, platform.EndpointEnd, math.MaxInt},
		{"end", CollapseAtEnd, platform.EndpointStart, math.MinInt},
		{"end", CollapseAtEnd, platform.EndpointEnd, math.MinInt},
	}
	for _, m := range productive {
		want := counts
		if m.count < 0 {
			want = negated
		}
		if err := checkEndpointMove(sc, doc, m, want); err != nil {
			return err
		}
	}

	sc.Step("Move with extreme counts")
	for _, m := range []rangeMove{
		{"start", CollapseAtStart, math.MaxInt},
		{"end", CollapseAtEnd, math.MinInt},
	} {
		want := counts
		if m.count < 0 {
			want = negated
		}
		if err := checkRangeMove(sc, doc, m, want); err != nil {
			return err
		}
	}

	sc.Step("ExpandToEnclosingUnit walk")
	if err := checkExpandWalk(sc, doc, counts); err != nil {
		return err
	}

	sc.Step("moves past the document boundary")
	for _, m := range []endpointMove{
		{"start", CollapseAtStart, platform.EndpointStart, math.MinInt},
		{"start", CollapseAtStart, platform.EndpointEnd, math.MinInt},
		{"end", CollapseAtEnd, platform.EndpointStart, math.MaxInt},
		{"end", CollapseAtEnd, platform.EndpointEnd, math.MaxInt},
	} {
		if err := checkEndpointMove(sc, doc, m, zero); err != nil {
			return err
		}
	}
	for _, m := range []rangeMove{
		{"start", CollapseAtStart, math.MinInt},
		{"end", CollapseAtEnd, math.MaxInt},
	} {
		if err := checkRangeMove(sc, doc, m, zero); err != nil {
			return err
		}
	}
	return sc.Err()
}

func checkEndpointMove(sc *Context, doc platform.TextRange, m endpointMove, want UnitCountTable) error {
	var observed UnitCountTable
	for _, unit := range platform.TextUnits {
		r, err := m.collapse(doc)
		if err != nil {
			return err
		}
		moved, err := r.MoveEndpointByUnit(m.ep, unit, m.count)
		if err != nil {
			sc.Discrepancy("MoveEndpointByUnit(%s, %s, %s) from %s: %v", m.ep, unit, countName(m.count), m.from, err)
			continue
		}
		observed[unit] = moved
	}
	check := fmt.Sprintf("MoveEndpointByUnit(%s, %s) from %s", m.ep, countName(m.count), m.from)
	compareCounts(sc, check, want, observed)
	return nil
}

func checkRangeMove(sc *Context, doc platform.TextRange, m rangeMove, want UnitCountTable) error {
	var observed UnitCountTable
	for _, unit := range platform.TextUnits {
		r, err := m.collapse(doc)
		if err != nil {
			return err
		}
		moved, err := r.Move(unit, m.count)
		if err != nil {
			sc.Discrepancy("Move(%s, %s) from %s: %v", unit, countName(m.count), m.from, err)
			continue
		}
		observed[unit] = moved
	}
	check := fmt.Sprintf("Move(%s) from %s", countName(m.count), m.from)
	compareCounts(sc, check, want, observed)
	return nil
}

// checkExpandWalk expands a start-collapsed range to each successive unit,
// advancing Start to the previous End, until End reaches the document end.
func checkExpandWalk(sc *Context, doc platform.TextRange, counts UnitCountTable) error {
	var observed UnitCountTable
	for _, unit := range platform.TextUnits {
		r, err := CollapseAtStart(doc)
		if err != nil {
			return err
		}
		n, err := walkUnits(sc, r, doc, unit)
		if err != nil {
			return err
		}
		observed[unit] = n
	}
	compareCounts(sc, "ExpandToEnclosingUnit walk", counts, observed)
	return nil
}

func walkUnits(sc *Context, r, doc platform.TextRange, unit platform.TextUnit) (int, error) {
	for n := 0; n < maxUnitSteps; n++ {
		cmp, err := r.CompareEndpoints(platform.EndpointEnd, doc, platform.EndpointEnd)
		if err != nil {
			sc.Discrepancy("ExpandToEnclosingUnit(%s) walk after %d units: %v", unit, n, err)
			return n, nil
		}
		if cmp >= 0 {
			return n, nil
		}
		if err := r.ExpandToEnclosingUnit(unit); err != nil {
			sc.Discrepancy("ExpandToEnclosingUnit(%s) after %d units: %v", unit, n, err)
			return n, nil
		}
		text, err := r.GetText(-1)
		if err != nil {
			sc.Discrepancy("ExpandToEnclosingUnit(%s) after %d units: get text: %v", unit, n, err)
			return n, nil
		}
		if text == "" {
			return n, fmt.Errorf("ExpandToEnclosingUnit(%s) produced an empty range after %d units", unit, n)
		}
		if err := r.MoveEndpointByRange(platform.EndpointStart, r, platform.EndpointEnd); err != nil {
			sc.Discrepancy("ExpandToEnclosingUnit(%s) after %d units: advance: %v", unit, n, err)
			return n, nil
		}
	}
	sc.Discrepancy("ExpandToEnclosingUnit(%s): document end not reached after %d units", unit, maxUnitSteps)
	return maxUnitSteps, nil
}

func countName(n int) string {
	switch n {
	case math.MaxInt:
		return "MaxInt"
	case math.MinInt:
		return "MinInt"
	}
	return fmt.Sprint(n)
}
