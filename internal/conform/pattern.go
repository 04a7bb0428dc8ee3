package conform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mj1618/a11y-conform/internal/platform"
)

// absentText is searched for in every document; no sample contains it.
const absentText = "ATG"

// TextMismatchError reports range text that differs from the expected text.
type TextMismatchError struct {
	Check    string
	Expected string
	Actual   string
}

func (e *TextMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", e.Check, e.Expected, e.Actual)
}

// VerifyDocumentText reads exactly as many characters as expected holds from
// the document range and compares them.
func VerifyDocumentText(sc *Context, pattern platform.TextPattern, expected string) error {
	sc.Step("document text")
	got, err := pattern.DocumentRange().GetText(utf8.RuneCountInString(expected))
	if err != nil {
		return fmt.Errorf("get document text: %w", err)
	}
	if got != expected {
		return &TextMismatchError{Check: "document text", Expected: expected, Actual: got}
	}
	return nil
}

// VerifySelection selects the whole document and checks that the selection
// reads back as the control value.
func VerifySelection(sc *Context, pattern platform.TextPattern, value platform.ValuePattern) error {
	sc.Step("select document")
	if pattern.SupportedTextSelection() == platform.SelectionNone {
		sc.Comment("selection not supported, skipped")
		return nil
	}
	if err := pattern.DocumentRange().Select(); err != nil {
		return fmt.Errorf("select document: %w", err)
	}
	sel, err := pattern.GetSelection()
	if err != nil {
		return fmt.Errorf("get selection: %w", err)
	}
	if len(sel) == 0 {
		return fmt.Errorf("get selection: no selected ranges after selecting the document")
	}
	text, err := sel[0].GetText(-1)
	if err != nil {
		return fmt.Errorf("get selection text: %w", err)
	}
	want, err := value.Value()
	if err != nil {
		return fmt.Errorf("read value: %w", err)
	}
	if got := strings.TrimSuffix(text, "\r\n"); got != want {
		return &TextMismatchError{Check: "selection", Expected: want, Actual: got}
	}
	return nil
}

// VerifyVisibleRange checks that the control reports a visible range and that
// the first one starts the document text.
func VerifyVisibleRange(sc *Context, pattern platform.TextPattern) error {
	sc.Step("visible ranges")
	ranges, err := pattern.GetVisibleRanges()
	if err != nil {
		return fmt.Errorf("get visible ranges: %w", err)
	}
	if len(ranges) == 0 {
		return fmt.Errorf("get visible ranges: none reported")
	}
	visible, err := ranges[0].GetText(-1)
	if err != nil {
		return fmt.Errorf("get visible text: %w", err)
	}
	doc, err := pattern.DocumentRange().GetText(-1)
	if err != nil {
		return fmt.Errorf("get document text: %w", err)
	}
	if !strings.HasPrefix(doc, visible) {
		return &TextMismatchError{Check: "visible range", Expected: doc, Actual: visible}
	}
	sc.Comment("%d visible characters", utf8.RuneCountInString(visible))
	return nil
}

// VerifyFindText searches the document for its own first half in both
// directions, with and without case folding, then for an upper-cased copy of
// that half and for text the document does not hold. Trailing line breaks
// are not searched. Wrong results are recorded on sc.
func VerifyFindText(sc *Context, pattern platform.TextPattern) error {
	sc.Step("find text")
	doc := pattern.DocumentRange()
	full, err := doc.GetText(-1)
	if err != nil {
		return fmt.Errorf("get document text: %w", err)
	}
	text := strings.TrimRight(full, "\r\n")
	if text == "" {
		sc.Comment("empty document, find text skipped")
		return nil
	}

	half := firstHalf(text)
	upper := upperGraphemes(half)
	for _, backward := range []bool{false, true} {
		for _, ignoreCase := range []bool{false, true} {
			found, err := findText(sc, doc, half, backward, ignoreCase)
			if err != nil {
				return err
			}
			if !found {
				sc.Discrepancy("FindText(%q, backward=%t, ignoreCase=%t): no match", half, backward, ignoreCase)
			}

			found, err = findText(sc, doc, upper, backward, ignoreCase)
			if err != nil {
				return err
			}
			if !found && (ignoreCase || upper == half) {
				sc.Discrepancy("FindText(%q, backward=%t, ignoreCase=%t): no match", upper, backward, ignoreCase)
			}

			found, err = findText(sc, doc, absentText, backward, ignoreCase)
			if err != nil {
				return err
			}
			if found && !containsText(text, absentText, ignoreCase) {
				sc.Discrepancy("FindText(%q, backward=%t, ignoreCase=%t): matched text the document does not hold", absentText, backward, ignoreCase)
			}
		}
	}
	return nil
}

// findText runs one search and checks that a match reads back as needle.
func findText(sc *Context, doc platform.TextRange, needle string, backward, ignoreCase bool) (bool, error) {
	r, err := doc.FindText(needle, backward, ignoreCase)
	if err != nil {
		sc.Discrepancy("FindText(%q, backward=%t, ignoreCase=%t): %v", needle, backward, ignoreCase, err)
		return false, nil
	}
	if r == nil {
		return false, nil
	}
	got, err := r.GetText(-1)
	if err != nil {
		return true, fmt.Errorf("get found text: %w", err)
	}
	if got != needle && !(ignoreCase && strings.EqualFold(got, needle)) {
		sc.Record(&TextMismatchError{
			Check:    fmt.Sprintf("FindText(backward=%t, ignoreCase=%t)", backward, ignoreCase),
			Expected: needle,
			Actual:   got,
		})
	}
	sc.Comment("FindText(%q, backward=%t, ignoreCase=%t) matched %q", needle, backward, ignoreCase, got)
	return true, nil
}

func containsText(text, needle string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.Contains(strings.ToUpper(text), strings.ToUpper(needle))
	}
	return strings.Contains(text, needle)
}

// firstHalf returns the first half of the graphemes of s, or s itself when it
// holds a single grapheme.
func firstHalf(s string) string {
	var parts []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		parts = append(parts, seg.Value())
	}
	n := len(parts) / 2
	if n == 0 {
		return s
	}
	return strings.Join(parts[:n], "")
}

// upperGraphemes upper-cases s one grapheme at a time, keeping graphemes
// whose upper case does not fold back to them.
func upperGraphemes(s string) string {
	var b strings.Builder
	seg := graphemes.FromString(s)
	for seg.Next() {
		g := seg.Value()
		if u := strings.ToUpper(g); strings.EqualFold(u, g) {
			g = u
		}
		b.WriteString(g)
	}
	return b.String()
}

// VerifyRangeFromPoint lays out the document, then asks for the range at
// points just inside the corners and at the center of el. Each must return a
// range within the document.
func VerifyRangeFromPoint(sc *Context, pattern platform.TextPattern, el platform.Element) error {
	sc.Step("range from point")
	doc := pattern.DocumentRange()
	rects, err := doc.GetBoundingRectangles()
	if err != nil {
		return fmt.Errorf("get bounding rectangles: %w", err)
	}
	sc.Comment("%d bounding rectangles", len(rects))
	b := el.Bounds()
	if b.Width < 3 || b.Height < 3 {
		sc.Comment("control bounds %dx%d too small, range from point skipped", b.Width, b.Height)
		return nil
	}
	for _, pt := range InsidePoints(b) {
		r, err := pattern.RangeFromPoint(pt)
		if err != nil {
			sc.Discrepancy("RangeFromPoint(%d,%d): %v", pt.X, pt.Y, err)
			continue
		}
		if r == nil {
			sc.Discrepancy("RangeFromPoint(%d,%d): no range", pt.X, pt.Y)
			continue
		}
		if err := expectWithin(r, doc); err != nil {
			sc.Discrepancy("RangeFromPoint(%d,%d): %v", pt.X, pt.Y, err)
		}
	}
	return nil
}

// InsidePoints returns points one pixel inside the top-left and bottom-right
// corners of b and its center.
func InsidePoints(b platform.Rect) []platform.Point {
	return []platform.Point{
		{X: b.X + 1, Y: b.Y + 1},
		{X: b.X + b.Width/2, Y: b.Y + b.Height/2},
		{X: b.X + b.Width - 1, Y: b.Y + b.Height - 1},
	}
}

// expectWithin checks that r starts at or after the start of doc and ends at
// or before its end.
func expectWithin(r, doc platform.TextRange) error {
	start, err := r.CompareEndpoints(platform.EndpointStart, doc, platform.EndpointStart)
	if err != nil {
		return err
	}
	end, err := r.CompareEndpoints(platform.EndpointEnd, doc, platform.EndpointEnd)
	if err != nil {
		return err
	}
	if start < 0 || end > 0 {
		return fmt.Errorf("range lies outside the document")
	}
	return nil
}
