package conform

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mj1618/a11y-conform/internal/platform"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name    string
		control string
		value   string
	}{
		{"rich", "RichTextBox1", singleLine},
		{"plain", "TextBox1", singleLine},
		{"empty", "TextBox1", ""},
		{"line breaks only", "TextBox1", "\r\n"},
		{"rich line breaks only", "RichTextBox1", "\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, tt.control, ptr(tt.value))
			doc := tp.DocumentRange()

			start, err := CollapseAtStart(doc)
			if err != nil {
				t.Fatal(err)
			}
			if text, _ := start.GetText(-1); text != "" {
				t.Errorf("start-collapsed range has text %q", text)
			}
			end, err := CollapseAtEnd(doc)
			if err != nil {
				t.Fatal(err)
			}
			if cmp, _ := end.CompareEndpoints(platform.EndpointStart, doc, platform.EndpointEnd); cmp != 0 {
				t.Errorf("end-collapsed range does not start at the document end (compare = %d)", cmp)
			}
		})
	}
}

// A provider may treat a document of line breaks as empty and refuse to move
// Start; the range is still collapsed at End.
func TestCollapseAtEnd_LineBreaksNotNavigable(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"line breaks only", "\r\n\r\n", ""},
		{"text", "text\r\n", "moved Start by 0 documents, expected 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, "TextBox1", ptr(tt.value))
			real := tp.DocumentRange()
			doc := &wrappedRange{
				TextRange: real,
				moveEndpoint: func(r platform.TextRange, ep platform.Endpoint, unit platform.TextUnit, count int) (int, error) {
					if unit == platform.UnitDocument {
						return 0, nil
					}
					return r.MoveEndpointByUnit(ep, unit, count)
				},
			}
			r, err := CollapseAtEnd(doc)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cmp, _ := r.CompareEndpoints(platform.EndpointStart, real, platform.EndpointEnd); cmp != 0 {
				t.Errorf("Start is not at the document end (compare = %d)", cmp)
			}
		})
	}
}

func TestCollapseAtEnd_NotDegenerate(t *testing.T) {
	_, tp, _ := textControl(t, "TextBox1", ptr(singleLine))
	doc := &wrappedRange{
		TextRange: tp.DocumentRange(),
		moveEndpoint: func(r platform.TextRange, ep platform.Endpoint, unit platform.TextUnit, count int) (int, error) {
			return 1, nil
		},
	}
	_, err := CollapseAtEnd(doc)
	if err == nil || !strings.Contains(err.Error(), "not degenerate") {
		t.Fatalf("got %v, want a degenerate range error", err)
	}
}

// The character count of a single-line document and the saturation of Move
// at both ends of it.
func TestMove_SingleLineDocument(t *testing.T) {
	_, tp, _ := textControl(t, "RichTextBox1", ptr(singleLine))
	doc := tp.DocumentRange()
	counts, err := CountAll(doc)
	if err != nil {
		t.Fatal(err)
	}
	if counts[platform.UnitCharacter] != 27 || counts[platform.UnitWord] != 6 {
		t.Fatalf("counts: got %v", counts)
	}
	r, _ := CollapseAtStart(doc)
	if n, _ := r.Move(platform.UnitCharacter, math.MaxInt); n != 27 {
		t.Errorf("Move from start: got %d, want 27", n)
	}
	if n, _ := r.Move(platform.UnitCharacter, math.MaxInt); n != 0 {
		t.Errorf("Move from end: got %d, want 0", n)
	}
}

func TestVerifyNavigation(t *testing.T) {
	tests := []struct {
		name    string
		control string
		value   string
	}{
		{"single line rich", "RichTextBox1", singleLine},
		{"single line plain", "TextBox1", singleLine},
		{"multi line", "TextBox1", "line one\r\nline two\r\n\r\nlast"},
		{"paragraph separators", "RichTextBox1", "first\u2029second\u2028still second"},
		{"combining marks", "TextBox1", "café naïve"},
		{"empty", "TextBox1", ""},
		{"line breaks only", "TextBox1", "\r\n"},
		{"rich line breaks only", "RichTextBox1", "\r\n"},
		{"trailing line breaks", "TextBox1", "text\r\n\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, tt.control, ptr(tt.value))
			doc := tp.DocumentRange()
			counts, err := CountAll(doc)
			if err != nil {
				t.Fatal(err)
			}
			sc, _ := newTestContext(t)
			if err := VerifyNavigation(sc, doc, counts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sc.Steps() != 4 {
				t.Errorf("steps: got %d, want 4", sc.Steps())
			}
		})
	}
}

func TestVerifyNavigation_ReportsEveryMismatch(t *testing.T) {
	_, tp, _ := textControl(t, "RichTextBox1", ptr(singleLine))
	real := tp.DocumentRange()
	counts, _ := CountAll(real)

	doc := &wrappedRange{
		TextRange: real,
		moveEndpoint: func(r platform.TextRange, ep platform.Endpoint, unit platform.TextUnit, count int) (int, error) {
			n, err := r.MoveEndpointByUnit(ep, unit, count)
			if unit == platform.UnitWord && n > 0 {
				n--
			}
			return n, err
		},
	}
	sc, _ := newTestContext(t)
	err := VerifyNavigation(sc, doc, counts)
	var report *Report
	if !errors.As(err, &report) {
		t.Fatalf("got %v, want *Report", err)
	}
	if len(report.Discrepancies) != 2 {
		t.Fatalf("discrepancies: got %q, want 2", report.Discrepancies)
	}
	for _, d := range report.Discrepancies {
		if !strings.Contains(d, "word: expected 6, got 5") {
			t.Errorf("discrepancy %q does not name the word count", d)
		}
	}
}

func TestVerifyNavigation_EmptyExpansionIsFatal(t *testing.T) {
	_, tp, _ := textControl(t, "TextBox1", ptr(singleLine))
	real := tp.DocumentRange()
	counts, _ := CountAll(real)

	doc := &wrappedRange{
		TextRange: real,
		expand: func(r platform.TextRange, unit platform.TextUnit) error {
			if unit == platform.UnitLine {
				return nil
			}
			return r.ExpandToEnclosingUnit(unit)
		},
	}
	sc, _ := newTestContext(t)
	err := VerifyNavigation(sc, doc, counts)
	if err == nil || !strings.Contains(err.Error(), "ExpandToEnclosingUnit(line) produced an empty range") {
		t.Fatalf("got %v", err)
	}
	var report *Report
	if errors.As(err, &report) {
		t.Error("an empty expansion should not be reported as a discrepancy list")
	}
}

func TestVerifyNavigation_ExpandErrorContinues(t *testing.T) {
	_, tp, _ := textControl(t, "TextBox1", ptr(singleLine))
	real := tp.DocumentRange()
	counts, _ := CountAll(real)

	doc := &wrappedRange{
		TextRange: real,
		expand: func(r platform.TextRange, unit platform.TextUnit) error {
			if unit == platform.UnitWord {
				return platform.ErrInvalidOperation
			}
			return r.ExpandToEnclosingUnit(unit)
		},
	}
	sc, _ := newTestContext(t)
	err := VerifyNavigation(sc, doc, counts)
	var report *Report
	if !errors.As(err, &report) {
		t.Fatalf("got %v, want *Report", err)
	}
	// One discrepancy for the failed expansion and one for the short word count.
	if len(report.Discrepancies) != 2 {
		t.Errorf("discrepancies: got %q", report.Discrepancies)
	}
}
