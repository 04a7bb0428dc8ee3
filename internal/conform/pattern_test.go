package conform

import (
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/a11y-conform/internal/platform"
)

func TestVerifyDocumentText(t *testing.T) {
	tests := []struct {
		name     string
		control  string
		expected string
		wantErr  bool
	}{
		{"rich", "RichTextBox1", singleLine, false},
		{"plain", "TextBox1", singleLine, false},
		{"prefix mismatch", "TextBox1", "String 1 String 2 String X", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, tt.control, ptr(singleLine))
			sc, _ := newTestContext(t)
			err := VerifyDocumentText(sc, tp, tt.expected)
			if !tt.wantErr {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			var mismatch *TextMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("got %v, want *TextMismatchError", err)
			}
			if mismatch.Actual != singleLine {
				t.Errorf("actual: got %q", mismatch.Actual)
			}
		})
	}
}

func TestVerifySelection(t *testing.T) {
	for _, id := range []string{"TextBox1", "RichTextBox1"} {
		t.Run(id, func(t *testing.T) {
			_, tp, vp := textControl(t, id, ptr("line one\r\nline two"))
			sc, _ := newTestContext(t)
			if err := VerifySelection(sc, tp, vp); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestVerifySelection_EmbeddedObjectDiffers(t *testing.T) {
	// The default rich control hosts an embedded child, which appears in the
	// selection but not in the value.
	_, tp, vp := textControl(t, "RichTextBox1", nil)
	sc, _ := newTestContext(t)
	var mismatch *TextMismatchError
	if err := VerifySelection(sc, tp, vp); !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want *TextMismatchError", err)
	}
}

func TestVerifyVisibleRange(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"short text", singleLine},
		{"clipped text", strings.Repeat("a line of text\r\n", 20)},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, "TextBox1", ptr(tt.value))
			sc, _ := newTestContext(t)
			if err := VerifyVisibleRange(sc, tp); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestVerifyFindText(t *testing.T) {
	tests := []struct {
		name    string
		control string
		value   string
	}{
		{"plain", "TextBox1", singleLine},
		{"rich", "RichTextBox1", singleLine},
		{"multi line", "TextBox1", "line one\r\nline two\r\n"},
		{"mixed script", "RichTextBox1", "Grüße aus Zürich. été 👍🏽 fin"},
		{"holds the absent text", "TextBox1", "an ATG and an atg"},
		{"single character", "TextBox1", "x"},
		{"empty", "TextBox1", ""},
		{"line breaks only", "RichTextBox1", "\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, tt.control, ptr(tt.value))
			sc, _ := newTestContext(t)
			if err := VerifyFindText(sc, tp); err != nil {
				t.Fatal(err)
			}
			if err := sc.Err(); err != nil {
				t.Errorf("unexpected discrepancies: %v", err)
			}
		})
	}
}

func TestVerifyFindText_FaultyProvider(t *testing.T) {
	tests := []struct {
		name     string
		findText func(r platform.TextRange, text string, backward, ignoreCase bool) (platform.TextRange, error)
		want     int
		contains string
	}{
		{
			// The half is missed in all four searches and the upper-cased half
			// in the two case-insensitive ones.
			name: "never matches",
			findText: func(r platform.TextRange, text string, backward, ignoreCase bool) (platform.TextRange, error) {
				return nil, nil
			},
			want:     6,
			contains: "no match",
		},
		{
			// Every search returns the whole document: four wrong matches for
			// each needle plus four matches of text that is not there.
			name: "matches everything",
			findText: func(r platform.TextRange, text string, backward, ignoreCase bool) (platform.TextRange, error) {
				return r.Clone(), nil
			},
			want:     16,
			contains: "does not hold",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tp, _ := textControl(t, "TextBox1", ptr(singleLine))
			doc := &wrappedRange{TextRange: tp.DocumentRange(), findText: tt.findText}
			sc, _ := newTestContext(t)
			if err := VerifyFindText(sc, docPattern{TextPattern: tp, doc: doc}); err != nil {
				t.Fatal(err)
			}
			var report *Report
			if !errors.As(sc.Err(), &report) {
				t.Fatalf("got %v, want *Report", sc.Err())
			}
			if len(report.Discrepancies) != tt.want {
				t.Errorf("discrepancies: got %d, want %d:\n%s", len(report.Discrepancies), tt.want, report)
			}
			if !strings.Contains(report.Error(), tt.contains) {
				t.Errorf("report does not mention %q:\n%s", tt.contains, report)
			}
		})
	}
}

func TestFirstHalf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{singleLine, "String 1 Stri"},
		{"x", "x"},
		{"ab", "a"},
		{"e\u0301te\u0301", "e\u0301"},
		{"👍🏽👍🏽", "👍🏽"},
	}
	for _, tt := range tests {
		if got := firstHalf(tt.in); got != tt.want {
			t.Errorf("firstHalf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpperGraphemes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"String 1", "STRING 1"},
		{"Grüße", "GRÜßE"},
		{"東京", "東京"},
	}
	for _, tt := range tests {
		if got := upperGraphemes(tt.in); got != tt.want {
			t.Errorf("upperGraphemes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerifyRangeFromPoint(t *testing.T) {
	tests := []struct {
		name    string
		control string
		value   string
	}{
		{"plain", "TextBox1", singleLine},
		{"rich", "RichTextBox1", singleLine},
		{"multi line", "TextBox1", strings.Repeat("a line of text\r\n", 20)},
		{"empty", "TextBox1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, tp, _ := textControl(t, tt.control, ptr(tt.value))
			sc, _ := newTestContext(t)
			if err := VerifyRangeFromPoint(sc, tp, el); err != nil {
				t.Fatal(err)
			}
			if err := sc.Err(); err != nil {
				t.Errorf("unexpected discrepancies: %v", err)
			}
		})
	}
}

func TestVerifyRangeFromPoint_FaultyProvider(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"no range", nil, "no range"},
		{"refuses inside points", platform.ErrInvalidArgument, "invalid argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, tp, _ := textControl(t, "TextBox1", ptr(singleLine))
			sc, _ := newTestContext(t)
			if err := VerifyRangeFromPoint(sc, pointPattern{TextPattern: tp, err: tt.err}, el); err != nil {
				t.Fatal(err)
			}
			var report *Report
			if !errors.As(sc.Err(), &report) {
				t.Fatalf("got %v, want *Report", sc.Err())
			}
			if len(report.Discrepancies) != 3 {
				t.Errorf("discrepancies: got %q, want one per point", report.Discrepancies)
			}
			if !strings.Contains(report.Discrepancies[0], tt.contains) {
				t.Errorf("discrepancy %q does not mention %q", report.Discrepancies[0], tt.contains)
			}
		})
	}
}

func TestInsidePoints(t *testing.T) {
	b := platform.Rect{X: 10, Y: 30, Width: 380, Height: 130}
	pts := InsidePoints(b)
	if len(pts) != 3 {
		t.Fatalf("points: got %d, want 3", len(pts))
	}
	for _, pt := range pts {
		if !b.Contains(pt) {
			t.Errorf("%v lies outside %v", pt, b)
		}
	}
}
