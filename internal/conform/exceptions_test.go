package conform

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mj1618/a11y-conform/internal/platform"
)

func TestRunCases_RangeCases(t *testing.T) {
	_, tp, _ := textControl(t, "RichTextBox1", ptr(singleLine))
	_, other, _ := textControl(t, "TextBox1", nil)
	sc, _ := newTestContext(t)

	cases := RangeCases(tp, other.DocumentRange())
	if err := RunCases(sc, cases); err != nil {
		t.Fatal(err)
	}
	if sc.Steps() != len(cases) {
		t.Errorf("steps: got %d, want %d", sc.Steps(), len(cases))
	}
}

func TestRunCases_PatternCases(t *testing.T) {
	el, tp, _ := textControl(t, "RichTextBox1", nil)
	sc, _ := newTestContext(t)
	if err := RunCases(sc, PatternCases(tp, el)); err != nil {
		t.Fatal(err)
	}
}

// pointPattern overrides RangeFromPoint to fail every point with err, or to
// return no range when err is nil.
type pointPattern struct {
	platform.TextPattern
	err error
}

func (p pointPattern) RangeFromPoint(pt platform.Point) (platform.TextRange, error) {
	if p.err == nil {
		return nil, nil
	}
	return nil, fmt.Errorf("range from point %v: %w", pt, p.err)
}

func TestRunCases_RangeFromPointOutside(t *testing.T) {
	el, tp, _ := textControl(t, "TextBox1", nil)
	if got := len(PatternCases(tp, el)); got != 6 {
		t.Fatalf("cases: got %d, want 6", got)
	}

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"invalid argument", platform.ErrInvalidArgument, false},
		{"invalid argument and out of range", errors.Join(platform.ErrOutOfRange, platform.ErrInvalidArgument), false},
		{"out of range only", platform.ErrOutOfRange, true},
		{"invalid operation", platform.ErrInvalidOperation, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _ := newTestContext(t)
			err := RunCases(sc, PatternCases(pointPattern{TextPattern: tp, err: tt.err}, el))
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var mismatch *ErrorKindMismatch
			if !errors.As(err, &mismatch) {
				t.Fatalf("got %v, want *ErrorKindMismatch", err)
			}
			if !strings.HasPrefix(mismatch.Case, "RangeFromPoint(") {
				t.Errorf("case: got %q", mismatch.Case)
			}
		})
	}
}

func TestOutsidePoints(t *testing.T) {
	b := platform.Rect{X: 10, Y: 30, Width: 380, Height: 130}
	for _, pt := range OutsidePoints(b) {
		if b.Contains(pt) {
			t.Errorf("%v lies inside %v", pt, b)
		}
	}
}

func TestRunCases_ValueCases(t *testing.T) {
	app := launch(t)
	pattern := func(id string) platform.ValuePattern {
		el, err := app.FindByAutomationID(id)
		if err != nil {
			t.Fatal(err)
		}
		vp, _ := el.ValuePattern()
		return vp
	}
	cases := ValueCases(pattern("ReadOnlyBox"), pattern("DisabledBox"), pattern("PasswordBox"), pattern("LimitedBox"), pattern("NumericBox"))
	if len(cases) != 5 {
		t.Fatalf("cases: got %d, want 5", len(cases))
	}
	sc, _ := newTestContext(t)
	if err := RunCases(sc, cases); err != nil {
		t.Fatal(err)
	}
	if got := ValueCases(nil, nil, nil, nil, nil); len(got) != 0 {
		t.Errorf("nil patterns should yield no cases, got %d", len(got))
	}
}

// SetValue on a read-only control fails with an invalid operation, which
// RunCases accepts.
func TestRunCases_ReadOnlySetValue(t *testing.T) {
	_, _, vp := textControl(t, "ReadOnlyBox", nil)
	sc, _ := newTestContext(t)
	if err := RunCases(sc, ValueCases(vp, nil, nil, nil, nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(sc.Comments(), "\n"), "invalid operation") {
		t.Errorf("comments should record the observed error: %q", sc.Comments())
	}
}

// A control that accepts letters is not numeric-only.
func TestRunCases_NumericSetValue(t *testing.T) {
	tests := []struct {
		control string
		wantErr bool
	}{
		{"NumericBox", false},
		{"TextBox1", true},
	}
	for _, tt := range tests {
		t.Run(tt.control, func(t *testing.T) {
			_, _, vp := textControl(t, tt.control, nil)
			sc, _ := newTestContext(t)
			err := RunCases(sc, ValueCases(nil, nil, nil, nil, vp))
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var mismatch *ErrorKindMismatch
			if !errors.As(err, &mismatch) || mismatch.Got != nil {
				t.Errorf("got %v, want a mismatch with no error observed", err)
			}
		})
	}
}

func TestRunCases_Mismatch(t *testing.T) {
	wrapped := fmt.Errorf("move: %w", platform.ErrOutOfRange)
	tests := []struct {
		name    string
		c       ExceptionCase
		wantMsg string
	}{
		{
			name:    "no error",
			c:       ExceptionCase{"quiet", platform.ErrNullArgument, func() error { return nil }},
			wantMsg: `quiet: expected "argument is nil", got no error`,
		},
		{
			name:    "wrong kind",
			c:       ExceptionCase{"loud", platform.ErrInvalidArgument, func() error { return wrapped }},
			wantMsg: `loud: expected "invalid argument", got "argument out of range"`,
		},
		{
			name:    "unclassified error",
			c:       ExceptionCase{"odd", platform.ErrInvalidOperation, func() error { return errors.New("boom") }},
			wantMsg: `odd: expected "invalid operation", got boom`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _ := newTestContext(t)
			ran := false
			later := ExceptionCase{"later", platform.ErrNullArgument, func() error {
				ran = true
				return platform.ErrNullArgument
			}}
			err := RunCases(sc, []ExceptionCase{tt.c, later})
			var mismatch *ErrorKindMismatch
			if !errors.As(err, &mismatch) {
				t.Fatalf("got %v, want *ErrorKindMismatch", err)
			}
			if !strings.HasPrefix(err.Error(), tt.wantMsg) {
				t.Errorf("message: got %q, want prefix %q", err.Error(), tt.wantMsg)
			}
			if mismatch.Want != tt.c.Want {
				t.Errorf("want kind: got %v", mismatch.Want)
			}
			if ran {
				t.Error("RunCases should stop at the first mismatch")
			}
		})
	}
}
