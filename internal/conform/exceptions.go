package conform

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// ExceptionCase feeds one invalid input to an operation that must fail with
// the error kind Want.
type ExceptionCase struct {
	Name string
	Want error
	Op   func() error
}

// ErrorKindMismatch reports an operation that failed with the wrong kind of
// error, or did not fail at all.
type ErrorKindMismatch struct {
	Case string
	Want error
	Got  error
}

func (e *ErrorKindMismatch) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: expected %q, got no error", e.Case, e.Want)
	}
	if kind := platform.KindOf(e.Got); kind != nil {
		return fmt.Sprintf("%s: expected %q, got %q (%v)", e.Case, e.Want, kind, e.Got)
	}
	return fmt.Sprintf("%s: expected %q, got %v", e.Case, e.Want, e.Got)
}

func (e *ErrorKindMismatch) Unwrap() error { return e.Got }

// RunCases runs every case in order and stops at the first one whose error does
// not match its expected kind.
func RunCases(sc *Context, cases []ExceptionCase) error {
	for _, c := range cases {
		sc.Step("%s expecting %q", c.Name, c.Want)
		err := c.Op()
		if err != nil && errors.Is(err, c.Want) {
			sc.Comment("%s: %v", c.Name, err)
			continue
		}
		return &ErrorKindMismatch{Case: c.Name, Want: c.Want, Got: err}
	}
	return nil
}

// RangeCases returns invalid-argument cases for the ranges of pattern.
// foreign must be a range from a different text container.
func RangeCases(pattern platform.TextPattern, foreign platform.TextRange) []ExceptionCase {
	doc := pattern.DocumentRange
	badUnit := platform.TextUnit(platform.NumTextUnits)
	cases := []ExceptionCase{
		{"Compare(nil)", platform.ErrNullArgument, func() error {
			_, err := doc().Compare(nil)
			return err
		}},
		{"CompareEndpoints(nil)", platform.ErrNullArgument, func() error {
			_, err := doc().CompareEndpoints(platform.EndpointStart, nil, platform.EndpointStart)
			return err
		}},
		{"MoveEndpointByRange(nil)", platform.ErrNullArgument, func() error {
			return doc().MoveEndpointByRange(platform.EndpointStart, nil, platform.EndpointEnd)
		}},
		{"GetText(-2)", platform.ErrOutOfRange, func() error {
			_, err := doc().GetText(-2)
			return err
		}},
		{"Move(invalid unit)", platform.ErrInvalidArgument, func() error {
			_, err := doc().Move(badUnit, 1)
			return err
		}},
		{"MoveEndpointByUnit(invalid unit)", platform.ErrInvalidArgument, func() error {
			_, err := doc().MoveEndpointByUnit(platform.EndpointStart, badUnit, 1)
			return err
		}},
		{"ExpandToEnclosingUnit(invalid unit)", platform.ErrInvalidArgument, func() error {
			return doc().ExpandToEnclosingUnit(badUnit)
		}},
		{"GetAttributeValue(unknown attribute)", platform.ErrInvalidArgument, func() error {
			_, err := doc().GetAttributeValue(platform.AttributeID(0))
			return err
		}},
		{"FindAttribute(is_italic, nil)", platform.ErrNullArgument, func() error {
			_, err := doc().FindAttribute(platform.AttrIsItalic, nil, false)
			return err
		}},
		{"FindAttribute(is_italic, \"true\")", platform.ErrInvalidArgument, func() error {
			_, err := doc().FindAttribute(platform.AttrIsItalic, "true", false)
			return err
		}},
		{"FindAttribute(font_size, 12)", platform.ErrInvalidArgument, func() error {
			_, err := doc().FindAttribute(platform.AttrFontSize, 12, false)
			return err
		}},
		{"FindText(\"\")", platform.ErrInvalidArgument, func() error {
			_, err := doc().FindText("", false, false)
			return err
		}},
	}
	if foreign != nil {
		cases = append(cases,
			ExceptionCase{"CompareEndpoints(foreign range)", platform.ErrInvalidArgument, func() error {
				_, err := doc().CompareEndpoints(platform.EndpointStart, foreign, platform.EndpointStart)
				return err
			}},
			ExceptionCase{"MoveEndpointByRange(foreign range)", platform.ErrInvalidArgument, func() error {
				return doc().MoveEndpointByRange(platform.EndpointStart, foreign, platform.EndpointStart)
			}},
			ExceptionCase{"Compare(foreign range)", platform.ErrInvalidArgument, func() error {
				_, err := doc().Compare(foreign)
				return err
			}},
		)
	}
	return cases
}

// PatternCases returns invalid-argument cases for the text pattern of self.
func PatternCases(pattern platform.TextPattern, self platform.Element) []ExceptionCase {
	cases := []ExceptionCase{
		{"RangeFromChild(nil)", platform.ErrNullArgument, func() error {
			_, err := pattern.RangeFromChild(nil)
			return err
		}},
		{"RangeFromChild(self)", platform.ErrInvalidOperation, func() error {
			_, err := pattern.RangeFromChild(self)
			return err
		}},
	}
	for _, pt := range OutsidePoints(self.Bounds()) {
		cases = append(cases, ExceptionCase{fmt.Sprintf("RangeFromPoint(%d,%d)", pt.X, pt.Y), platform.ErrInvalidArgument, func() error {
			_, err := pattern.RangeFromPoint(pt)
			return err
		}})
	}
	return cases
}

// OutsidePoints returns points beyond each corner of b and at the extremes
// of the coordinate space.
func OutsidePoints(b platform.Rect) []platform.Point {
	return []platform.Point{
		{X: b.X - 1, Y: b.Y - 1},
		{X: b.X + b.Width + 1, Y: b.Y + b.Height + 1},
		{X: math.MaxInt, Y: math.MinInt},
		{X: math.MaxInt, Y: math.MaxInt},
	}
}

// overlongValue exceeds any max length a fixture control declares.
var overlongValue = strings.Repeat("x", 1<<16)

// ValueCases returns cases for controls whose value pattern must refuse
// access. Nil patterns are skipped.
func ValueCases(readOnly, disabled, password, limited, numeric platform.ValuePattern) []ExceptionCase {
	var cases []ExceptionCase
	if readOnly != nil {
		cases = append(cases, ExceptionCase{"SetValue on read-only control", platform.ErrInvalidOperation, func() error {
			return readOnly.SetValue("changed")
		}})
	}
	if disabled != nil {
		cases = append(cases, ExceptionCase{"SetValue on disabled control", platform.ErrElementNotEnabled, func() error {
			return disabled.SetValue("changed")
		}})
	}
	if password != nil {
		cases = append(cases, ExceptionCase{"Value of password control", platform.ErrInvalidOperation, func() error {
			_, err := password.Value()
			return err
		}})
	}
	if limited != nil {
		cases = append(cases, ExceptionCase{"SetValue beyond max length", platform.ErrInvalidArgument, func() error {
			return limited.SetValue(overlongValue)
		}})
	}
	if numeric != nil {
		cases = append(cases, ExceptionCase{"SetValue(\"A\") on numeric-only control", platform.ErrInvalidArgument, func() error {
			return numeric.SetValue("A")
		}})
	}
	return cases
}
