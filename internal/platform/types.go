package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// TextUnit is a granularity of text navigation, ordered from finest to coarsest.
type TextUnit int

const (
	UnitCharacter TextUnit = iota
	UnitWord
	UnitLine
	UnitParagraph
	UnitDocument
)

// NumTextUnits is the number of recognized text units.
const NumTextUnits = int(UnitDocument) + 1

// TextUnits lists every text unit from finest to coarsest.
var TextUnits = [NumTextUnits]TextUnit{UnitCharacter, UnitWord, UnitLine, UnitParagraph, UnitDocument}

var unitNames = [NumTextUnits]string{"character", "word", "line", "paragraph", "document"}

func (u TextUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("TextUnit(%d)", int(u))
	}
	return unitNames[u]
}

// Valid reports whether u is one of the recognized units.
func (u TextUnit) Valid() bool {
	return u >= UnitCharacter && u <= UnitDocument
}

// ParseTextUnit converts a string flag value to a TextUnit.
func ParseTextUnit(s string) (TextUnit, error) {
	for i, name := range unitNames {
		if strings.EqualFold(s, name) {
			return TextUnit(i), nil
		}
	}
	return UnitCharacter, fmt.Errorf("unknown text unit: %q (expected %s)", s, strings.Join(unitNames[:], ", "))
}

// Endpoint identifies one end of a text range.
type Endpoint int

const (
	EndpointStart Endpoint = iota
	EndpointEnd
)

func (e Endpoint) String() string {
	switch e {
	case EndpointStart:
		return "Start"
	case EndpointEnd:
		return "End"
	default:
		return fmt.Sprintf("Endpoint(%d)", int(e))
	}
}

// TextSelection describes the selection support of a text pattern.
type TextSelection int

const (
	SelectionNone TextSelection = iota
	SelectionSingle
	SelectionMultiple
)

// Point is a screen coordinate.
type Point struct {
	X, Y int
}

// Rect represents a screen rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ParseRect parses a "x,y,w,h" string into a Rect.
func ParseRect(s string) (Rect, error) {
	vals, err := parseInts(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	return Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// ParsePoint parses a "x,y" string into a Point.
func ParsePoint(s string) (Point, error) {
	vals, err := parseInts(s, 2)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: vals[0], Y: vals[1]}, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers", n)
	}
	vals := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// LaunchOptions controls which target application is opened.
type LaunchOptions struct {
	Fixture string // Path to a target definition (empty = backend default)
}
