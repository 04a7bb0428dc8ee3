package virtual

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mj1618/a11y-conform/internal/platform"
)

const objectReplacement = "\uFFFC"

// textControl backs both the value and the text pattern of an editable control.
type textControl struct {
	owner     *element
	value     string
	rich      bool
	readOnly  bool
	password  bool
	maxLength int
	numeric   bool
	attrs     *attributeSet

	embedded []*element // embedded children, ordered by offset
	offsets  []int      // requested offsets, parallel to embedded

	doc       *document
	childPos  map[*element]int
	selection [2]int
}

func newTextControl(owner *element, cs ControlSpec) (*textControl, error) {
	defaults := make(map[platform.AttributeID]any, len(platform.Attributes))
	for _, d := range platform.Attributes {
		defaults[d.ID] = d.Default
	}
	overrides, err := parseAttributes(cs.Attributes)
	if err != nil {
		return nil, err
	}
	for id, v := range overrides {
		defaults[id] = v
	}
	attrs := &attributeSet{defaults: defaults, unsupported: make(map[platform.AttributeID]bool)}
	for _, name := range cs.Unsupported {
		d, _ := platform.AttributeByName(name)
		attrs.unsupported[d.ID] = true
	}
	for _, r := range cs.Runs {
		values, err := parseAttributes(r.Attributes)
		if err != nil {
			return nil, err
		}
		attrs.runs = append(attrs.runs, attrRun{start: r.Start, end: r.End, values: values})
	}

	c := &textControl{
		owner:     owner,
		value:     cs.Text,
		rich:      cs.Rich,
		readOnly:  cs.ReadOnly,
		password:  cs.Password,
		maxLength: cs.MaxLength,
		numeric:   cs.Numeric,
		attrs:     attrs,
	}
	return c, nil
}

func (c *textControl) addEmbedded(child *element, offset int) {
	i := sort.SearchInts(c.offsets, offset+1)
	c.offsets = append(c.offsets, 0)
	copy(c.offsets[i+1:], c.offsets[i:])
	c.offsets[i] = offset
	c.embedded = append(c.embedded, nil)
	copy(c.embedded[i+1:], c.embedded[i:])
	c.embedded[i] = child
}

// rebuild lays out the current value, inserting one object replacement
// character per embedded child and the implicit paragraph break of rich text.
func (c *textControl) rebuild() {
	chars := splitGraphemes(c.value)
	c.childPos = make(map[*element]int, len(c.embedded))
	for i, child := range c.embedded {
		pos := c.offsets[i] + i
		if pos > len(chars) {
			pos = len(chars)
		}
		chars = append(chars, "")
		copy(chars[pos+1:], chars[pos:])
		chars[pos] = objectReplacement
		c.childPos[child] = pos
	}
	if c.rich && len(chars) > 0 {
		chars = append(chars, "\r\n")
	}
	c.doc = newDocument(chars)
	c.selection = [2]int{0, 0}
}

// Value pattern.

func (c *textControl) Value() (string, error) {
	if c.password {
		return "", fmt.Errorf("read password value: %w", platform.ErrInvalidOperation)
	}
	return c.value, nil
}

func (c *textControl) IsReadOnly() bool { return c.readOnly }

func (c *textControl) SetValue(value string) error {
	if !c.owner.enabled {
		return fmt.Errorf("set value on %q: %w", c.owner.autoID, platform.ErrElementNotEnabled)
	}
	if c.readOnly {
		return fmt.Errorf("set value on read-only %q: %w", c.owner.autoID, platform.ErrInvalidOperation)
	}
	if c.maxLength > 0 && utf8.RuneCountInString(value) > c.maxLength {
		return fmt.Errorf("value exceeds max length %d: %w", c.maxLength, platform.ErrInvalidArgument)
	}
	if c.numeric {
		if i := strings.IndexFunc(value, func(r rune) bool { return !unicode.IsDigit(r) }); i >= 0 {
			return fmt.Errorf("numeric-only %q: value %q has a non-digit at byte %d: %w", c.owner.autoID, value, i, platform.ErrInvalidArgument)
		}
	}
	// Replacing the content drops embedded objects and character formatting.
	c.value = value
	c.embedded, c.offsets = nil, nil
	c.owner.children = nil
	c.attrs.runs = nil
	c.rebuild()
	return nil
}

// Text pattern.

func (c *textControl) DocumentRange() platform.TextRange {
	return &textRange{ctl: c, start: 0, end: c.doc.len()}
}

func (c *textControl) SupportedTextSelection() platform.TextSelection {
	return platform.SelectionSingle
}

func (c *textControl) GetSelection() ([]platform.TextRange, error) {
	s, e := c.clamp(c.selection[0]), c.clamp(c.selection[1])
	return []platform.TextRange{&textRange{ctl: c, start: s, end: e}}, nil
}

func (c *textControl) GetVisibleRanges() ([]platform.TextRange, error) {
	end := c.doc.visibleEnd(c.owner.bounds.Height)
	return []platform.TextRange{&textRange{ctl: c, start: 0, end: end}}, nil
}

func (c *textControl) RangeFromChild(child platform.Element) (platform.TextRange, error) {
	if child == nil {
		return nil, fmt.Errorf("range from child: %w", platform.ErrNullArgument)
	}
	el, ok := child.(*element)
	if ok {
		if pos, found := c.childPos[el]; found {
			return &textRange{ctl: c, start: pos, end: pos + 1}, nil
		}
	}
	return nil, fmt.Errorf("range from child %q: not a child of %q: %w", child.Name(), c.owner.autoID, platform.ErrInvalidOperation)
}

func (c *textControl) RangeFromPoint(pt platform.Point) (platform.TextRange, error) {
	if !c.owner.bounds.Contains(pt) {
		return nil, fmt.Errorf("range from point (%d,%d): outside the control: %w: %w", pt.X, pt.Y, platform.ErrInvalidArgument, platform.ErrOutOfRange)
	}
	pos := c.doc.positionAt(c.owner.bounds, pt)
	return &textRange{ctl: c, start: pos, end: pos}, nil
}

func (c *textControl) clamp(pos int) int {
	if pos > c.doc.len() {
		return c.doc.len()
	}
	return pos
}
