package virtual

import (
	"fmt"
	"strings"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// textRange is a [start, end) span of grapheme positions in a text control.
// Positions are clamped to the current document on every access, so a range
// survives edits to its control.
type textRange struct {
	ctl        *textControl
	start, end int
}

func (r *textRange) doc() *document {
	if n := r.ctl.doc.len(); r.end > n {
		r.end = n
		if r.start > n {
			r.start = n
		}
	}
	return r.ctl.doc
}

func (r *textRange) Clone() platform.TextRange {
	return &textRange{ctl: r.ctl, start: r.start, end: r.end}
}

// peer validates a range argument from the same document.
func (r *textRange) peer(other platform.TextRange, op string) (*textRange, error) {
	if other == nil {
		return nil, fmt.Errorf("%s: %w", op, platform.ErrNullArgument)
	}
	o, ok := other.(*textRange)
	if !ok || o.ctl != r.ctl {
		return nil, fmt.Errorf("%s: range belongs to another container: %w", op, platform.ErrInvalidArgument)
	}
	o.doc()
	return o, nil
}

func (r *textRange) endpoint(ep platform.Endpoint) int {
	if ep == platform.EndpointEnd {
		return r.end
	}
	return r.start
}

// setEndpoint moves one endpoint, dragging the other along when they cross.
func (r *textRange) setEndpoint(ep platform.Endpoint, pos int) {
	if ep == platform.EndpointEnd {
		r.end = pos
		if r.start > pos {
			r.start = pos
		}
		return
	}
	r.start = pos
	if r.end < pos {
		r.end = pos
	}
}

func validEndpoint(ep platform.Endpoint) error {
	if ep != platform.EndpointStart && ep != platform.EndpointEnd {
		return fmt.Errorf("endpoint %v: %w", ep, platform.ErrInvalidArgument)
	}
	return nil
}

func validUnit(unit platform.TextUnit) error {
	if !unit.Valid() {
		return fmt.Errorf("text unit %v: %w", unit, platform.ErrInvalidArgument)
	}
	return nil
}

func (r *textRange) Compare(other platform.TextRange) (bool, error) {
	o, err := r.peer(other, "compare")
	if err != nil {
		return false, err
	}
	r.doc()
	return r.start == o.start && r.end == o.end, nil
}

func (r *textRange) CompareEndpoints(ep platform.Endpoint, target platform.TextRange, targetEp platform.Endpoint) (int, error) {
	o, err := r.peer(target, "compare endpoints")
	if err != nil {
		return 0, err
	}
	if err := validEndpoint(ep); err != nil {
		return 0, err
	}
	if err := validEndpoint(targetEp); err != nil {
		return 0, err
	}
	r.doc()
	a, b := r.endpoint(ep), o.endpoint(targetEp)
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

func (r *textRange) MoveEndpointByUnit(ep platform.Endpoint, unit platform.TextUnit, count int) (int, error) {
	if err := validEndpoint(ep); err != nil {
		return 0, err
	}
	if err := validUnit(unit); err != nil {
		return 0, err
	}
	d := r.doc()
	pos, moved := step(d.bounds[unit], r.endpoint(ep), count)
	r.setEndpoint(ep, pos)
	return moved, nil
}

func (r *textRange) MoveEndpointByRange(ep platform.Endpoint, target platform.TextRange, targetEp platform.Endpoint) error {
	o, err := r.peer(target, "move endpoint by range")
	if err != nil {
		return err
	}
	if err := validEndpoint(ep); err != nil {
		return err
	}
	if err := validEndpoint(targetEp); err != nil {
		return err
	}
	r.doc()
	r.setEndpoint(ep, o.endpoint(targetEp))
	return nil
}

// Move shifts a degenerate range by count units. A non-degenerate range is
// first normalized to the unit enclosing its start, moved, and re-expanded to
// one unit; it never moves onto the document end.
func (r *textRange) Move(unit platform.TextUnit, count int) (int, error) {
	if err := validUnit(unit); err != nil {
		return 0, err
	}
	d := r.doc()
	b := d.bounds[unit]
	if count == 0 {
		return 0, nil
	}
	if r.start == r.end {
		pos, moved := step(b, r.start, count)
		r.start, r.end = pos, pos
		return moved, nil
	}
	start := floor(b, r.start)
	var moved int
	if count > 0 {
		start, moved = step(b[:len(b)-1], start, count)
	} else {
		start, moved = step(b, start, count)
	}
	r.start, r.end = start, next(b, start)
	return moved, nil
}

func (r *textRange) ExpandToEnclosingUnit(unit platform.TextUnit) error {
	if err := validUnit(unit); err != nil {
		return err
	}
	d := r.doc()
	b := d.bounds[unit]
	n := d.len()
	switch {
	case n == 0:
		r.start, r.end = 0, 0
	case r.start == r.end && r.start == n:
		r.start = floor(b, n-1)
		r.end = n
	case r.start == r.end:
		r.start = floor(b, r.start)
		r.end = next(b, r.start)
	default:
		r.start = floor(b, r.start)
		r.end = ceil(b, r.end)
	}
	return nil
}

func (r *textRange) GetText(maxLength int) (string, error) {
	if maxLength < -1 {
		return "", fmt.Errorf("get text max length %d: %w", maxLength, platform.ErrOutOfRange)
	}
	d := r.doc()
	text := d.text(r.start, r.end)
	if maxLength >= 0 {
		runes := []rune(text)
		if len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}
	return text, nil
}

func (r *textRange) GetAttributeValue(attr platform.AttributeID) (any, error) {
	if _, ok := platform.LookupAttribute(attr); !ok {
		return nil, fmt.Errorf("attribute %v: %w", attr, platform.ErrInvalidArgument)
	}
	set := r.ctl.attrs
	if set.unsupported[attr] {
		return platform.NotSupported, nil
	}
	d := r.doc()
	if r.start == r.end {
		pos := r.start
		if pos == d.len() && pos > 0 {
			pos--
		}
		return set.valueAt(attr, pos), nil
	}
	first := set.valueAt(attr, r.start)
	for pos := r.start + 1; pos < r.end; pos++ {
		if !platform.ValuesEqual(first, set.valueAt(attr, pos)) {
			return platform.Mixed, nil
		}
	}
	return first, nil
}

func (r *textRange) FindAttribute(attr platform.AttributeID, value any, backward bool) (platform.TextRange, error) {
	desc, ok := platform.LookupAttribute(attr)
	if !ok {
		return nil, fmt.Errorf("find attribute %v: %w", attr, platform.ErrInvalidArgument)
	}
	if value == nil {
		return nil, fmt.Errorf("find attribute %v: %w", attr, platform.ErrNullArgument)
	}
	if !desc.Accepts(value) {
		return nil, fmt.Errorf("find attribute %v: value %v (%T) is not %s: %w", attr, value, value, desc.Kind, platform.ErrInvalidArgument)
	}
	set := r.ctl.attrs
	if set.unsupported[attr] {
		return nil, nil
	}
	r.doc()
	match := func(pos int) bool { return platform.ValuesEqual(set.valueAt(attr, pos), value) }

	if backward {
		for pos := r.end - 1; pos >= r.start; pos-- {
			if match(pos) {
				start := pos
				for start > r.start && match(start-1) {
					start--
				}
				return &textRange{ctl: r.ctl, start: start, end: pos + 1}, nil
			}
		}
		return nil, nil
	}
	for pos := r.start; pos < r.end; pos++ {
		if match(pos) {
			end := pos + 1
			for end < r.end && match(end) {
				end++
			}
			return &textRange{ctl: r.ctl, start: pos, end: end}, nil
		}
	}
	return nil, nil
}

func (r *textRange) FindText(text string, backward, ignoreCase bool) (platform.TextRange, error) {
	if text == "" {
		return nil, fmt.Errorf("find text: empty search string: %w", platform.ErrInvalidArgument)
	}
	d := r.doc()
	needle := splitGraphemes(text)
	matchAt := func(pos int) bool {
		for i, c := range needle {
			got := d.chars[pos+i]
			if got != c && !(ignoreCase && strings.EqualFold(got, c)) {
				return false
			}
		}
		return true
	}
	last := r.end - len(needle)
	if backward {
		for pos := last; pos >= r.start; pos-- {
			if matchAt(pos) {
				return &textRange{ctl: r.ctl, start: pos, end: pos + len(needle)}, nil
			}
		}
		return nil, nil
	}
	for pos := r.start; pos <= last; pos++ {
		if matchAt(pos) {
			return &textRange{ctl: r.ctl, start: pos, end: pos + len(needle)}, nil
		}
	}
	return nil, nil
}

func (r *textRange) GetBoundingRectangles() ([]platform.Rect, error) {
	d := r.doc()
	return d.lineRects(r.ctl.owner.bounds, r.start, r.end), nil
}

func (r *textRange) Select() error {
	r.doc()
	r.ctl.selection = [2]int{r.start, r.end}
	return nil
}
