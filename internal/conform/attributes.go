package conform

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/mj1618/a11y-conform/internal/platform"
	"golang.org/x/text/language"
)

// AttributeMismatchError reports a FindAttribute query whose outcome
// contradicts the attribute value observed over the document.
type AttributeMismatchError struct {
	Attribute string
	Value     any
	Backward  bool
	WantMatch bool
}

func (e *AttributeMismatchError) Error() string {
	dir := "forward"
	if e.Backward {
		dir = "backward"
	}
	if e.WantMatch {
		return fmt.Sprintf("find %s=%v (%s): expected a match, found none", e.Attribute, e.Value, dir)
	}
	return fmt.Sprintf("find %s=%v (%s): expected no match, found one", e.Attribute, e.Value, dir)
}

// VerifyAttributes checks every registered text attribute over doc. An
// attribute that is unsupported or mixed over the document is skipped. The
// first contradicting search is returned.
func VerifyAttributes(sc *Context, doc platform.TextRange) error {
	text, err := doc.GetText(-1)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if text == "" {
		sc.Comment("document is empty, attribute checks skipped")
		return nil
	}
	for _, desc := range platform.Attributes {
		if err := VerifyAttribute(sc, doc, desc); err != nil {
			return err
		}
	}
	return nil
}

// VerifyAttribute reads one attribute over doc and checks that searching for
// each candidate value matches exactly when it equals the observed value,
// then that a perturbed value matches nothing in either direction.
func VerifyAttribute(sc *Context, doc platform.TextRange, desc platform.AttributeDescriptor) error {
	observed, err := doc.GetAttributeValue(desc.ID)
	if err != nil {
		return fmt.Errorf("get attribute %s: %w", desc.Name, err)
	}
	switch observed {
	case platform.NotSupported:
		sc.Comment("%s: not supported, skipped", desc.Name)
		return nil
	case platform.Mixed:
		sc.Comment("%s: mixed over the document, skipped", desc.Name)
		return nil
	}
	sc.Step("attribute %s = %v", desc.Name, observed)

	candidates := desc.LegalValues()
	if candidates == nil {
		candidates = []any{observed}
	}
	for _, v := range candidates {
		if err := expectFind(doc, desc, v, platform.ValuesEqual(v, observed)); err != nil {
			return err
		}
	}

	invalid := InvalidValue(desc, observed)
	if platform.ValuesEqual(invalid, observed) {
		sc.Comment("%s: no distinct invalid value for %v, negative search skipped", desc.Name, observed)
		return nil
	}
	return expectFind(doc, desc, invalid, false)
}

func expectFind(doc platform.TextRange, desc platform.AttributeDescriptor, value any, wantMatch bool) error {
	for _, backward := range []bool{false, true} {
		found, err := doc.FindAttribute(desc.ID, value, backward)
		if err != nil {
			return fmt.Errorf("find %s=%v: %w", desc.Name, value, err)
		}
		if (found != nil) != wantMatch {
			return &AttributeMismatchError{Attribute: desc.Name, Value: value, Backward: backward, WantMatch: wantMatch}
		}
	}
	return nil
}

// InvalidValue derives a value of the attribute's kind that differs from v.
// An empty float array has no elements to perturb and is returned unchanged.
func InvalidValue(desc platform.AttributeDescriptor, v any) any {
	switch desc.Kind {
	case platform.KindInt:
		return v.(int) + 1
	case platform.KindFloat:
		return v.(float64) - 1
	case platform.KindBool:
		return !v.(bool)
	case platform.KindEnum:
		largest := 0
		for _, e := range desc.Enum {
			largest = max(largest, e.Value)
		}
		return largest + 1
	case platform.KindString:
		s := v.(string)
		flipped := flipCase(s)
		if flipped == s {
			return s + "_invalid"
		}
		return flipped
	case platform.KindCulture:
		if base, _ := v.(language.Tag).Base(); base.String() == "af" {
			return language.Icelandic
		}
		return language.Afrikaans
	case platform.KindFloatArray:
		out := slices.Clone(v.([]float64))
		for i := range out {
			out[i]++
		}
		return out
	}
	return v
}

func flipCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}
