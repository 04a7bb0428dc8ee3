package model

import (
	"fmt"
	"strings"
	"unicode"
)

// Markup renders el and its descendants as expected-structure markup: one
// element per node, named after the node with spaces replaced by underscores.
func Markup(el Element) (string, error) {
	var b strings.Builder
	if err := writeMarkup(&b, el, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeMarkup(b *strings.Builder, el Element, depth int) error {
	tag, err := markupName(el.Name)
	if err != nil {
		return fmt.Errorf("element %d (%s): %w", el.ID, el.Label(), err)
	}
	indent := strings.Repeat("  ", depth)
	if len(el.Children) == 0 {
		fmt.Fprintf(b, "%s<%s/>\n", indent, tag)
		return nil
	}
	fmt.Fprintf(b, "%s<%s>\n", indent, tag)
	for _, child := range el.Children {
		if err := writeMarkup(b, child, depth+1); err != nil {
			return err
		}
	}
	fmt.Fprintf(b, "%s</%s>\n", indent, tag)
	return nil
}

func markupName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("unnamed element has no markup name")
	}
	tag := strings.ReplaceAll(name, " ", "_")
	for i, r := range tag {
		ok := unicode.IsLetter(r) || r == '_'
		if i > 0 {
			ok = ok || unicode.IsDigit(r) || r == '-' || r == '.'
		}
		if !ok {
			return "", fmt.Errorf("name %q is not expressible as markup", name)
		}
	}
	return tag, nil
}
