package conform

import (
	"fmt"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// maxWalkElements bounds a property walk over a misbehaving tree.
const maxWalkElements = 1 << 16

// WalkProperties visits every element under root, expanding enabled
// collapsed elements, and records a discrepancy for each element without a
// class name, each menu item without a name, and each repeated automation id.
// All discrepancies are returned together as a *Report.
func WalkProperties(sc *Context, root platform.Element) error {
	if root == nil {
		return fmt.Errorf("walk properties: %w", platform.ErrNullArgument)
	}
	sc.Step("walk element properties")
	seen := make(map[string]string)
	visited := 0

	var visit func(el platform.Element, path string) error
	visit = func(el platform.Element, path string) error {
		for ; el != nil; el = el.NextSibling() {
			visited++
			if visited > maxWalkElements {
				return fmt.Errorf("walk properties: more than %d elements", maxWalkElements)
			}
			label := el.Name()
			if label == "" {
				label = "<" + el.ClassName() + ">"
			}
			here := label
			if path != "" {
				here = path + " > " + label
			}

			if el.ClassName() == "" {
				sc.Discrepancy("%s: empty class name", here)
			}
			if el.ClassName() == "MenuItem" && el.Name() == "" {
				sc.Discrepancy("%s: menu item without a name", here)
			}
			if id := el.AutomationID(); id != "" {
				if prev, dup := seen[id]; dup {
					sc.Discrepancy("%s: automation id %q already used by %s", here, id, prev)
				} else {
					seen[id] = here
				}
			}

			if el.IsExpandable() && el.IsEnabled() {
				if err := el.Expand(); err != nil {
					sc.Discrepancy("%s: expand: %v", here, err)
				}
			}
			if err := visit(el.FirstChild(), here); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root, ""); err != nil {
		return err
	}
	sc.Comment("%d elements walked", visited)
	return sc.Err()
}
