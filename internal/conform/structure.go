package conform

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// ExpectedNode is one node of an expected element tree.
type ExpectedNode struct {
	Label       string
	FirstChild  *ExpectedNode
	NextSibling *ExpectedNode
}

// Name returns the display name the label stands for.
func (n *ExpectedNode) Name() string {
	return strings.ReplaceAll(n.Label, "_", " ")
}

// ParseStructure parses node-per-element markup such as
//
//	<File><New/><Save_As/></File>
//
// where every tag name is an element label.
func ParseStructure(markup string) (*ExpectedNode, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	var (
		root     *ExpectedNode
		stack    []*ExpectedNode
		lastKids []*ExpectedNode // last child appended to each stack entry
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid structure markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &ExpectedNode{Label: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("invalid structure markup: multiple root elements")
				}
				root = node
			} else {
				p := len(stack) - 1
				if prev := lastKids[p]; prev != nil {
					prev.NextSibling = node
				} else {
					stack[p].FirstChild = node
				}
				lastKids[p] = node
			}
			stack = append(stack, node)
			lastKids = append(lastKids, nil)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			lastKids = lastKids[:len(lastKids)-1]
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("invalid structure markup: unexpected text %q", strings.TrimSpace(string(t)))
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("invalid structure markup: no elements")
	}
	return root, nil
}

// StructureMismatchError reports the first node where the expected and live
// trees disagree.
type StructureMismatchError struct {
	Path     []string
	Expected string
	Actual   string
}

func (e *StructureMismatchError) Error() string {
	path := strings.Join(e.Path, " > ")
	switch {
	case e.Expected == "":
		return fmt.Sprintf("structure mismatch at %q: unexpected element %q", path, e.Actual)
	case e.Actual == "":
		return fmt.Sprintf("structure mismatch at %q: expected %q, found no element", path, e.Expected)
	}
	return fmt.Sprintf("structure mismatch at %q: expected %q, got %q", path, e.Expected, e.Actual)
}

// VerifyStructure compares expected against the live tree rooted at actual,
// following first-child and next-sibling links in both. Collapsed elements
// are expanded before their children are read.
func VerifyStructure(sc *Context, expected *ExpectedNode, actual platform.Element) error {
	return verifyNode(sc, expected, actual, nil)
}

func verifyNode(sc *Context, expected *ExpectedNode, actual platform.Element, parents []string) error {
	if expected == nil && actual == nil {
		return nil
	}
	if expected == nil {
		return &StructureMismatchError{Path: childPath(parents, actual.Name()), Actual: actual.Name()}
	}
	want := expected.Name()
	path := childPath(parents, want)
	if actual == nil {
		return &StructureMismatchError{Path: path, Expected: want}
	}
	name := actual.Name()
	if name == "" || name != want {
		return &StructureMismatchError{Path: path, Expected: want, Actual: name}
	}
	sc.Step("verified %q", strings.Join(path, " > "))

	if actual.IsExpandable() {
		if err := actual.Expand(); err != nil {
			return fmt.Errorf("expand %q: %w", strings.Join(path, " > "), err)
		}
	}
	if err := verifyNode(sc, expected.FirstChild, actual.FirstChild(), path); err != nil {
		return err
	}
	return verifyNode(sc, expected.NextSibling, actual.NextSibling(), parents)
}

func childPath(parents []string, name string) []string {
	return append(parents[:len(parents):len(parents)], name)
}
