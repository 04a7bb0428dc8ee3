package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID           int      `yaml:"i"              json:"i"`
	Name         string   `yaml:"n,omitempty"    json:"n,omitempty"`
	Class        string   `yaml:"c"              json:"c"`
	AutomationID string   `yaml:"id,omitempty"   json:"id,omitempty"`
	Bounds       [4]int   `yaml:"b,flow"         json:"b"`
	Enabled      *bool    `yaml:"e,omitempty"    json:"e,omitempty"`
	Expandable   bool     `yaml:"x,omitempty"    json:"x,omitempty"`
	Patterns     []string `yaml:"pt,flow,omitempty" json:"pt,omitempty"`
	Path         string   `yaml:"p,omitempty"    json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list.
// Each element gets a path string showing its location in the tree
// using element labels joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	currentPath := el.Label()
	if parentPath != "" {
		currentPath = parentPath + " > " + currentPath
	}

	*result = append(*result, FlatElement{
		ID:           el.ID,
		Name:         el.Name,
		Class:        el.Class,
		AutomationID: el.AutomationID,
		Bounds:       el.Bounds,
		Enabled:      el.Enabled,
		Expandable:   el.Expandable,
		Patterns:     el.Patterns,
		Path:         currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
