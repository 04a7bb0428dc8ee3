package model

import (
	"slices"
	"strings"
)

// FilterByClass keeps elements whose class is in classes. Matching
// descendants of non-matching elements are promoted to the parent.
func FilterByClass(elements []Element, classes []string) []Element {
	if len(classes) == 0 {
		return elements
	}
	var result []Element
	for _, el := range elements {
		children := FilterByClass(el.Children, classes)
		if slices.Contains(classes, el.Class) {
			filtered := el
			filtered.Children = children
			result = append(result, filtered)
		} else if len(children) > 0 {
			result = append(result, children...)
		}
	}
	return result
}

// FilterByText keeps elements whose name or automation id contains text
// (case-insensitive), along with their ancestors.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		matched := strings.Contains(strings.ToLower(el.Name), textLower) ||
			strings.Contains(strings.ToLower(el.AutomationID), textLower)
		childMatches := FilterByText(el.Children, text)
		if matched || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

// Find returns the first element, depth first, with the given automation id.
func Find(elements []Element, automationID string) (Element, bool) {
	for _, el := range elements {
		if el.AutomationID == automationID {
			return el, true
		}
		if found, ok := Find(el.Children, automationID); ok {
			return found, true
		}
	}
	return Element{}, false
}
