package platform

// Element is a live node in the target application's accessibility tree.
// FirstChild and NextSibling return nil when no such node exists.
type Element interface {
	Name() string
	ClassName() string
	AutomationID() string
	IsEnabled() bool
	Bounds() Rect

	// IsExpandable reports whether the element is a collapsed container whose
	// children only become observable after Expand.
	IsExpandable() bool
	Expand() error
	FirstChild() Element
	NextSibling() Element

	TextPattern() (TextPattern, bool)
	ValuePattern() (ValuePattern, bool)
}

// ValuePattern exposes an element's editable string value.
type ValuePattern interface {
	Value() (string, error)
	IsReadOnly() bool
	SetValue(value string) error
}

// TextPattern exposes the structured text of a control.
type TextPattern interface {
	DocumentRange() TextRange
	SupportedTextSelection() TextSelection
	GetSelection() ([]TextRange, error)
	GetVisibleRanges() ([]TextRange, error)
	RangeFromChild(child Element) (TextRange, error)
	RangeFromPoint(pt Point) (TextRange, error)
}

// TextRange is a span of text inside a text pattern's document.
//
// Move counts are signed: negative counts move toward the document start and
// the returned number of units moved carries the same sign.
type TextRange interface {
	// Clone returns an independent copy that shares no mutable state.
	Clone() TextRange
	Compare(other TextRange) (bool, error)
	CompareEndpoints(ep Endpoint, target TextRange, targetEp Endpoint) (int, error)

	MoveEndpointByUnit(ep Endpoint, unit TextUnit, count int) (int, error)
	MoveEndpointByRange(ep Endpoint, target TextRange, targetEp Endpoint) error
	Move(unit TextUnit, count int) (int, error)
	ExpandToEnclosingUnit(unit TextUnit) error

	// GetText returns at most maxLength characters; -1 means no limit.
	GetText(maxLength int) (string, error)
	GetAttributeValue(attr AttributeID) (any, error)
	// FindAttribute returns nil when no subrange carries the value.
	FindAttribute(attr AttributeID, value any, backward bool) (TextRange, error)
	// FindText returns nil when the text does not occur.
	FindText(text string, backward, ignoreCase bool) (TextRange, error)
	GetBoundingRectangles() ([]Rect, error)
	Select() error
}

// Application is an opened target application.
type Application interface {
	// Root returns the top-level window element.
	Root() Element
	// MenuBar returns the application's menu bar container.
	MenuBar() (Element, error)
	FindByAutomationID(id string) (Element, error)
}

// Launcher opens target applications.
type Launcher interface {
	Launch(opts LaunchOptions) (Application, error)
}
