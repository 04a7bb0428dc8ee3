package platform

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// AttributeID identifies a text formatting attribute.
type AttributeID int

const (
	AttrAnimationStyle AttributeID = iota + 1
	AttrBackgroundColor
	AttrBulletStyle
	AttrCapStyle
	AttrCulture
	AttrFontName
	AttrFontSize
	AttrFontWeight
	AttrForegroundColor
	AttrHorizontalTextAlignment
	AttrIndentationFirstLine
	AttrIndentationLeading
	AttrIndentationTrailing
	AttrIsHidden
	AttrIsItalic
	AttrIsReadOnly
	AttrIsSubscript
	AttrIsSuperscript
	AttrMarginBottom
	AttrMarginLeading
	AttrMarginTop
	AttrMarginTrailing
	AttrOutlineStyles
	AttrOverlineColor
	AttrOverlineStyle
	AttrStrikethroughColor
	AttrStrikethroughStyle
	AttrTabs
	AttrTextFlowDirections
	AttrUnderlineColor
	AttrUnderlineStyle
)

// AttributeKind is the value type of an attribute.
type AttributeKind int

const (
	KindEnum AttributeKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindCulture
	KindFloatArray
)

func (k AttributeKind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindCulture:
		return "culture"
	case KindFloatArray:
		return "float-array"
	default:
		return fmt.Sprintf("AttributeKind(%d)", int(k))
	}
}

// EnumValue is one legal value of an enumerated attribute.
type EnumValue struct {
	Name  string
	Value int
}

// AttributeDescriptor declares an attribute's identity, value type and
// legal values. Enum attributes carry int values.
type AttributeDescriptor struct {
	ID      AttributeID
	Name    string // fixture key, e.g. "font_name"
	Kind    AttributeKind
	Enum    []EnumValue
	Default any
}

type sentinel string

func (s sentinel) String() string { return string(s) }

// Sentinel attribute values.
var (
	// NotSupported is returned for attributes a control does not expose.
	NotSupported any = sentinel("NotSupported")
	// Mixed is returned when an attribute varies across the queried range.
	Mixed any = sentinel("Mixed")
)

var (
	animationStyles = []EnumValue{
		{"Other", -1}, {"None", 0}, {"LasVegasLights", 1}, {"BlinkingBackground", 2},
		{"SparkleText", 3}, {"MarchingBlackAnts", 4}, {"MarchingRedAnts", 5}, {"Shimmer", 6},
	}
	bulletStyles = []EnumValue{
		{"Other", -1}, {"None", 0}, {"HollowRoundBullet", 1}, {"FilledRoundBullet", 2},
		{"HollowSquareBullet", 3}, {"FilledSquareBullet", 4}, {"DashBullet", 5},
	}
	capStyles = []EnumValue{
		{"Other", -1}, {"None", 0}, {"SmallCap", 1}, {"AllCap", 2}, {"AllPetiteCaps", 3},
		{"PetiteCaps", 4}, {"Unicase", 5}, {"Titling", 6},
	}
	alignments = []EnumValue{
		{"Left", 0}, {"Centered", 1}, {"Right", 2}, {"Justified", 3},
	}
	outlineStyles = []EnumValue{
		{"None", 0}, {"Outline", 1}, {"Shadow", 2}, {"Engraved", 4}, {"Embossed", 8},
	}
	lineStyles = []EnumValue{
		{"Other", -1}, {"None", 0}, {"Single", 1}, {"WordsOnly", 2}, {"Double", 3},
		{"Dot", 4}, {"Dash", 5}, {"DashDot", 6}, {"DashDotDot", 7}, {"Wavy", 8},
		{"ThickSingle", 9}, {"DoubleWavy", 11}, {"ThickWavy", 12}, {"LongDash", 13},
		{"ThickDash", 14}, {"ThickDashDot", 15}, {"ThickDashDotDot", 16},
		{"ThickDot", 17}, {"ThickLongDash", 18},
	}
	flowDirections = []EnumValue{
		{"Default", 0}, {"RightToLeft", 1}, {"BottomToTop", 2}, {"Vertical", 4},
	}
)

// Attributes is the registry of every checked text attribute.
var Attributes = []AttributeDescriptor{
	{ID: AttrAnimationStyle, Name: "animation_style", Kind: KindEnum, Enum: animationStyles, Default: 0},
	{ID: AttrBackgroundColor, Name: "background_color", Kind: KindInt, Default: 0xFFFFFF},
	{ID: AttrBulletStyle, Name: "bullet_style", Kind: KindEnum, Enum: bulletStyles, Default: 0},
	{ID: AttrCapStyle, Name: "cap_style", Kind: KindEnum, Enum: capStyles, Default: 0},
	{ID: AttrCulture, Name: "culture", Kind: KindCulture, Default: language.AmericanEnglish},
	{ID: AttrFontName, Name: "font_name", Kind: KindString, Default: "Segoe UI"},
	{ID: AttrFontSize, Name: "font_size", Kind: KindFloat, Default: 9.0},
	{ID: AttrFontWeight, Name: "font_weight", Kind: KindInt, Default: 400},
	{ID: AttrForegroundColor, Name: "foreground_color", Kind: KindInt, Default: 0x000000},
	{ID: AttrHorizontalTextAlignment, Name: "horizontal_text_alignment", Kind: KindEnum, Enum: alignments, Default: 0},
	{ID: AttrIndentationFirstLine, Name: "indentation_first_line", Kind: KindFloat, Default: 0.0},
	{ID: AttrIndentationLeading, Name: "indentation_leading", Kind: KindFloat, Default: 0.0},
	{ID: AttrIndentationTrailing, Name: "indentation_trailing", Kind: KindFloat, Default: 0.0},
	{ID: AttrIsHidden, Name: "is_hidden", Kind: KindBool, Default: false},
	{ID: AttrIsItalic, Name: "is_italic", Kind: KindBool, Default: false},
	{ID: AttrIsReadOnly, Name: "is_read_only", Kind: KindBool, Default: false},
	{ID: AttrIsSubscript, Name: "is_subscript", Kind: KindBool, Default: false},
	{ID: AttrIsSuperscript, Name: "is_superscript", Kind: KindBool, Default: false},
	{ID: AttrMarginBottom, Name: "margin_bottom", Kind: KindFloat, Default: 0.0},
	{ID: AttrMarginLeading, Name: "margin_leading", Kind: KindFloat, Default: 0.0},
	{ID: AttrMarginTop, Name: "margin_top", Kind: KindFloat, Default: 0.0},
	{ID: AttrMarginTrailing, Name: "margin_trailing", Kind: KindFloat, Default: 0.0},
	{ID: AttrOutlineStyles, Name: "outline_styles", Kind: KindEnum, Enum: outlineStyles, Default: 0},
	{ID: AttrOverlineColor, Name: "overline_color", Kind: KindInt, Default: 0x000000},
	{ID: AttrOverlineStyle, Name: "overline_style", Kind: KindEnum, Enum: lineStyles, Default: 0},
	{ID: AttrStrikethroughColor, Name: "strikethrough_color", Kind: KindInt, Default: 0x000000},
	{ID: AttrStrikethroughStyle, Name: "strikethrough_style", Kind: KindEnum, Enum: lineStyles, Default: 0},
	{ID: AttrTabs, Name: "tabs", Kind: KindFloatArray, Default: []float64{}},
	{ID: AttrTextFlowDirections, Name: "text_flow_directions", Kind: KindEnum, Enum: flowDirections, Default: 0},
	{ID: AttrUnderlineColor, Name: "underline_color", Kind: KindInt, Default: 0x000000},
	{ID: AttrUnderlineStyle, Name: "underline_style", Kind: KindEnum, Enum: lineStyles, Default: 0},
}

func (id AttributeID) String() string {
	if d, ok := LookupAttribute(id); ok {
		return d.Name
	}
	return fmt.Sprintf("AttributeID(%d)", int(id))
}

// LookupAttribute returns the descriptor registered for id.
func LookupAttribute(id AttributeID) (AttributeDescriptor, bool) {
	for _, d := range Attributes {
		if d.ID == id {
			return d, true
		}
	}
	return AttributeDescriptor{}, false
}

// AttributeByName returns the descriptor whose fixture key is name.
func AttributeByName(name string) (AttributeDescriptor, bool) {
	for _, d := range Attributes {
		if d.Name == name {
			return d, true
		}
	}
	return AttributeDescriptor{}, false
}

// LegalValues returns every legal value of an enum or bool attribute, and nil
// for open-ended kinds.
func (d AttributeDescriptor) LegalValues() []any {
	switch d.Kind {
	case KindEnum:
		vals := make([]any, len(d.Enum))
		for i, e := range d.Enum {
			vals[i] = e.Value
		}
		return vals
	case KindBool:
		return []any{false, true}
	default:
		return nil
	}
}

// Accepts reports whether v has the Go type used for this attribute's values.
func (d AttributeDescriptor) Accepts(v any) bool {
	switch d.Kind {
	case KindEnum, KindInt:
		_, ok := v.(int)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindFloat:
		_, ok := v.(float64)
		return ok
	case KindString:
		_, ok := v.(string)
		return ok
	case KindCulture:
		_, ok := v.(language.Tag)
		return ok
	case KindFloatArray:
		_, ok := v.([]float64)
		return ok
	}
	return false
}

// Parse converts a YAML-decoded value into this attribute's value type.
func (d AttributeDescriptor) Parse(raw any) (any, error) {
	switch d.Kind {
	case KindEnum:
		switch v := raw.(type) {
		case int:
			return v, nil
		case string:
			for _, e := range d.Enum {
				if strings.EqualFold(e.Name, v) {
					return e.Value, nil
				}
			}
		}
	case KindBool:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
	case KindInt:
		switch v := raw.(type) {
		case int:
			return v, nil
		case string:
			n, err := strconv.ParseInt(v, 0, 64)
			if err == nil {
				return int(n), nil
			}
		}
	case KindFloat:
		if f, ok := toFloat(raw); ok {
			return f, nil
		}
	case KindString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	case KindCulture:
		if v, ok := raw.(string); ok {
			return ParseCulture(v)
		}
	case KindFloatArray:
		items, ok := raw.([]any)
		if !ok {
			break
		}
		out := make([]float64, 0, len(items))
		for _, item := range items {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("attribute %s: non-numeric element %v", d.Name, item)
			}
			out = append(out, f)
		}
		return out, nil
	}
	return nil, fmt.Errorf("attribute %s: cannot use %v (%T) as %s", d.Name, raw, raw, d.Kind)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ValuesEqual compares two attribute values of any kind.
func ValuesEqual(a, b any) bool {
	if x, ok := a.([]float64); ok {
		y, ok := b.([]float64)
		return ok && slices.Equal(x, y)
	}
	if _, ok := b.([]float64); ok {
		return false
	}
	return a == b
}

// lcidTags maps the Windows locale identifiers accepted in fixtures.
var lcidTags = map[uint64]language.Tag{
	0x0009: language.English,
	0x0036: language.Afrikaans,
	0x0407: language.MustParse("de-DE"),
	0x0409: language.AmericanEnglish,
	0x040C: language.MustParse("fr-FR"),
	0x040D: language.MustParse("he-IL"),
	0x040F: language.MustParse("is-IS"),
	0x0411: language.MustParse("ja-JP"),
	0x0804: language.MustParse("zh-CN"),
}

// ParseCulture accepts a BCP 47 tag ("en-US") or a hex LCID ("0x0409").
func ParseCulture(s string) (language.Tag, error) {
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		n, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return language.Und, fmt.Errorf("invalid LCID %q: %w", s, err)
		}
		tag, ok := lcidTags[n]
		if !ok {
			return language.Und, fmt.Errorf("unknown LCID %q", s)
		}
		return tag, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid culture %q: %w", s, err)
	}
	return tag, nil
}
