package template

// ContentType identifies which variant a Content holds.
type ContentType int

const (
	// TypeUnrecognized marks a line with markers that form neither a tag
	// nor a variable interpolation.
	TypeUnrecognized ContentType = iota
	// TypeLiteral marks a line with no markers at all.
	TypeLiteral
	// TypeVariable marks a line with a {{ ... }} pair.
	TypeVariable
	// TypeTag marks a line with a {% ... %} pair holding a loop or
	// conditional keyword.
	TypeTag
)

// String returns the lowercase name used in reports.
func (t ContentType) String() string {
	switch t {
	case TypeLiteral:
		return "literal"
	case TypeVariable:
		return "variable"
	case TypeTag:
		return "tag"
	default:
		return "unrecognized"
	}
}

// TagKind says whether a tag line is a loop or a conditional.
type TagKind int

const (
	ForTag TagKind = iota + 1
	IfTag
)

func (k TagKind) String() string {
	switch k {
	case ForTag:
		return "for"
	case IfTag:
		return "if"
	default:
		return ""
	}
}

// ExpressionData is a variable interpolation line cut into three parts.
type ExpressionData struct {
	// Head is the text before the opening marker.
	Head string

	// Variable is the raw text between the markers, not trimmed.
	Variable string

	// Tail is the text after the closing marker.
	Tail string
}

// Content is the classification of a single line. Only the fields that
// belong to Type are set, so two Contents compare equal with == exactly
// when they describe the same classification.
type Content struct {
	Type       ContentType
	Text       string         // TypeLiteral
	Expression ExpressionData // TypeVariable
	Tag        TagKind        // TypeTag
}

// Literal returns the Content for a line passed through unchanged.
func Literal(text string) Content {
	return Content{Type: TypeLiteral, Text: text}
}

// TemplateVariable returns the Content for a variable interpolation line.
func TemplateVariable(expr ExpressionData) Content {
	return Content{Type: TypeVariable, Expression: expr}
}

// Tag returns the Content for a loop or conditional tag line.
func Tag(kind TagKind) Content {
	return Content{Type: TypeTag, Tag: kind}
}

// Unrecognized returns the Content for ambiguous or malformed input.
func Unrecognized() Content {
	return Content{Type: TypeUnrecognized}
}
