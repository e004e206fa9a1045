package template

import "strings"

// Marker pairs recognized by the classifier.
const (
	TagOpen  = "{%"
	TagClose = "%}"
	VarOpen  = "{{"
	VarClose = "}}"
)

// MatchMode selects how loop and conditional keywords are detected inside
// a tag line.
type MatchMode int

const (
	// MatchSubstring looks for the keywords anywhere in the line, so
	// "{% information %}" counts as a for tag because it contains both
	// "for" and "in".
	MatchSubstring MatchMode = iota

	// MatchKeyword splits the tag body into words and matches only the
	// first word.
	MatchKeyword
)

// String returns the name accepted by ParseMatchMode.
func (m MatchMode) String() string {
	if m == MatchKeyword {
		return "keyword"
	}
	return "substring"
}

// ParseMatchMode converts "substring" or "keyword" to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, true
	case "keyword":
		return MatchKeyword, true
	}
	return MatchSubstring, false
}

// Classifier assigns a Content to each line it is given.
// The zero value uses MatchSubstring. A Classifier holds no state between
// calls and is safe for concurrent use.
type Classifier struct {
	mode MatchMode
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithMatchMode sets the keyword detection mode.
func WithMatchMode(mode MatchMode) ClassifierOption {
	return func(c *Classifier) {
		c.mode = mode
	}
}

// NewClassifier creates a classifier with the given options applied.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the keyword detection mode.
func (c *Classifier) Mode() MatchMode {
	return c.mode
}

var defaultClassifier = &Classifier{}

// Classify classifies line with the default substring matching.
func Classify(line string) Content {
	return defaultClassifier.Classify(line)
}

// Classify returns the classification of a single line.
//
// Rules are applied in order and the first match wins:
//
//  1. {% %} markers with a for keyword: Tag(ForTag)
//  2. {% %} markers with an if keyword: Tag(IfTag)
//  3. {{ }} markers: TemplateVariable
//  4. neither marker pair: Literal
//  5. anything else: Unrecognized
//
// Marker pairs are presence tests: "{%" and "%}" may appear anywhere and
// in any order.
func (c *Classifier) Classify(line string) Content {
	isTagExpression := containsPair(line, TagOpen, TagClose)
	isTemplateVariable := containsPair(line, VarOpen, VarClose)

	if isTagExpression {
		if kind, ok := c.tagKind(line); ok {
			return Tag(kind)
		}
	}

	switch {
	case isTemplateVariable:
		expr, err := Split(line)
		if err != nil {
			return Unrecognized()
		}
		return TemplateVariable(expr)
	case !isTagExpression:
		return Literal(line)
	default:
		return Unrecognized()
	}
}

func (c *Classifier) tagKind(line string) (TagKind, bool) {
	if c.mode == MatchKeyword {
		return keywordTagKind(line)
	}
	return substringTagKind(line)
}

// substringTagKind checks the keywords as unanchored substrings of the
// whole line. For wins over if.
func substringTagKind(line string) (TagKind, bool) {
	isForTag := (strings.Contains(line, "for") && strings.Contains(line, "in")) ||
		strings.Contains(line, "endfor")
	if isForTag {
		return ForTag, true
	}
	isIfTag := strings.Contains(line, "if") || strings.Contains(line, "endif")
	if isIfTag {
		return IfTag, true
	}
	return 0, false
}

// keywordTagKind matches the first word of the tag body.
func keywordTagKind(line string) (TagKind, bool) {
	words := tagWords(line)
	if len(words) == 0 {
		return 0, false
	}
	switch words[0] {
	case "for":
		for _, w := range words[1:] {
			if w == "in" {
				return ForTag, true
			}
		}
		return 0, false
	case "endfor":
		return ForTag, true
	case "if", "endif":
		return IfTag, true
	}
	return 0, false
}

func containsPair(line, open, close string) bool {
	return strings.Contains(line, open) && strings.Contains(line, close)
}
