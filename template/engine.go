package template

import (
	"fmt"
	"log/slog"
	"strings"
)

// Output for lines that have no rendering yet.
const (
	ForTagMessage       = "For Tag not implemented"
	IfTagMessage        = "If Tag not implemented"
	UnrecognizedMessage = "Unrecognized input"
)

// MissingPolicy decides what a variable absent from the context renders as.
type MissingPolicy int

const (
	// MissingEmpty renders an empty string.
	MissingEmpty MissingPolicy = iota
	// MissingPlaceholder renders the original {{variable}} marker.
	MissingPlaceholder
	// MissingError fails the line with ErrMissingVariable.
	MissingError
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingPlaceholder:
		return "placeholder"
	case MissingError:
		return "error"
	default:
		return "empty"
	}
}

// ParseMissingPolicy converts "empty", "placeholder" or "error" to a
// MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return MissingEmpty, true
	case "placeholder":
		return MissingPlaceholder, true
	case "error":
		return MissingError, true
	}
	return MissingEmpty, false
}

// Engine renders template lines one at a time against a variable context.
type Engine struct {
	classifier *Classifier
	missing    MissingPolicy
	trim       bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMatch sets the keyword detection mode of the engine's classifier.
func WithMatch(mode MatchMode) Option {
	return func(e *Engine) {
		e.classifier = NewClassifier(WithMatchMode(mode))
	}
}

// WithMissing sets the policy for variables absent from the context.
func WithMissing(p MissingPolicy) Option {
	return func(e *Engine) {
		e.missing = p
	}
}

// WithTrim controls whether surrounding whitespace is removed from the
// variable name before lookup, so that "{{ name }}" finds "name".
func WithTrim(trim bool) Option {
	return func(e *Engine) {
		e.trim = trim
	}
}

// NewEngine creates an engine with substring matching, empty rendering of
// missing variables and name trimming.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier: NewClassifier(),
		missing:    MissingEmpty,
		trim:       true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classifier returns the classifier the engine uses.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// RenderLine classifies line and renders it with variables.
// The Content is returned alongside the output so callers can report it.
// Tag and unrecognized lines render as fixed messages.
func (e *Engine) RenderLine(line string, variables map[string]string) (string, Content, error) {
	content := e.classifier.Classify(line)

	switch content.Type {
	case TypeLiteral:
		return content.Text, content, nil
	case TypeVariable:
		out, err := e.renderVariable(line, content.Expression, variables)
		return out, content, err
	case TypeTag:
		if content.Tag == ForTag {
			return ForTagMessage, content, nil
		}
		return IfTagMessage, content, nil
	default:
		return UnrecognizedMessage, content, nil
	}
}

func (e *Engine) renderVariable(line string, expr ExpressionData, variables map[string]string) (string, error) {
	name := expr.Variable
	if e.trim {
		name = strings.TrimSpace(name)
	}

	value, ok := variables[name]
	if !ok {
		switch e.missing {
		case MissingError:
			return "", newError("render", line, fmt.Errorf("%w: %s", ErrMissingVariable, name))
		case MissingPlaceholder:
			value = VarOpen + expr.Variable + VarClose
		default:
			slog.Debug("variable missing from context, rendering empty",
				slog.String("variable", name))
		}
	}

	return expr.Head + value + expr.Tail, nil
}

// Render renders every line of text and joins the results with newlines.
// It stops at the first line that fails.
func (e *Engine) Render(text string, variables map[string]string) (string, error) {
	if text == "" {
		return "", ErrEmpty
	}

	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		rendered, _, err := e.RenderLine(line, variables)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		out[i] = rendered
	}

	return strings.Join(out, "\n"), nil
}

// ValidateVariables checks that all required variables are provided.
// Returns an error wrapping ErrMissingVariable naming the first one missing.
func ValidateVariables(required []string, provided map[string]string) error {
	for _, name := range required {
		if _, ok := provided[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingVariable, name)
		}
	}
	return nil
}
