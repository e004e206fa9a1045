package report

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/linetmpl/template"
)

// Record is the report for one input line.
type Record struct {
	Line       int         `json:"line" yaml:"line" jsonschema:"minimum=1,description=1-based input line number"`
	Input      string      `json:"input" yaml:"input" jsonschema:"description=Input line without its terminator"`
	Type       string      `json:"type" yaml:"type" jsonschema:"enum=literal,enum=variable,enum=tag,enum=unrecognized"`
	Tag        string      `json:"tag,omitempty" yaml:"tag,omitempty" jsonschema:"enum=for,enum=if"`
	Expression *Expression `json:"expression,omitempty" yaml:"expression,omitempty"`
	Output     string      `json:"output,omitempty" yaml:"output,omitempty" jsonschema:"description=Rendered text"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Expression is the split of a variable line.
type Expression struct {
	Head     string `json:"head" yaml:"head"`
	Variable string `json:"variable" yaml:"variable"`
	Tail     string `json:"tail" yaml:"tail"`
}

// NewRecord builds the Record for line number n.
func NewRecord(n int, input string, c template.Content) Record {
	rec := Record{
		Line:  n,
		Input: input,
		Type:  c.Type.String(),
	}

	switch c.Type {
	case template.TypeTag:
		rec.Tag = c.Tag.String()
	case template.TypeVariable:
		rec.Expression = &Expression{
			Head:     c.Expression.Head,
			Variable: c.Expression.Variable,
			Tail:     c.Expression.Tail,
		}
	}

	return rec
}

// WithOutput returns a copy of r with the rendered text or error set.
func (r Record) WithOutput(output string, err error) Record {
	r.Output = output
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Schema returns the JSON Schema of Record, indented.
func Schema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Record{})
	schema.Title = "linetmpl line record"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
