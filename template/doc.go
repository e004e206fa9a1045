// Package template classifies and renders templated text one line at a time.
//
// Every line falls into exactly one category:
//
//   - Literal: no markers, passed through unchanged
//   - TemplateVariable: a {{variable}} interpolation
//   - Tag: a {% for %} or {% if %} structural tag
//   - Unrecognized: markers that form neither of the above
//
// Lines are independent. There is no state between calls and no construct
// spans more than one line.
//
// # Classification
//
//	c := template.Classify("Hi {{name}}, welcome")
//	// c.Type == template.TypeVariable
//	// c.Expression == template.ExpressionData{Head: "Hi ", Variable: "name", Tail: ", welcome"}
//
//	template.Classify("{% for x in xs %}") // Tag(ForTag)
//	template.Classify("{% endif %}")       // Tag(IfTag)
//	template.Classify("{% foo %}")         // Unrecognized
//
// Keywords are matched as plain substrings of the whole line by default,
// so "{% information %}" is a for tag. A classifier built with
// WithMatchMode(MatchKeyword) matches only the first word of the tag body.
//
// # Splitting
//
// Split cuts a variable line at its first '{' and first '}':
//
//	expr, err := template.Split("Hello, {{name}}!")
//	// expr.Head == "Hello, ", expr.Variable == "name", expr.Tail == "!"
//
// Lines without braces, or with a '}' before the first '{', fail with
// ErrMalformedExpression.
//
// # Rendering
//
//	engine := template.NewEngine(template.WithMissing(template.MissingError))
//	out, _, err := engine.RenderLine("Hi {{ name }}!", map[string]string{"name": "Ujjawal"})
//	// out == "Hi Ujjawal!"
//
// Tags have no rendering yet and produce ForTagMessage or IfTagMessage.
package template
