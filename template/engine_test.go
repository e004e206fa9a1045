package template

import (
	"errors"
	"strings"
	"testing"
)

func TestEngine_RenderLine(t *testing.T) {
	e := NewEngine()
	vars := map[string]string{"name": "Ujjawal", "city": "NewDelhi"}

	tests := []struct {
		name     string
		line     string
		want     string
		wantType ContentType
	}{
		{
			name:     "literal",
			line:     "<h1>Title</h1>",
			want:     "<h1>Title</h1>",
			wantType: TypeLiteral,
		},
		{
			name:     "variable",
			line:     "Hi {{name}}!",
			want:     "Hi Ujjawal!",
			wantType: TypeVariable,
		},
		{
			name:     "variable with whitespace",
			line:     "City: {{ city }}",
			want:     "City: NewDelhi",
			wantType: TypeVariable,
		},
		{
			name:     "missing variable renders empty",
			line:     "Hello, {{nobody}}!",
			want:     "Hello, !",
			wantType: TypeVariable,
		},
		{
			name:     "for tag",
			line:     "{% for x in xs %}",
			want:     ForTagMessage,
			wantType: TypeTag,
		},
		{
			name:     "if tag",
			line:     "{% endif %}",
			want:     IfTagMessage,
			wantType: TypeTag,
		},
		{
			name:     "unrecognized",
			line:     "{% foo %}",
			want:     UnrecognizedMessage,
			wantType: TypeUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, content, err := e.RenderLine(tt.line, vars)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if content.Type != tt.wantType {
				t.Errorf("type = %v, want %v", content.Type, tt.wantType)
			}
		})
	}
}

func TestEngine_RenderLine_MissingPolicy(t *testing.T) {
	line := "Hi {{ name }}!"

	t.Run("placeholder keeps raw marker", func(t *testing.T) {
		e := NewEngine(WithMissing(MissingPlaceholder))
		got, _, err := e.RenderLine(line, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Hi {{ name }}!" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("error names variable", func(t *testing.T) {
		e := NewEngine(WithMissing(MissingError))
		_, content, err := e.RenderLine(line, map[string]string{})
		if !errors.Is(err, ErrMissingVariable) {
			t.Fatalf("expected ErrMissingVariable, got %v", err)
		}
		if !strings.Contains(err.Error(), "name") {
			t.Errorf("error %q does not name the variable", err)
		}
		if content.Type != TypeVariable {
			t.Errorf("type = %v, want variable", content.Type)
		}
	})

	t.Run("error policy with present variable", func(t *testing.T) {
		e := NewEngine(WithMissing(MissingError))
		got, _, err := e.RenderLine(line, map[string]string{"name": "Bob"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Hi Bob!" {
			t.Errorf("got %q", got)
		}
	})
}

func TestEngine_RenderLine_NoTrim(t *testing.T) {
	e := NewEngine(WithTrim(false))
	vars := map[string]string{"name": "trimmed", " name ": "raw"}

	got, _, err := e.RenderLine("{{ name }}", vars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "raw" {
		t.Errorf("got %q, want %q", got, "raw")
	}
}

func TestEngine_WithMatch(t *testing.T) {
	e := NewEngine(WithMatch(MatchKeyword))
	if e.Classifier().Mode() != MatchKeyword {
		t.Fatalf("mode = %v, want keyword", e.Classifier().Mode())
	}

	got, _, err := e.RenderLine("{% information %}", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != UnrecognizedMessage {
		t.Errorf("got %q, want %q", got, UnrecognizedMessage)
	}
}

func TestEngine_Render(t *testing.T) {
	e := NewEngine()

	t.Run("multiple lines", func(t *testing.T) {
		text := "<h1>Title</h1>\nHi {{name}}!\n{% for x in xs %}\n{% endif %}"
		got, err := e.Render(text, map[string]string{"name": "Ujjawal"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "<h1>Title</h1>\nHi Ujjawal!\n" + ForTagMessage + "\n" + IfTagMessage
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := e.Render("", nil)
		if !errors.Is(err, ErrEmpty) {
			t.Errorf("expected ErrEmpty, got %v", err)
		}
	})

	t.Run("failing line number", func(t *testing.T) {
		strict := NewEngine(WithMissing(MissingError))
		_, err := strict.Render("ok\n{{missing}}", nil)
		if !errors.Is(err, ErrMissingVariable) {
			t.Fatalf("expected ErrMissingVariable, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "line 2:") {
			t.Errorf("error %q should start with line number", err)
		}
	})
}

func TestVariables(t *testing.T) {
	lines := []string{
		"Hi {{name}}",
		"{{ city }} and {{name}}",
		"{{name}} again",
		"{% for x in xs %}",
		"{{}}",
		"{{user.name}}",
		"plain",
	}
	got := Variables(lines)
	want := []string{"name", "city"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateVariables(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		provided map[string]string
		wantErr  bool
	}{
		{"all provided", []string{"a", "b"}, map[string]string{"a": "1", "b": "2"}, false},
		{"missing one", []string{"a", "b"}, map[string]string{"a": "1"}, true},
		{"nothing required", nil, nil, false},
		{"nil context", []string{"a"}, nil, true},
		{"empty value counts", []string{"a"}, map[string]string{"a": ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVariables(tt.required, tt.provided)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingVariable) {
					t.Errorf("expected ErrMissingVariable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseMissingPolicy(t *testing.T) {
	for _, p := range []MissingPolicy{MissingEmpty, MissingPlaceholder, MissingError} {
		got, ok := ParseMissingPolicy(p.String())
		if !ok || got != p {
			t.Errorf("ParseMissingPolicy(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParseMissingPolicy("panic"); ok {
		t.Error("expected unknown policy to be rejected")
	}
}
