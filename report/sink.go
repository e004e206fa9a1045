package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by NewSink for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats accepted by NewSink.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Sink receives records one at a time in input order.
type Sink interface {
	Write(rec Record) error
	// Flush writes anything buffered. It must be called once at the end.
	Flush() error
}

// NewSink creates the sink for format writing to w.
func NewSink(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewTextSink(w), nil
	case FormatJSON:
		return NewJSONSink(w), nil
	case FormatYAML:
		return NewYAMLSink(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// TextSink writes each record's output on its own line.
type TextSink struct {
	w *bufio.Writer
}

// NewTextSink creates a TextSink.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: bufio.NewWriter(w)}
}

func (s *TextSink) Write(rec Record) error {
	if _, err := s.w.WriteString(rec.Output); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

func (s *TextSink) Flush() error {
	return s.w.Flush()
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONSink creates a JSONSink.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONSink{w: bw, enc: enc}
}

func (s *JSONSink) Write(rec Record) error {
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record %d: %w", rec.Line, err)
	}
	return nil
}

func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// YAMLSink writes a stream of YAML documents, one per record.
type YAMLSink struct {
	enc *yaml.Encoder
}

// NewYAMLSink creates a YAMLSink.
func NewYAMLSink(w io.Writer) *YAMLSink {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAMLSink{enc: enc}
}

func (s *YAMLSink) Write(rec Record) error {
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record %d: %w", rec.Line, err)
	}
	return nil
}

func (s *YAMLSink) Flush() error {
	return s.enc.Close()
}
