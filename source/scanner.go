package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// MaxLineSize is the longest line a Scanner accepts.
const MaxLineSize = 10 * 1024 * 1024

// Scanner reads lines from a reader.
type Scanner struct {
	sc *bufio.Scanner
	n  int
}

// NewScanner creates a Scanner over r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, MaxLineSize)
	return &Scanner{sc: sc}
}

// Scan advances to the next line. It returns false at the end of input or
// on a read error, which Err reports.
func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.n++
	return true
}

// Text returns the current line without its terminator.
func (s *Scanner) Text() string {
	return s.sc.Text()
}

// LineNumber returns the 1-based number of the current line.
func (s *Scanner) LineNumber() int {
	return s.n
}

// Err returns the first non-EOF error encountered.
func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil {
		return fmt.Errorf("scan line %d: %w", s.n+1, err)
	}
	return nil
}

// ReadAll reads every line from r.
func ReadAll(r io.Reader) ([]string, error) {
	var lines []string
	sc := NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadFile reads every line of the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template file: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}
