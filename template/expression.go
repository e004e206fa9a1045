package template

import "unicode/utf8"

// Split cuts a variable interpolation line into head, variable and tail.
//
// The head ends at the first '{' and the variable starts two bytes later,
// skipping the opening marker. The variable ends at the first '}' in the
// line, searched from the start rather than from the opening brace, and
// the tail starts two bytes after it. A stray '}' inside the variable
// therefore ends it early.
//
// Split returns an error wrapping ErrMalformedExpression when either brace
// is missing, when the markers are ordered so that the offsets would fall
// outside the line, or when an offset would land inside a multi-byte
// character, as with a single '{' followed by "é".
func Split(line string) (ExpressionData, error) {
	found, i := findFirst(line, '{')
	if !found {
		return ExpressionData{}, newError("split", line, errNoOpenBrace)
	}
	found, k := findFirst(line, '}')
	if !found {
		return ExpressionData{}, newError("split", line, errNoCloseBrace)
	}
	if i+2 > k || k+2 > len(line) {
		return ExpressionData{}, newError("split", line, errBraceOrder)
	}
	if !runeBoundary(line, i+2) || !runeBoundary(line, k+2) {
		return ExpressionData{}, newError("split", line, errSplitRune)
	}

	return ExpressionData{
		Head:     line[:i],
		Variable: line[i+2 : k],
		Tail:     line[k+2:],
	}, nil
}

// findFirst returns the byte offset of the first occurrence of r.
// The scan steps over whole runes so multi-byte text before the brace
// never yields an offset inside a character. When r is absent it
// returns false and 0.
func findFirst(line string, r rune) (bool, int) {
	for i, c := range line {
		if c == r {
			return true, i
		}
	}
	return false, 0
}

// runeBoundary reports whether offset i starts a character or is the end
// of line.
func runeBoundary(line string, i int) bool {
	return i >= len(line) || utf8.RuneStart(line[i])
}
