package template

import "strings"

// tagWords returns the whitespace separated words between the first "{%"
// and the "%}" that follows it. A line whose closing marker only appears
// before the opening one has no words.
func tagWords(line string) []string {
	start := strings.Index(line, TagOpen)
	if start < 0 {
		return nil
	}
	body := line[start+len(TagOpen):]
	end := strings.Index(body, TagClose)
	if end < 0 {
		return nil
	}
	return strings.Fields(body[:end])
}

// isValidIdentifier checks if a string is a valid variable name.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		// First character cannot be a digit
		if i == 0 && ch >= '0' && ch <= '9' {
			return false
		}
		isLower := ch >= 'a' && ch <= 'z'
		isUpper := ch >= 'A' && ch <= 'Z'
		isDigit := ch >= '0' && ch <= '9'
		if !isLower && !isUpper && !isDigit && ch != '_' {
			return false
		}
	}
	return true
}

// Variables returns the names referenced by the variable lines among
// lines, trimmed and deduplicated in first-seen order. Names that are not
// identifiers, such as "user.name" or "", are skipped.
func (c *Classifier) Variables(lines []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, line := range lines {
		content := c.Classify(line)
		if content.Type != TypeVariable {
			continue
		}
		name := strings.TrimSpace(content.Expression.Variable)
		if !isValidIdentifier(name) || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}

	return result
}

// Variables is Classifier.Variables with the default classifier.
func Variables(lines []string) []string {
	return defaultClassifier.Variables(lines)
}
