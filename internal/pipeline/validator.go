package pipeline

import (
	"fmt"
	"strings"
)

// ValidateStatement performs structural checks on a statement before
// it reaches the engine: non-empty body, a recognized opening clause,
// and balanced brackets and quotes. Semantic errors are left to the
// engine itself; the goal here is only to skip a wasted round trip for
// statements that cannot possibly be valid.
func ValidateStatement(statement string) error {
	trimmed := strings.TrimSpace(statement)
	if trimmed == "" {
		return &ValidationError{Reason: "statement is empty"}
	}

	if !containsClause(trimmed) {
		return &ValidationError{Reason: "statement does not contain a recognized clause keyword"}
	}

	if err := checkBalanced(trimmed); err != nil {
		return err
	}

	return nil
}

func containsClause(statement string) bool {
	upper := strings.ToUpper(statement)
	for _, kw := range clauseKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// checkBalanced verifies bracket pairing and quote termination.
// Brackets inside string literals are ignored.
func checkBalanced(statement string) error {
	var stack []rune
	var quote rune

	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}

	runes := []rune(statement)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(', '[', '{':
			stack = append(stack, ch)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[ch] {
				return &ValidationError{Reason: fmt.Sprintf("unbalanced %q", string(ch))}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if quote != 0 {
		return &ValidationError{Reason: fmt.Sprintf("unterminated %q quote", string(quote))}
	}
	if len(stack) > 0 {
		return &ValidationError{Reason: fmt.Sprintf("unclosed %q", string(stack[len(stack)-1]))}
	}

	return nil
}
