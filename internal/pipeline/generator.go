package pipeline

import (
	"context"
	"strings"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// invoker is the single seam through which the pipeline reaches any
// model provider.
type invoker interface {
	Invoke(ctx context.Context, ref providers.ModelRef, messages []providers.ChatMessage) (string, error)
}

// GeneratedQuery pairs the raw model output with the statement
// isolated from it.
type GeneratedQuery struct {
	RawModelText       string
	ExtractedStatement string
}

// Generator turns a prompt into a single Cypher statement via one
// model invocation.
type Generator struct {
	router invoker
}

// NewGenerator creates a Generator backed by the given router.
func NewGenerator(router invoker) *Generator {
	return &Generator{router: router}
}

// Generate performs exactly one model invocation and extracts a
// statement from the response. A failed invocation or an
// unextractable response yields a GenerationError.
func (g *Generator) Generate(ctx context.Context, ref providers.ModelRef, messages []providers.ChatMessage) (*GeneratedQuery, error) {
	raw, err := g.router.Invoke(ctx, ref, messages)
	if err != nil {
		return nil, &GenerationError{Reason: "model invocation failed", Err: err}
	}

	statement, ok := ExtractStatement(raw)
	if !ok {
		return nil, &GenerationError{Reason: "no statement found in model response"}
	}

	return &GeneratedQuery{
		RawModelText:       raw,
		ExtractedStatement: statement,
	}, nil
}

// clauseKeywords are the statement-opening keywords extraction and
// validation recognize. Matching is case-insensitive.
var clauseKeywords = []string{
	"MATCH",
	"OPTIONAL MATCH",
	"CREATE",
	"MERGE",
	"RETURN",
	"CALL",
	"UNWIND",
	"WITH",
	"DELETE",
	"DETACH DELETE",
	"SET",
	"REMOVE",
}

// ExtractStatement isolates one executable statement from raw model
// output. Code fences are stripped, leading commentary is skipped up
// to the first line opening with a recognized clause keyword, and
// anything past the first statement terminator is dropped. Returns
// false when no statement can be isolated.
func ExtractStatement(raw string) (string, bool) {
	text := stripCodeFences(raw)

	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if startsWithClause(strings.TrimSpace(line)) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	statement := strings.TrimSpace(strings.Join(lines[start:], "\n"))

	// Only the first statement survives when the model emits several.
	if idx := terminatorIndex(statement); idx >= 0 {
		statement = strings.TrimSpace(statement[:idx])
	}

	if statement == "" {
		return "", false
	}
	return statement, true
}

// stripCodeFences returns the content of the first fenced block when
// one exists, otherwise the input unchanged.
func stripCodeFences(raw string) string {
	open := strings.Index(raw, "```")
	if open < 0 {
		return raw
	}

	rest := raw[open+3:]
	// Drop a language tag on the fence line.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine != "" && !startsWithClause(firstLine) {
			rest = rest[nl+1:]
		}
	}

	if close := strings.Index(rest, "```"); close >= 0 {
		rest = rest[:close]
	}

	return rest
}

// terminatorIndex returns the byte offset of the first semicolon that
// sits outside any string literal, or -1. Semicolons inside quoted
// values do not terminate the statement.
func terminatorIndex(statement string) int {
	var quote rune
	runes := []rune(statement)
	offset := 0
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if quote != 0 {
			if ch == '\\' && i+1 < len(runes) {
				offset += len(string(ch)) + len(string(runes[i+1]))
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			offset += len(string(ch))
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case ';':
			return offset
		}
		offset += len(string(ch))
	}
	return -1
}

func startsWithClause(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range clauseKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}
