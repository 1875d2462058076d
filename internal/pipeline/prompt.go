package pipeline

import (
	"strings"

	"github.com/leefowlercu/text-to-cypher/internal/graph"
	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// maxHistoryChars bounds the total content length of conversation
// history embedded in a generation prompt. Oldest turns are dropped
// first so the most recent context survives truncation.
const maxHistoryChars = 8000

const generationInstructions = `You translate natural-language questions into Cypher queries for a property graph database.

Rules:
- Respond with exactly one executable Cypher statement.
- Do not include explanations, commentary, or markdown formatting.
- Use only the node labels, properties, and relationship types listed in the schema.
- If the question cannot be answered from the schema, return the closest reasonable query.`

const synthesisInstructions = `You summarize graph query results as a direct natural-language answer.

Rules:
- Answer the question using only the provided query results.
- Be concise and factual.
- If the results are empty, say that no matching data was found.`

// PromptBuilder assembles provider-agnostic message sequences for the
// two model invocations. Output is deterministic: identical inputs
// produce identical messages.
type PromptBuilder struct{}

// NewPromptBuilder creates a PromptBuilder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildGeneration produces the message sequence asking the model for a
// single Cypher statement answering the question over the schema.
func (b *PromptBuilder) BuildGeneration(schema *graph.Schema, history []providers.ChatMessage, question string) []providers.ChatMessage {
	var system strings.Builder
	system.WriteString(generationInstructions)
	system.WriteString("\n\nGraph schema:\n")
	system.WriteString(schema.PromptText())

	messages := make([]providers.ChatMessage, 0, len(history)+2)
	messages = append(messages, providers.ChatMessage{
		Role:    providers.RoleSystem,
		Content: system.String(),
	})
	messages = append(messages, truncateHistory(history, maxHistoryChars)...)
	messages = append(messages, providers.ChatMessage{
		Role:    providers.RoleUser,
		Content: question,
	})

	return messages
}

// BuildSynthesis produces the message sequence asking the model to
// answer the question from the schema, the executed statement, and
// its serialized result rows.
func (b *PromptBuilder) BuildSynthesis(question string, schema *graph.Schema, statement, resultJSON string) []providers.ChatMessage {
	var system strings.Builder
	system.WriteString(synthesisInstructions)
	system.WriteString("\n\nGraph schema:\n")
	system.WriteString(schema.PromptText())

	var user strings.Builder
	user.WriteString("Question: ")
	user.WriteString(question)
	user.WriteString("\n\nExecuted query:\n")
	user.WriteString(statement)
	user.WriteString("\n\nQuery results:\n")
	user.WriteString(resultJSON)

	return []providers.ChatMessage{
		{Role: providers.RoleSystem, Content: system.String()},
		{Role: providers.RoleUser, Content: user.String()},
	}
}

// truncateHistory drops whole turns from the front until the combined
// content length fits the budget. The newest turn always survives;
// when it alone exceeds the budget, its content is cut to the trailing
// budget-sized slice so the most recent context is never lost whole.
func truncateHistory(history []providers.ChatMessage, budget int) []providers.ChatMessage {
	if len(history) == 0 {
		return history
	}

	total := 0
	for _, msg := range history {
		total += len(msg.Content)
	}

	start := 0
	for start < len(history)-1 && total > budget {
		total -= len(history[start].Content)
		start++
	}

	kept := history[start:]
	if len(kept) == 1 && len(kept[0].Content) > budget {
		last := kept[0]
		last.Content = last.Content[len(last.Content)-budget:]
		return []providers.ChatMessage{last}
	}
	return kept
}
