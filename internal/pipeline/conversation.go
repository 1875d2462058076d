package pipeline

import (
	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// ValidateMessages checks every message role against the accepted set.
// Roles are matched case-sensitively; order is preserved and no
// merging or deduplication is performed.
func ValidateMessages(messages []providers.ChatMessage) error {
	if len(messages) == 0 {
		return &InvalidInputError{Message: "conversation must contain at least one message"}
	}
	for _, msg := range messages {
		switch msg.Role {
		case providers.RoleUser, providers.RoleAssistant, providers.RoleSystem:
		default:
			return NewInvalidRoleError(msg.Role)
		}
	}
	return nil
}

// splitHistory separates the current question from the preceding
// turns. The final message carries the question; everything before it
// is history.
func splitHistory(messages []providers.ChatMessage) (history []providers.ChatMessage, question string) {
	last := messages[len(messages)-1]
	return messages[:len(messages)-1], last.Content
}
