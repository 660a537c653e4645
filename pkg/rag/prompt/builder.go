package prompt

import (
	"fmt"
	"strings"

	"rag-kb-be/internal/constant"
	"rag-kb-be/internal/entity"
)

// FormatHistory renders prior session messages as a "Previous
// conversation:" block. Empty history renders as an empty string.
func FormatHistory(history []*entity.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Previous conversation:\n")
	for _, msg := range history {
		roleLabel := "Assistant"
		if msg.Role == constant.ChatMessageRoleUser {
			roleLabel = "User"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", roleLabel, msg.Content))
	}
	return sb.String()
}

// Build assembles the user prompt: optional history block, then the
// retrieved document context, then the current question.
func Build(query string, contextChunks []string, history []*entity.ChatMessage) string {
	docContext := strings.Join(contextChunks, "\n\n")

	historyText := FormatHistory(history)
	if historyText != "" {
		return fmt.Sprintf("%s\n\nDocument Context:\n%s\n\nCurrent Question: %s", historyText, docContext, query)
	}
	return fmt.Sprintf("Document Context:\n%s\n\nQuestion: %s", docContext, query)
}
