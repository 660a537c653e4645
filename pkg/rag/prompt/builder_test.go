package prompt

import (
	"strings"
	"testing"

	"rag-kb-be/internal/entity"
)

func TestFormatHistory(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		if got := FormatHistory(nil); got != "" {
			t.Errorf("FormatHistory(nil) = %q, want empty", got)
		}
	})

	t.Run("labels roles", func(t *testing.T) {
		history := []*entity.ChatMessage{
			{Role: "user", Content: "What is pgvector?"},
			{Role: "assistant", Content: "A Postgres extension."},
		}

		got := FormatHistory(history)
		want := "Previous conversation:\nUser: What is pgvector?\nAssistant: A Postgres extension.\n"
		if got != want {
			t.Errorf("FormatHistory() = %q, want %q", got, want)
		}
	})
}

func TestBuild(t *testing.T) {
	chunks := []string{"first chunk", "second chunk"}

	t.Run("without history", func(t *testing.T) {
		got := Build("what is this?", chunks, nil)

		if !strings.HasPrefix(got, "Document Context:\n") {
			t.Errorf("prompt does not start with the context block: %q", got)
		}
		if !strings.Contains(got, "first chunk\n\nsecond chunk") {
			t.Errorf("chunks not joined with blank lines: %q", got)
		}
		if !strings.HasSuffix(got, "Question: what is this?") {
			t.Errorf("prompt does not end with the question: %q", got)
		}
		if strings.Contains(got, "Previous conversation:") {
			t.Errorf("unexpected history block: %q", got)
		}
	})

	t.Run("with history", func(t *testing.T) {
		history := []*entity.ChatMessage{
			{Role: "user", Content: "earlier question"},
			{Role: "assistant", Content: "earlier answer"},
		}
		got := Build("follow-up?", chunks, history)

		if !strings.HasPrefix(got, "Previous conversation:\n") {
			t.Errorf("history block missing from prompt start: %q", got)
		}
		if !strings.Contains(got, "\n\nDocument Context:\n") {
			t.Errorf("context block missing: %q", got)
		}
		if !strings.HasSuffix(got, "Current Question: follow-up?") {
			t.Errorf("prompt does not end with the current question: %q", got)
		}
	})
}
