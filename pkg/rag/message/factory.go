package message

import (
	"strings"

	"docchat-be/internal/entity"
	"docchat-be/pkg/llm"
)

// Factory assembles the prompt message sequence for one Ask turn.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Assemble produces the ordered message sequence the generator receives:
// one system message carrying the retrieved chunk texts (nearest-first,
// joined by a single space) as "Context: <text>", then each history entry in
// chronological order as a user/assistant pair, then the live question as the
// final user message.
//
// This ordering is an invariant: the context block anchors the model before
// any conversational turns, and the live question always comes last.
// Reordering changes model behavior and must not be introduced silently.
func (f *Factory) Assemble(chunkTexts []string, history []entity.HistoryEntry, question string) []llm.Message {
	messages := make([]llm.Message, 0, 2*len(history)+2)

	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: "Context: " + strings.Join(chunkTexts, " "),
	})

	for _, entry := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: entry.Question},
			llm.Message{Role: llm.RoleAssistant, Content: entry.Answer},
		)
	}

	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: question,
	})

	return messages
}
