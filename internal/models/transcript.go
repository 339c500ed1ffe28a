package models

import "strings"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// GreetingText is the synthetic assistant turn every refinement chat
// starts with. It is not produced by the model.
const GreetingText = `Ваше резюме успешно загружено! Для более точного подбора вакансий, пожалуйста, расскажите, что еще для вас важно. Например: "Я ищу роли, где могу использовать Python и работать над проектами в сфере Fintech."`

// Transcript is the ordered, append-only refinement chat history.
// Turns are never reordered; the only removal is RetractLast after a
// failed send.
type Transcript []ChatTurn

func NewTranscript() Transcript {
	return Transcript{{Role: ChatRoleAssistant, Text: GreetingText}}
}

func (t *Transcript) Append(role ChatRole, text string) {
	*t = append(*t, ChatTurn{Role: role, Text: text})
}

func (t *Transcript) RetractLast() {
	if len(*t) > 0 {
		*t = (*t)[:len(*t)-1]
	}
}

// UserContext joins all user turns with the separator, in order. It is
// the refinement context handed to the structured analysis call.
func (t Transcript) UserContext(sep string) string {
	var parts []string
	for _, turn := range t {
		if turn.Role == ChatRoleUser {
			parts = append(parts, turn.Text)
		}
	}
	return strings.Join(parts, sep)
}

func (t Transcript) Clone() Transcript {
	clone := make(Transcript, len(t))
	copy(clone, t)
	return clone
}
