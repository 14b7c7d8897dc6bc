package chat

// Turn pairs a user message with the assistant message that answered it.
// Either side may be nil.
type Turn struct {
	User      *Message `json:"user,omitempty" yaml:"user,omitempty"`
	Assistant *Message `json:"assistant,omitempty" yaml:"assistant,omitempty"`
}

// GroupTurns folds history into turns in order. An assistant message with no
// unanswered user message before it becomes a turn of its own.
func GroupTurns(history []Message) []Turn {
	var (
		turns []Turn
		open  = -1
	)
	for i := range history {
		msg := history[i]
		switch msg.Role {
		case RoleUser:
			turns = append(turns, Turn{User: &msg})
			open = len(turns) - 1
		default:
			if open >= 0 {
				turns[open].Assistant = &msg
				open = -1
				continue
			}
			turns = append(turns, Turn{Assistant: &msg})
		}
	}
	return turns
}

// Turns returns the session history grouped into turns.
func (s *Session) Turns() []Turn {
	return GroupTurns(s.History())
}
