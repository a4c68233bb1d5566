package conversation

import "github.com/set-night/giftshop/internal/domain"

// History is the append-only chat log.
type History struct {
	messages []domain.Message
}

func (h *History) Append(msgs ...domain.Message) {
	h.messages = append(h.messages, msgs...)
}

// All returns a copy of the log.
func (h *History) All() []domain.Message {
	return append([]domain.Message(nil), h.messages...)
}

func (h *History) Len() int {
	return len(h.messages)
}

func (h *History) Last() (domain.Message, bool) {
	if len(h.messages) == 0 {
		return domain.Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}
