package store

import "time"

// Message is one turn in a conversation.
type Message struct {
	Role      string    `json:"role"` // "user" | "model"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Session holds the conversational state for one chat session. History is
// chronological. LastResults carries the books from the most recent
// successful catalog search so follow-up questions can refer back to them;
// follow-ups read this field, only searches write it.
type Session struct {
	ID          string    `json:"session_id"`
	History     []Message `json:"history"`
	LastResults []Book    `json:"last_search_results"`
}

// HistoryText renders the last maxTurns messages for prompt injection.
func (s *Session) HistoryText(maxTurns int) string {
	if len(s.History) == 0 {
		return "(chưa có lịch sử)"
	}
	start := 0
	if len(s.History) > maxTurns {
		start = len(s.History) - maxTurns
	}
	out := ""
	for i, m := range s.History[start:] {
		prefix := "Trợ lý"
		if m.Role == RoleUser {
			prefix = "Người dùng"
		}
		if i > 0 {
			out += "\n"
		}
		out += prefix + ": " + m.Text
	}
	return out
}
