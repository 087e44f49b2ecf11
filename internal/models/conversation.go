package models

// Role identifies who authored a message within a conversation record.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the three allowed values.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single turn inside a conversation record.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is one training example: an ordered message sequence.
// Records are immutable once produced by the parser.
type Conversation struct {
	Messages []Message `json:"messages"`
}

// NonSystemCount returns the number of user/assistant messages.
// System messages are excluded when classifying single vs multi-turn.
func (c Conversation) NonSystemCount() int {
	n := 0
	for _, m := range c.Messages {
		if m.Role != RoleSystem {
			n++
		}
	}
	return n
}

// HasSystem reports whether the record contains a system message.
func (c Conversation) HasSystem() bool {
	for _, m := range c.Messages {
		if m.Role == RoleSystem {
			return true
		}
	}
	return false
}

// AssistantContents returns the content of every assistant message, in order.
func (c Conversation) AssistantContents() []string {
	var out []string
	for _, m := range c.Messages {
		if m.Role == RoleAssistant {
			out = append(out, m.Content)
		}
	}
	return out
}

// FirstUserContent returns the content of the first user message, or "".
func (c Conversation) FirstUserContent() string {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m.Content
		}
	}
	return ""
}
