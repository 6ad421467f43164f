// Package chat defines the chat transcript kept for a single session.
package chat

// Role classifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsUser reports whether r is the end user. Any other role, including ones
// the server invents, is treated as the assistant side.
func (r Role) IsUser() bool {
	return r == RoleUser
}

// Message is one entry of the transcript.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// User returns a message sent by the end user.
func User(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// Assistant returns a message from the assistant.
func Assistant(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}

// Transcript is an append-only, in-memory list of messages.
// The zero value is ready to use.
type Transcript struct {
	messages []Message
}

// Append adds m to the end of the transcript.
func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the messages in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recent message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
