package tutor

// Role is the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn. Content is the canonical text and is always
// present; SpeechText and DisplayText are optional renderings used for
// assistant turns (spoken phrasing vs. markdown shown on screen).
type Message struct {
	Role        Role   `json:"role"`
	Content     string `json:"content"`
	SpeechText  string `json:"speechText,omitempty"`
	DisplayText string `json:"displayText,omitempty"`
}

// MessageLog is an append-only ordered sequence of chat turns. Messages are
// never mutated or removed once appended; a new session allocates a new log
// so references to an old log remain valid snapshots.
type MessageLog struct {
	msgs []Message
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// NewMessageLogFrom creates a log seeded with the given messages, preserving
// their order.
func NewMessageLogFrom(msgs []Message) *MessageLog {
	log := &MessageLog{}
	log.msgs = append(log.msgs, msgs...)
	return log
}

// Append adds a message to the end of the log.
func (l *MessageLog) Append(m Message) {
	l.msgs = append(l.msgs, m)
}

// All returns every message in insertion order. The returned slice is a copy;
// transport payloads always use the unfiltered log.
func (l *MessageLog) All() []Message {
	out := make([]Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Visible returns the log filtered to user and assistant turns, in insertion
// order. Used only for rendering, never for transport payloads.
func (l *MessageLog) Visible() []Message {
	out := make([]Message, 0, len(l.msgs))
	for _, m := range l.msgs {
		if m.Role == RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Len returns the number of messages in the log.
func (l *MessageLog) Len() int {
	return len(l.msgs)
}

// Last returns the most recently appended message and true, or a zero Message
// and false when the log is empty.
func (l *MessageLog) Last() (Message, bool) {
	if len(l.msgs) == 0 {
		return Message{}, false
	}
	return l.msgs[len(l.msgs)-1], true
}
