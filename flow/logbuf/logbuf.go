package logbuf

// Level defines the severity level for buffered log messages.
type Level string

const (
	// LevelInfo is used for general informational messages.
	LevelInfo Level = "info"

	// LevelWarn is used for potentially harmful situations.
	LevelWarn Level = "warn"

	// LevelError is used for error events that might still allow the chain to continue running.
	LevelError Level = "error"

	// LevelDebug is used for debugging messages with detailed internal information.
	LevelDebug Level = "debug"
)

// Message is a single buffered log entry.
// It contains the severity level, message text, and optional structured fields.
// A Message is never mutated after construction.
type Message struct {
	Text   string
	Level  Level
	Fields map[string]string
}

// NewMessage builds a Message at the given level.
// The fields map is copied so later mutation by the caller cannot leak in.
func NewMessage(level Level, text string, fields map[string]string) Message {
	var copied map[string]string
	if len(fields) > 0 {
		copied = make(map[string]string, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
	}
	return Message{Text: text, Level: level, Fields: copied}
}

// Debug builds a debug-level Message.
func Debug(text string, fields map[string]string) Message {
	return NewMessage(LevelDebug, text, fields)
}

// Info builds an info-level Message.
func Info(text string, fields map[string]string) Message {
	return NewMessage(LevelInfo, text, fields)
}

// Warn builds a warn-level Message.
func Warn(text string, fields map[string]string) Message {
	return NewMessage(LevelWarn, text, fields)
}

// Error builds an error-level Message.
func Error(text string, fields map[string]string) Message {
	return NewMessage(LevelError, text, fields)
}

// Buffer is an ordered, append-only sequence of Messages.
//
// Buffer has value semantics: Append and Concat return a new Buffer and the
// receiver is never modified, so two chains can never alias each other's
// entries. Concatenation order is emission order; nothing is ever reordered
// or dropped.
type Buffer struct {
	entries []Message
}

// NewBuffer returns an empty Buffer.
func NewBuffer() Buffer {
	return Buffer{}
}

// Of returns a Buffer holding the given messages in order.
func Of(msgs ...Message) Buffer {
	return NewBuffer().Append(msgs...)
}

// Append returns a Buffer with msgs added after every existing entry.
func (b Buffer) Append(msgs ...Message) Buffer {
	if len(msgs) == 0 {
		return b
	}
	entries := make([]Message, 0, len(b.entries)+len(msgs))
	entries = append(entries, b.entries...)
	entries = append(entries, msgs...)
	return Buffer{entries: entries}
}

// Concat returns a Buffer holding b's entries followed by other's entries.
func (b Buffer) Concat(other Buffer) Buffer {
	return b.Append(other.entries...)
}

// Messages returns the buffered entries in emission order.
// The returned slice is a copy; mutating it does not affect the Buffer.
func (b Buffer) Messages() []Message {
	if len(b.entries) == 0 {
		return nil
	}
	out := make([]Message, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len reports the number of buffered entries.
func (b Buffer) Len() int { return len(b.entries) }

// Empty reports whether the buffer holds no entries.
func (b Buffer) Empty() bool { return len(b.entries) == 0 }
