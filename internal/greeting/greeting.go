package greeting

import (
	"fmt"
	"io"
)

// Code selects a canned greeting.
type Code int

const (
	Casual Code = iota
	Morning
	Everyone
)

const (
	casualMessage         = "Whats up!"
	notImplementedMessage = "Not implemented"
)

func (c Code) String() string {
	switch c {
	case Casual:
		return "casual"
	case Morning:
		return "morning"
	case Everyone:
		return "everyone"
	default:
		return "unknown"
	}
}

// ParseCode maps an integer to a known code. Unknown values report false.
func ParseCode(n int) (Code, bool) {
	switch Code(n) {
	case Casual, Morning, Everyone:
		return Code(n), true
	default:
		return Casual, false
	}
}

// Message returns the greeting text for code. Only Casual has a message;
// every other value, known or not, is "Not implemented".
func Message(code int) string {
	if c, ok := ParseCode(code); ok && c == Casual {
		return casualMessage
	}
	return notImplementedMessage
}

// Greet writes the message for code as one line.
func Greet(w io.Writer, code int) error {
	_, err := fmt.Fprintln(w, Message(code))
	return err
}
