// Package notify sends desktop notifications through the platform's native
// tool: osascript on macOS, notify-send on Linux.
package notify

import "unicode/utf8"

// maxBody caps the notification body; daemons truncate long text anyway.
const maxBody = 200

// Notifier sends desktop notifications.
type Notifier interface {
	// Send shows a notification with the given title and body.
	Send(title, body string) error

	// IsSupported returns true if notifications work on this machine.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, body string) error { return nil }
func (noopNotifier) IsSupported() bool             { return false }

// New creates a platform notifier. sound asks for an audible alert where
// the platform supports one. Returns a no-op notifier when the platform
// tool is missing.
func New(sound bool) Notifier {
	n := newPlatformNotifier(sound)
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// Nop returns a notifier that does nothing.
func Nop() Notifier {
	return noopNotifier{}
}

// Summary shortens text to a single notification line.
func Summary(text string) string {
	line := text
	for i, r := range text {
		if r == '\n' {
			line = text[:i]
			break
		}
	}
	if utf8.RuneCountInString(line) <= maxBody {
		if line != text {
			return line + "…"
		}
		return line
	}
	runes := []rune(line)
	return string(runes[:maxBody-1]) + "…"
}
