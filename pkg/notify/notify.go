package notify

import "log"

// Notifier is the toast sink the wizard talks to. The core raises messages
// at well-defined points (validation failure, submission outcome, draft
// cleared on reload) and does not own their rendering; the terminal UI
// consumes them from the wizard state.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// LogNotifier writes notifications to the process log. Used as the default
// sink and as a fallback when no UI channel is attached.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Success(message string) {
	log.Printf("[toast:success] %s", message)
}

func (n *LogNotifier) Error(message string) {
	log.Printf("[toast:error] %s", message)
}

func (n *LogNotifier) Info(message string) {
	log.Printf("[toast:info] %s", message)
}
