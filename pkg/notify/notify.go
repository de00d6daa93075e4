package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Timings for adapters that render notifications as transient toasts. The
// Writer prints lines and never waits.
const (
	// DisplayDuration is how long a toast stays on screen.
	DisplayDuration = 3000 * time.Millisecond
	// DismissDuration is the dismiss animation that follows DisplayDuration.
	DismissDuration = 300 * time.Millisecond
)

// Notification is a transient user-facing message.
type Notification struct {
	Message  string
	Severity Severity
}

// Notifier displays notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function into a Notifier.
type Func func(Notification)

// Notify calls fn.
func (fn Func) Notify(n Notification) {
	fn(n)
}

// Info builds an info notification.
func Info(msg string) Notification {
	return Notification{Message: msg, Severity: SeverityInfo}
}

// Error builds an error notification.
func Error(msg string) Notification {
	return Notification{Message: msg, Severity: SeverityError}
}

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Count returns how many notifications of the given severity were recorded.
func (r *Recorder) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.items {
		if item.Severity == sev {
			n++
		}
	}
	return n
}

// Reset forgets recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Writer prints notifications as single lines, one prefix per severity.
type Writer struct {
	Out         io.Writer
	InfoPrefix  string
	ErrorPrefix string
}

// NewWriter returns a Writer with the default prefixes.
func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out, InfoPrefix: "✔ ", ErrorPrefix: "✘ "}
}

func (w *Writer) Notify(n Notification) {
	prefix := w.InfoPrefix
	if n.Severity == SeverityError {
		prefix = w.ErrorPrefix
	}
	fmt.Fprintf(w.Out, "%s%s\n", prefix, n.Message)
}
