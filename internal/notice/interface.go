// internal/notice/interface.go
package notice

import "time"

// Severity classifies a notice for display.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notice is a short user-facing message describing the outcome of a
// store operation. It is the sole success/error channel the stores
// expose to the UI.
type Notice struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Time        time.Time `json:"time"`
}

// Notifier defines the interface for notice delivery
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Notify delivers a single notice
	Notify(n Notice)
}
