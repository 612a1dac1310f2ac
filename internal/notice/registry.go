// internal/notice/registry.go
package notice

import (
	"fmt"
	"sync"
	"time"
)

// Registry manages notifier instances and fans notices out to them.
type Registry struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
}

// NewRegistry creates a new notifier registry
func NewRegistry() *Registry {
	return &Registry{
		notifiers: make(map[string]Notifier),
	}
}

// Register adds a notifier to the registry
func (r *Registry) Register(n Notifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := n.Name()
	if _, exists := r.notifiers[name]; exists {
		return fmt.Errorf("notifier %s already registered", name)
	}

	r.notifiers[name] = n
	return nil
}

// GetAll returns all registered notifiers
func (r *Registry) GetAll() []Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Notifier, 0, len(r.notifiers))
	for _, n := range r.notifiers {
		result = append(result, n)
	}
	return result
}

// Info emits an informational notice to all notifiers.
func (r *Registry) Info(title, description string) {
	r.publish(Notice{Title: title, Description: description, Severity: SeverityInfo, Time: time.Now()})
}

// Error emits an error notice to all notifiers.
func (r *Registry) Error(title, description string) {
	r.publish(Notice{Title: title, Description: description, Severity: SeverityError, Time: time.Now()})
}

func (r *Registry) publish(n Notice) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, notifier := range r.notifiers {
		notifier.Notify(n)
	}
}
