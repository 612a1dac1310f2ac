// internal/notice/memory.go
package notice

import "sync"

// MemoryFeed retains the most recent notices in memory. The API exposes
// it as the transient notification feed; tests use it to assert on
// emitted notices.
type MemoryFeed struct {
	mu      sync.RWMutex
	notices []Notice
	maxSize int
}

// NewMemoryFeed creates a feed with max capacity.
func NewMemoryFeed(maxSize int) *MemoryFeed {
	return &MemoryFeed{
		notices: make([]Notice, 0, maxSize),
		maxSize: maxSize,
	}
}

func (m *MemoryFeed) Name() string { return "memory" }

func (m *MemoryFeed) Notify(n Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notices = append(m.notices, n)

	// Trim if over capacity (remove oldest)
	if len(m.notices) > m.maxSize {
		m.notices = m.notices[len(m.notices)-m.maxSize:]
	}
}

// Recent returns up to limit notices, newest last. limit <= 0 returns
// everything retained.
func (m *MemoryFeed) Recent(limit int) []Notice {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.notices)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]Notice, n)
	copy(result, m.notices[len(m.notices)-n:])
	return result
}

// Last returns the most recent notice, if any.
func (m *MemoryFeed) Last() (Notice, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.notices) == 0 {
		return Notice{}, false
	}
	return m.notices[len(m.notices)-1], true
}
