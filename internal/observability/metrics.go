package observability

import (
	"context"
	"sync"

	"github.com/tritonops/admin-gateway/internal/events"
)

// Metrics keeps in-memory counters for authentication activity. Snapshots
// are surfaced on the ping endpoint.
type Metrics struct {
	mu            sync.Mutex
	loginSuccess  int64
	loginFailure  int64
	gateRejection map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		gateRejection: make(map[string]int64),
	}
}

// Register subscribes the recorder to authentication events.
func (m *Metrics) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventLoginSucceeded, m.observe)
	dispatcher.Subscribe(events.EventLoginFailed, m.observe)
	dispatcher.Subscribe(events.EventRequestRejected, m.observe)
}

func (m *Metrics) observe(_ context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case events.EventLoginSucceeded:
		m.loginSuccess++
	case events.EventLoginFailed:
		m.loginFailure++
	case events.EventRequestRejected:
		m.gateRejection[event.Detail]++
	}
	return nil
}

// Snapshot returns a copy of current counters.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	rejections := make(map[string]int64, len(m.gateRejection))
	for reason, count := range m.gateRejection {
		rejections[reason] = count
	}
	return map[string]any{
		"login_success":   m.loginSuccess,
		"login_failure":   m.loginFailure,
		"gate_rejections": rejections,
	}
}
