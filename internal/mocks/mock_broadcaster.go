package mocks

import (
	"sync"

	"github.com/you/classhub/domain"
)

// Broadcast is one call captured by MockBroadcaster
type Broadcast struct {
	Room    string
	Event   string
	Payload any
}

// MockBroadcaster implements domain.Broadcaster and records every call
type MockBroadcaster struct {
	mu    sync.Mutex
	calls []Broadcast
}

// NewMockBroadcaster creates a new MockBroadcaster
func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{}
}

// Broadcast records the call and reports zero receivers
func (m *MockBroadcaster) Broadcast(room, event string, payload any) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Broadcast{Room: room, Event: event, Payload: payload})
	return 0
}

// Calls returns a copy of the recorded broadcasts
func (m *MockBroadcaster) Calls() []Broadcast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Broadcast(nil), m.calls...)
}

// Compile-time interface compliance verification
var _ domain.Broadcaster = (*MockBroadcaster)(nil)
