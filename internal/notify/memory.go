package notify

import (
	"context"
	"sync"
)

// Delivered is one recorded Show call.
type Delivered struct {
	Title string
	Body  string
}

// Memory is an in-process Notifier for tests: it records deliveries and lets
// the test control the permission state.
type Memory struct {
	mu        sync.Mutex
	perm      Permission
	requested int
	delivered []Delivered
}

func NewMemory(perm Permission) *Memory {
	return &Memory{perm: perm}
}

func (m *Memory) Permission() Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.perm
}

func (m *Memory) SetPermission(p Permission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.perm = p
}

func (m *Memory) RequestPermission(ctx context.Context) Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested++
	return m.perm
}

func (m *Memory) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requested
}

func (m *Memory) Show(ctx context.Context, title, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.perm != PermissionGranted {
		return
	}
	m.delivered = append(m.delivered, Delivered{Title: title, Body: body})
}

func (m *Memory) DeliveredMessages() []Delivered {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Delivered, len(m.delivered))
	copy(out, m.delivered)
	return out
}
