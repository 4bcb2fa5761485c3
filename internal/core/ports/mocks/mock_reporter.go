package mocks

import (
	"sync"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
)

// MockReporter records every event it receives
type MockReporter struct {
	mu       sync.RWMutex
	checking []domain.FolderKey
	passed   []domain.FolderKey
	failed   []*domain.Violation
	nothing  int
}

// NewMockReporter creates a new mock reporter
func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

func (m *MockReporter) Checking(key domain.FolderKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checking = append(m.checking, key)
}

func (m *MockReporter) Passed(key domain.FolderKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passed = append(m.passed, key)
}

func (m *MockReporter) Failed(v *domain.Violation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, v)
}

func (m *MockReporter) Nothing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nothing++
}

// PassedKeys returns the keys reported as passing, in order
func (m *MockReporter) PassedKeys() []domain.FolderKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.FolderKey(nil), m.passed...)
}

// CheckingKeys returns the keys announced before checking, in order
func (m *MockReporter) CheckingKeys() []domain.FolderKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.FolderKey(nil), m.checking...)
}

// Failures returns every reported violation
func (m *MockReporter) Failures() []*domain.Violation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Violation(nil), m.failed...)
}

// NothingCount returns how many times Nothing was called
func (m *MockReporter) NothingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nothing
}
