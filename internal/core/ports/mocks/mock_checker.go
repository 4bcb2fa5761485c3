package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
)

// MockFolderChecker is a mock implementation of the FolderChecker interface for testing
type MockFolderChecker struct {
	mu         sync.RWMutex
	violations map[domain.FolderKey]*domain.Violation
	errors     map[domain.FolderKey]error
	calls      []domain.FolderKey
}

// NewMockFolderChecker creates a checker that passes every folder by default
func NewMockFolderChecker() *MockFolderChecker {
	return &MockFolderChecker{
		violations: make(map[domain.FolderKey]*domain.Violation),
		errors:     make(map[domain.FolderKey]error),
	}
}

// Fail makes the checker report a violation of kind for key
func (m *MockFolderChecker) Fail(key domain.FolderKey, kind domain.ViolationKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.violations[key] = domain.NewViolation(kind, key, key.String(), "mock %s", kind)
}

// Error makes the checker return an infrastructure error for key
func (m *MockFolderChecker) Error(key domain.FolderKey) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors[key] = fmt.Errorf("mock error for %s", key)
}

// Check records the call and returns the configured outcome
func (m *MockFolderChecker) Check(ctx context.Context, key domain.FolderKey) (domain.FolderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, key)
	if err, ok := m.errors[key]; ok {
		return domain.FolderResult{Key: key}, err
	}
	return domain.FolderResult{Key: key, Violation: m.violations[key]}, nil
}

// Calls returns every key checked, in order
func (m *MockFolderChecker) Calls() []domain.FolderKey {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]domain.FolderKey(nil), m.calls...)
}

// CallCount returns how many times key was checked
func (m *MockFolderChecker) CallCount(key domain.FolderKey) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, k := range m.calls {
		if k == key {
			count++
		}
	}
	return count
}
