package core

import (
	"slices"
	"sync"
)

// ClearAll empties the ledgers of every mock tracked under t. Queued and
// default behavior is left in place.
func ClearAll(t TestReporter) {
	for _, mock := range trackedMocks(t) {
		mock.Clear()
	}
}

// ResetAll returns every mock tracked under t to its just-created state.
func ResetAll(t TestReporter) {
	for _, mock := range trackedMocks(t) {
		mock.Reset()
	}
}

// Track associates mocks with the given test so they can be swept together
// by ResetAll or ClearAll.
//
// If the TestReporter supports Cleanup (like *testing.T), the tracked set is
// dropped from the registry automatically when the test completes.
func Track(t TestReporter, mocks ...*Mock) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[t]; !ok {
		if cr, ok := t.(cleanupRegistrar); ok {
			cr.Cleanup(func() {
				registryMu.Lock()
				delete(registry, t)
				registryMu.Unlock()
			})
		}
	}

	registry[t] = append(registry[t], mocks...)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter][]*Mock)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// trackedMocks returns a snapshot of the mocks tracked under t.
func trackedMocks(t TestReporter) []*Mock {
	registryMu.Lock()
	defer registryMu.Unlock()

	return slices.Clone(registry[t])
}
