package jest

import (
	"github.com/zsol/jest/internal/core"
)

// ClearAll empties the ledgers of every mock tracked under t. Queued and
// default behavior is left in place.
func ClearAll(t TestReporter) {
	core.ClearAll(t)
}

// ResetAll returns every mock tracked under t to its just-created state.
func ResetAll(t TestReporter) {
	core.ResetAll(t)
}

// Track associates mocks with the given test so they can be swept together
// by ResetAll or ClearAll. If the TestReporter supports Cleanup (like
// *testing.T), tracking ends automatically when the test completes.
func Track(t TestReporter, mocks ...*Mock) {
	core.Track(t, mocks...)
}
