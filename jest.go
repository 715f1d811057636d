// Package jest provides call-recording mock functions for Go tests.
// A Mock intercepts every invocation, records its arguments and binding
// context, and resolves a return value or delegate implementation from
// configurable one-shot queues and persistent defaults.
//
// This is the public API entry point. Implementation lives in internal/core.
package jest

import (
	"github.com/zsol/jest/internal/core"
)

// Call records a single invocation of a Mock.
type Call = core.Call

// Fn creates a fresh mock function with empty ledgers and queues.
// An optional initial delegate may be supplied; it is installed as the
// persistent default implementation.
func Fn(impl ...Implementation) *Mock {
	return core.NewMock(impl...)
}

// Implementation is a stand-in behavior for a Mock.
type Implementation = core.Implementation

// Instance is the opaque object allocated as the binding context of a
// construct-style invocation.
type Instance = core.Instance

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// Mock is a callable, stateful stand-in function that records every
// invocation and resolves results from configured behavior.
type Mock = core.Mock

// Result records the outcome of a single invocation.
type Result = core.Result

// Result outcome types.
const (
	ResultIncomplete = core.ResultIncomplete
	ResultPanicked   = core.ResultPanicked
	ResultReturned   = core.ResultReturned
)

// TestReporter is the minimal interface jest needs from test frameworks.
type TestReporter = core.TestReporter

// Any returns a matcher that matches any value.
func Any() Matcher {
	return core.Any()
}

// MatchValue checks if actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
func Satisfies[T any](predicate func(T) error) Matcher {
	return core.Satisfies(predicate)
}
