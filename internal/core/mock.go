// Package core provides the internal implementation of jest's mock-function
// call-tracking and behavior-override engine.
package core

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Call records a single invocation of a Mock: the arguments passed, the
// binding context active during the call, and the global invocation order
// shared across all mocks in the process.
type Call struct {
	Args  []any
	This  any
	Order uint64
}

// Implementation is a stand-in behavior for a Mock. It receives the binding
// context active for the invocation and the call arguments, and produces the
// invocation's result.
type Implementation func(this any, args ...any) any

// Instance is the opaque object allocated as the binding context of a
// construct-style invocation.
type Instance struct {
	mock *Mock
}

// Mock returns the Mock that constructed this instance.
func (i *Instance) Mock() *Mock {
	return i.mock
}

// Mock is a callable, stateful stand-in function. Every invocation is
// recorded in its ledgers before a result is resolved from the one-shot
// queues and persistent defaults.
//
// Resolution precedence, checked on every invocation:
//  1. front of the one-shot implementation queue (consumed)
//  2. the persistent default implementation (reused)
//  3. front of the one-shot return-value queue (consumed)
//  4. the persistent default return value (reused)
//  5. no value (nil)
//
// One mock belongs to one test's logical thread of control, but all state is
// mutex-guarded so parallel subtests sharing a mock don't corrupt it.
type Mock struct {
	mu sync.Mutex

	name      string
	calls     []Call
	instances []any
	results   []Result

	implQueue        []Implementation
	returnQueue      []any
	defaultImpl      Implementation
	defaultReturn    any
	hasDefaultReturn bool
}

// CallCount returns the total number of invocations recorded.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.calls)
}

// Calls returns a copy of the call ledger, in invocation order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.calls)
}

// Clear empties the call, instance, and result ledgers. Queued and default
// behavior is left in place.
func (m *Mock) Clear() *Mock {
	m.mu.Lock()
	m.calls = nil
	m.instances = nil
	m.results = nil
	m.mu.Unlock()

	return m
}

// Implement installs impl as the persistent default implementation,
// replacing any previous default. It is used for every invocation once the
// one-shot implementation queue is empty, and is never consumed.
func (m *Mock) Implement(impl Implementation) *Mock {
	m.mu.Lock()
	m.defaultImpl = impl
	m.mu.Unlock()

	return m
}

// ImplementOnce appends impl to the one-shot implementation queue. Each
// queued implementation serves exactly one invocation, front to back.
func (m *Mock) ImplementOnce(impl Implementation) *Mock {
	m.mu.Lock()
	m.implQueue = append(m.implQueue, impl)
	m.mu.Unlock()

	return m
}

// Instances returns a copy of the instance ledger: one entry per
// construct-style invocation, in invocation order.
func (m *Mock) Instances() []any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.instances)
}

// Invoke calls the mock with no binding context. The call is recorded
// unconditionally before any configured behavior runs.
func (m *Mock) Invoke(args ...any) any {
	return m.invoke(nil, false, args)
}

// InvokeOn calls the mock with this as the binding context.
func (m *Mock) InvokeOn(this any, args ...any) any {
	return m.invoke(this, false, args)
}

// LastCall returns the most recent call and true, or a zero Call and false
// if the mock has not been invoked.
func (m *Mock) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.calls) == 0 {
		return Call{}, false
	}

	return m.calls[len(m.calls)-1], true
}

// Name returns the diagnostic name set with WithName, or "" if unset.
func (m *Mock) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.name
}

// New performs a construct-style invocation: a fresh Instance is allocated,
// used as the binding context, and appended to the instance ledger. The
// result resolves like any other invocation, except that an entirely
// unconfigured mock yields the instance itself rather than nil.
func (m *Mock) New(args ...any) any {
	return m.invoke(&Instance{mock: m}, true, args)
}

// NthCall returns the call at the given zero-based index and true, or a zero
// Call and false if fewer calls have been recorded.
func (m *Mock) NthCall(index int) (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.calls) {
		return Call{}, false
	}

	return m.calls[index], true
}

// Reset returns the mock to its just-created state: all ledgers, both
// one-shot queues, and both persistent defaults are dropped. The diagnostic
// name is kept.
func (m *Mock) Reset() *Mock {
	m.mu.Lock()
	m.calls = nil
	m.instances = nil
	m.results = nil
	m.implQueue = nil
	m.returnQueue = nil
	m.defaultImpl = nil
	m.defaultReturn = nil
	m.hasDefaultReturn = false
	m.mu.Unlock()

	return m
}

// Results returns a copy of the result ledger: one outcome per invocation,
// in invocation order.
func (m *Mock) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.results)
}

// Return installs value as the persistent default return value, replacing
// any previous default. It is returned for every invocation once both
// one-shot queues are empty and no default implementation is set.
func (m *Mock) Return(value any) *Mock {
	m.mu.Lock()
	m.defaultReturn = value
	m.hasDefaultReturn = true
	m.mu.Unlock()

	return m
}

// ReturnOnce appends value to the one-shot return-value queue. Each queued
// value serves exactly one invocation, front to back.
func (m *Mock) ReturnOnce(value any) *Mock {
	m.mu.Lock()
	m.returnQueue = append(m.returnQueue, value)
	m.mu.Unlock()

	return m
}

// ReturnThis installs a persistent default implementation that returns the
// binding context of each invocation. Sugar over Implement; the resolution
// order does not special-case it.
func (m *Mock) ReturnThis() *Mock {
	return m.Implement(func(this any, _ ...any) any {
		return this
	})
}

// WasCalled reports whether the mock has been invoked at least once.
func (m *Mock) WasCalled() bool {
	return m.CallCount() > 0
}

// WasCalledWith reports whether any recorded call's arguments match args.
// Plain values compare with deep equality; values implementing Matcher are
// matched per argument.
func (m *Mock) WasCalledWith(args ...any) bool {
	for _, call := range m.Calls() {
		if argsMatch(call.Args, args) {
			return true
		}
	}

	return false
}

// WasLastCalledWith reports whether the most recent call's arguments match
// args. It is false when the mock has not been invoked.
func (m *Mock) WasLastCalledWith(args ...any) bool {
	last, ok := m.LastCall()
	if !ok {
		return false
	}

	return argsMatch(last.Args, args)
}

// WithName sets a diagnostic name reported in matcher failure messages.
func (m *Mock) WithName(name string) *Mock {
	m.mu.Lock()
	m.name = name
	m.mu.Unlock()

	return m
}

// NewMock creates a fresh mock with empty ledgers and queues. An optional
// initial delegate may be supplied; it is installed as the persistent
// default implementation.
func NewMock(impl ...Implementation) *Mock {
	mock := &Mock{}

	if len(impl) > 0 {
		mock.defaultImpl = impl[0]
	}

	return mock
}

// Result records the outcome of a single invocation.
type Result struct {
	Type  string // ResultIncomplete, ResultReturned, or ResultPanicked
	Value any
}

// Result outcome types.
const (
	ResultIncomplete = "incomplete"
	ResultPanicked   = "panic"
	ResultReturned   = "return"
)

// TestReporter is the minimal interface jest needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Invocation order must be consistent across all mocks
	invocationOrder atomic.Uint64
)

// argsMatch reports whether actual matches expected element-wise, honoring
// Matcher values in expected and falling back to deep equality.
func argsMatch(actual, expected []any) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, want := range expected {
		ok, _ := MatchValue(actual[i], want)
		if !ok {
			return false
		}
	}

	return true
}

// finishResult records the outcome of the invocation at the given ledger
// index. The bounds check covers a Clear racing an in-flight delegate.
func (m *Mock) finishResult(index int, result Result) {
	m.mu.Lock()

	if index < len(m.results) {
		m.results[index] = result
	}

	m.mu.Unlock()
}

// invoke records the call and resolves its result. Behavior selection
// happens under the lock; delegates run outside it so they may call back
// into this mock.
func (m *Mock) invoke(this any, construct bool, args []any) any {
	m.mu.Lock()

	order := invocationOrder.Add(1)
	m.calls = append(m.calls, Call{Args: slices.Clone(args), This: this, Order: order})

	if construct {
		m.instances = append(m.instances, this)
	}

	index := len(m.results)
	m.results = append(m.results, Result{Type: ResultIncomplete})

	var (
		impl     Implementation
		value    any
		resolved bool
	)

	switch {
	case len(m.implQueue) > 0:
		impl = m.implQueue[0]
		m.implQueue = m.implQueue[1:]
	case m.defaultImpl != nil:
		impl = m.defaultImpl
	case len(m.returnQueue) > 0:
		value = m.returnQueue[0]
		m.returnQueue = m.returnQueue[1:]
		resolved = true
	case m.hasDefaultReturn:
		value = m.defaultReturn
		resolved = true
	}

	m.mu.Unlock()

	if impl != nil {
		return m.runImplementation(index, impl, this, args)
	}

	if !resolved && construct {
		// An unconfigured constructor call yields the instance itself.
		value = this
	}

	m.finishResult(index, Result{Type: ResultReturned, Value: value})

	return value
}

// runImplementation invokes a delegate, recording its outcome. A panicking
// delegate leaves a panic-typed result behind and the panic propagates
// unmodified to the caller.
func (m *Mock) runImplementation(index int, impl Implementation, this any, args []any) any {
	defer func() {
		if p := recover(); p != nil {
			m.finishResult(index, Result{Type: ResultPanicked, Value: p})

			panic(p)
		}
	}()

	value := impl(this, args...)
	m.finishResult(index, Result{Type: ResultReturned, Value: value})

	return value
}
