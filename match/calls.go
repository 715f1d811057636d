package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/zsol/jest"
)

// errNotAMock is a sentinel error for actual values that are not mocks.
var errNotAMock = errors.New("not a mock")

// CallMatcher is the interface implemented by the call-log matchers.
// It satisfies both jest's duck-typed Matcher and gomega's GomegaMatcher,
// so these matchers work directly with gomega's Expect.
type CallMatcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// HaveBeenCalled returns a matcher asserting the mock was invoked at least once.
func HaveBeenCalled() CallMatcher {
	return calledMatcher{}
}

// HaveBeenCalledTimes returns a matcher asserting the mock was invoked
// exactly count times.
func HaveBeenCalledTimes(count int) CallMatcher {
	return &calledTimesMatcher{count: count}
}

// HaveBeenCalledWith returns a matcher asserting some recorded call's
// arguments match args. Plain values compare with deep equality; values
// implementing Matcher (including gomega matchers) are matched per argument.
func HaveBeenCalledWith(args ...any) CallMatcher {
	return &calledWithMatcher{args: args, selector: anyCall}
}

// HaveBeenLastCalledWith returns a matcher asserting the most recent call's
// arguments match args.
func HaveBeenLastCalledWith(args ...any) CallMatcher {
	return &calledWithMatcher{args: args, selector: lastCall}
}

// HaveBeenNthCalledWith returns a matcher asserting the nth call's arguments
// match args. n counts from 1.
func HaveBeenNthCalledWith(n int, args ...any) CallMatcher {
	return &calledWithMatcher{args: args, selector: nthCall, n: n}
}

// HaveReturnedWith returns a matcher asserting some completed invocation
// returned a value matching value.
func HaveReturnedWith(value any) CallMatcher {
	return &returnedWithMatcher{value: value}
}

// anyCall, lastCall, and nthCall select which recorded calls a
// calledWithMatcher inspects.
const (
	anyCall callSelector = iota
	lastCall
	nthCall
)

// argsMatch reports whether actual matches expected element-wise, honoring
// Matcher values in expected and falling back to deep equality.
func argsMatch(actual, expected []any) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, want := range expected {
		ok, _ := jest.MatchValue(actual[i], want)
		if !ok {
			return false
		}
	}

	return true
}

// callDiff renders the expected argument list against the recorded call log
// as a unified diff. Returns "" when there is nothing useful to show.
func callDiff(expected []any, calls []jest.Call) string {
	want := formatArgs(expected) + "\n"

	lines := make([]string, 0, len(calls))
	for _, call := range calls {
		lines = append(lines, formatArgs(call.Args))
	}

	got := strings.Join(lines, "\n")
	if got != "" {
		got += "\n"
	}

	return textdiff.Unified("expected call", "recorded calls", want, got)
}

type callSelector int

type calledMatcher struct{}

func (calledMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected mock %s to have been called, but it was never invoked", mockLabel(actual))
}

func (calledMatcher) Match(actual any) (bool, error) {
	mock, err := toMock(actual)
	if err != nil {
		return false, err
	}

	return mock.WasCalled(), nil
}

func (calledMatcher) NegatedFailureMessage(actual any) string {
	count := 0
	if mock, err := toMock(actual); err == nil {
		count = mock.CallCount()
	}

	return fmt.Sprintf("expected mock %s not to have been called, but it was invoked %d time(s)", mockLabel(actual), count)
}

type calledTimesMatcher struct {
	count int
}

func (m *calledTimesMatcher) FailureMessage(actual any) string {
	count := 0
	if mock, err := toMock(actual); err == nil {
		count = mock.CallCount()
	}

	return fmt.Sprintf("expected mock %s to have been called %d time(s), but it was called %d time(s)",
		mockLabel(actual), m.count, count)
}

func (m *calledTimesMatcher) Match(actual any) (bool, error) {
	mock, err := toMock(actual)
	if err != nil {
		return false, err
	}

	return mock.CallCount() == m.count, nil
}

func (m *calledTimesMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected mock %s not to have been called %d time(s), but it was", mockLabel(actual), m.count)
}

type calledWithMatcher struct {
	args     []any
	selector callSelector
	n        int // 1-based, nthCall only
}

func (m *calledWithMatcher) FailureMessage(actual any) string {
	msg := fmt.Sprintf("expected mock %s to have been %s %s",
		mockLabel(actual), m.describe(), formatArgs(m.args))

	if mock, err := toMock(actual); err == nil {
		if diff := callDiff(m.args, mock.Calls()); diff != "" {
			msg += "\n" + diff
		}
	}

	return msg
}

func (m *calledWithMatcher) Match(actual any) (bool, error) {
	mock, err := toMock(actual)
	if err != nil {
		return false, err
	}

	switch m.selector {
	case lastCall:
		return mock.WasLastCalledWith(m.args...), nil
	case nthCall:
		call, ok := mock.NthCall(m.n - 1)
		if !ok {
			return false, nil
		}

		return argsMatch(call.Args, m.args), nil
	default:
		return mock.WasCalledWith(m.args...), nil
	}
}

func (m *calledWithMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected mock %s not to have been %s %s, but it was",
		mockLabel(actual), m.describe(), formatArgs(m.args))
}

func (m *calledWithMatcher) describe() string {
	switch m.selector {
	case lastCall:
		return "last called with"
	case nthCall:
		return fmt.Sprintf("called (call %d) with", m.n)
	default:
		return "called with"
	}
}

// formatArgs renders an argument list the way it would appear at a call site.
func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if matcher, ok := arg.(Matcher); ok {
			parts[i] = fmt.Sprintf("<%T>", matcher)

			continue
		}

		parts[i] = fmt.Sprintf("%#v", arg)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// mockLabel names a mock for failure messages, falling back to the factory
// expression when no diagnostic name was set.
func mockLabel(actual any) string {
	mock, err := toMock(actual)
	if err != nil {
		return fmt.Sprintf("%T", actual)
	}

	if name := mock.Name(); name != "" {
		return fmt.Sprintf("%q", name)
	}

	return "jest.Fn()"
}

type returnedWithMatcher struct {
	value any
}

func (m *returnedWithMatcher) FailureMessage(actual any) string {
	msg := fmt.Sprintf("expected mock %s to have returned %#v", mockLabel(actual), m.value)

	if mock, err := toMock(actual); err == nil {
		returns := []string{}

		for _, result := range mock.Results() {
			if result.Type == jest.ResultReturned {
				returns = append(returns, fmt.Sprintf("%#v", result.Value))
			}
		}

		msg += fmt.Sprintf(", but it returned [%s]", strings.Join(returns, ", "))
	}

	return msg
}

func (m *returnedWithMatcher) Match(actual any) (bool, error) {
	mock, err := toMock(actual)
	if err != nil {
		return false, err
	}

	for _, result := range mock.Results() {
		if result.Type != jest.ResultReturned {
			continue
		}

		ok, _ := jest.MatchValue(result.Value, m.value)
		if ok {
			return true, nil
		}
	}

	return false, nil
}

func (m *returnedWithMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected mock %s not to have returned %#v, but it did", mockLabel(actual), m.value)
}

// toMock asserts that a matcher's actual value is a *jest.Mock.
func toMock(actual any) (*jest.Mock, error) {
	mock, ok := actual.(*jest.Mock)
	if !ok {
		return nil, fmt.Errorf("%w: expected *jest.Mock, got %T", errNotAMock, actual)
	}

	return mock, nil
}
