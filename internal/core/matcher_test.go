package core_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/zsol/jest"
)

// TestMatchValue_DeepEqualFallback verifies plain values compare
// structurally.
func TestMatchValue_DeepEqualFallback(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := jest.MatchValue(map[string]int{"a": 1}, map[string]int{"a": 1})
	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())

	ok, msg = jest.MatchValue(1, 2)
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("expected 2, got 1"))
}

// TestMatchValue_MatcherDuckTyping verifies any type with Match and
// FailureMessage is used as a matcher.
func TestMatchValue_MatcherDuckTyping(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := jest.MatchValue(10, evenMatcher{})
	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())

	ok, msg = jest.MatchValue(11, evenMatcher{})
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("11 is not even"))
}

// TestMatchValue_MatcherError verifies matcher errors surface as the failure
// message.
func TestMatchValue_MatcherError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := jest.MatchValue("not an int", jest.Satisfies(func(int) error {
		return nil
	}))
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("type mismatch"))
}

// TestAny_MatchesEverything verifies the Any matcher.
func TestAny_MatchesEverything(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, value := range []any{nil, 0, "s", []int{1}, map[string]any{}} {
		ok, msg := jest.MatchValue(value, jest.Any())
		g.Expect(ok).To(BeTrue())
		g.Expect(msg).To(BeEmpty())
	}
}

// TestSatisfies_PredicateErrorsInFailureMessage verifies predicate errors
// show up in the failure message.
func TestSatisfies_PredicateErrorsInFailureMessage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := jest.Satisfies(func(x int) error {
		if x < 0 {
			return errors.New("negative")
		}

		return nil
	})

	ok, msg := jest.MatchValue(5, matcher)
	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())

	ok, msg = jest.MatchValue(-5, matcher)
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("negative"))
}

// evenMatcher is a hand-rolled duck-typed matcher for these tests.
type evenMatcher struct{}

func (evenMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("%v is not even", actual)
}

func (evenMatcher) Match(actual any) (bool, error) {
	n, ok := actual.(int)
	if !ok {
		return false, fmt.Errorf("expected int, got %T", actual)
	}

	return n%2 == 0, nil
}
