package jest_test

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/zsol/jest"
	"pgregory.net/rapid"
)

// TestResetAll_ResetsEveryTrackedMock verifies ResetAll sweeps all mocks
// tracked under the same test.
func TestResetAll_ResetsEveryTrackedMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first := jest.Fn().Return(1)
	second := jest.Fn().Return(2)
	jest.Track(t, first, second)

	first.Invoke()
	second.Invoke()

	jest.ResetAll(t)

	g.Expect(first.WasCalled()).To(BeFalse())
	g.Expect(second.WasCalled()).To(BeFalse())
	g.Expect(first.Invoke()).To(BeNil())
	g.Expect(second.Invoke()).To(BeNil())
}

// TestClearAll_KeepsBehavior verifies ClearAll drops ledgers but leaves
// configured behavior armed.
func TestClearAll_KeepsBehavior(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := jest.Fn().Return("kept")
	jest.Track(t, mock)

	mock.Invoke()
	jest.ClearAll(t)

	g.Expect(mock.WasCalled()).To(BeFalse())
	g.Expect(mock.Invoke()).To(Equal("kept"))
}

// TestTrack_UntrackedMocksAreLeftAlone verifies sweeping only touches
// tracked mocks.
func TestTrack_UntrackedMocksAreLeftAlone(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tracked := jest.Fn()
	untracked := jest.Fn()
	jest.Track(t, tracked)

	tracked.Invoke()
	untracked.Invoke()

	jest.ResetAll(t)

	g.Expect(tracked.WasCalled()).To(BeFalse())
	g.Expect(untracked.WasCalled()).To(BeTrue())
}

// TestTrack_DifferentTestsAreIsolated verifies mocks tracked under one test
// are not swept by another.
func TestTrack_DifferentTestsAreIsolated(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var outer *jest.Mock

	t.Run("subtest", func(t *testing.T) {
		outer = jest.Fn()
		jest.Track(t, outer)
		outer.Invoke()
	})

	// Sweeping the parent test must not touch the subtest's mocks.
	jest.ResetAll(t)
	g.Expect(outer.WasCalled()).To(BeTrue())
}

// TestTrack_ConcurrentAccess verifies the registry is safe for concurrent
// tracking and sweeping from multiple goroutines.
func TestTrack_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const numGoroutines = 100

	mocks := make([]*jest.Mock, numGoroutines)
	for i := range mocks {
		mocks[i] = jest.Fn()
	}

	var wg sync.WaitGroup

	wg.Add(numGoroutines)

	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()
			jest.Track(t, mocks[idx])
		}(i)
	}

	wg.Wait()

	for _, mock := range mocks {
		mock.Invoke()
	}

	jest.ResetAll(t)

	for _, mock := range mocks {
		g.Expect(mock.WasCalled()).To(BeFalse())
	}
}

// TestTrack_ConcurrentAccess_Rapid uses property-based testing to verify
// concurrent tracking safety with randomized group sizes.
func TestTrack_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")

		var wg sync.WaitGroup

		wg.Add(numGoroutines)

		for range numGoroutines {
			go func() {
				defer wg.Done()
				jest.Track(rt, jest.Fn())
			}()
		}

		wg.Wait()
		jest.ResetAll(rt)
	})
}
