package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeStartsAtZero(t *testing.T) {
	tr := NewTracker()
	tr.Initialize([]string{"a", "b"})

	snap := tr.Snapshot([]string{"a", "b"})
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, snap)
}

func TestAdvanceThresholds(t *testing.T) {
	tr := NewTracker()
	tr.Initialize([]string{"a"})

	tr.Advance("a", Scraped)
	assert.Equal(t, 50, tr.Snapshot([]string{"a"})["a"])

	tr.Advance("a", Summarized)
	assert.Equal(t, 75, tr.Snapshot([]string{"a"})["a"])

	tr.Advance("a", Merged)
	assert.Equal(t, 100, tr.Snapshot([]string{"a"})["a"])
}

func TestAdvanceIsMonotonic(t *testing.T) {
	tr := NewTracker()
	tr.Initialize([]string{"a"})

	tr.Advance("a", Summarized)
	tr.Advance("a", Scraped) // backward, must be ignored
	assert.Equal(t, 75, tr.Snapshot([]string{"a"})["a"])

	tr.Advance("a", Merged)
	tr.Advance("a", Failed) // terminal jobs never move again
	assert.Equal(t, 100, tr.Snapshot([]string{"a"})["a"])
}

func TestFailedReportsSentinel(t *testing.T) {
	tr := NewTracker()
	tr.Initialize([]string{"a"})

	tr.Advance("a", Scraped)
	tr.Advance("a", Failed)
	assert.Equal(t, FailedProgress, tr.Snapshot([]string{"a"})["a"])

	// Failed is terminal.
	tr.Advance("a", Summarized)
	assert.Equal(t, FailedProgress, tr.Snapshot([]string{"a"})["a"])

	phase, ok := tr.PhaseOf("a")
	require.True(t, ok)
	assert.Equal(t, Failed, phase)
}

func TestSnapshotOmitsUnknownIDs(t *testing.T) {
	tr := NewTracker()
	tr.Initialize([]string{"a"})

	snap := tr.Snapshot([]string{"a", "unknown"})
	assert.Equal(t, map[string]int{"a": 0}, snap)

	// Advancing an unknown id is a no-op, not a panic.
	tr.Advance("unknown", Scraped)
	_, ok := tr.PhaseOf("unknown")
	assert.False(t, ok)
}

func TestSnapshotIsIdempotent(t *testing.T) {
	tr := NewTracker()
	tr.Initialize([]string{"a", "b"})
	tr.Advance("a", Scraped)

	first := tr.Snapshot([]string{"a", "b"})
	second := tr.Snapshot([]string{"a", "b"})
	assert.Equal(t, first, second)
}

func TestConcurrentAdvanceAndSnapshot(t *testing.T) {
	tr := NewTracker()
	ids := []string{"a", "b", "c", "d"}
	tr.Initialize(ids)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for _, p := range []Phase{Scraped, Summarized, Merged} {
				tr.Advance(id, p)
			}
		}(id)
	}

	// Reader racing the writers must only ever observe valid values.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			for _, v := range tr.Snapshot(ids) {
				assert.Contains(t, []int{0, 50, 75, 100}, v)
			}
		}
	}()
	wg.Wait()

	assert.Equal(t, map[string]int{"a": 100, "b": 100, "c": 100, "d": 100}, tr.Snapshot(ids))
}
