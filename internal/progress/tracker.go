// Package progress tracks per-video completion for one batch run. The
// pipeline writes from its worker goroutines while the polling handler
// reads; each job's (phase, progress) pair is updated atomically under
// one lock so a reader never sees a half-applied transition.
package progress

import "sync"

// Phase is the per-video job state within one batch run.
type Phase int

const (
	Pending Phase = iota
	Scraped
	Summarized
	Merged
	Failed
)

// FailedProgress is the wire sentinel for a terminally failed video,
// distinct from any 0..100 value so the client never mistakes a failure
// for a stalled job.
const FailedProgress = -1

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Scraped:
		return "scraped"
	case Summarized:
		return "summarized"
	case Merged:
		return "merged"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// progressValue maps a phase to its completion percentage.
func (p Phase) progressValue() int {
	switch p {
	case Scraped:
		return 50
	case Summarized:
		return 75
	case Merged:
		return 100
	default:
		return 0
	}
}

type job struct {
	phase    Phase
	progress int
}

// Tracker is the shared progress map for batch runs. One instance is
// created at startup and threaded into both the pipeline and the
// polling handler.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*job
}

func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]*job)}
}

// Initialize creates one Pending job per id at progress 0, resetting
// any state left over from a previous run of the same videos.
func (t *Tracker) Initialize(videoIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range videoIDs {
		t.jobs[id] = &job{phase: Pending, progress: 0}
	}
}

// Advance moves a job forward and recomputes its progress. Backward
// transitions are ignored so progress stays monotonic within a run.
// Advancing to Failed keeps the last progress value and marks the job
// terminal; terminal jobs never move again.
func (t *Tracker) Advance(videoID string, phase Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[videoID]
	if !ok {
		return
	}
	if j.phase == Merged || j.phase == Failed {
		return
	}
	if phase == Failed {
		j.phase = Failed
		return
	}
	if phase <= j.phase {
		return
	}
	j.phase = phase
	j.progress = phase.progressValue()
}

// Snapshot returns the progress of the requested ids. Ids unknown to
// the tracker are omitted rather than erroring. Failed jobs report
// FailedProgress.
func (t *Tracker) Snapshot(videoIDs []string) map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]int, len(videoIDs))
	for _, id := range videoIDs {
		j, ok := t.jobs[id]
		if !ok {
			continue
		}
		if j.phase == Failed {
			out[id] = FailedProgress
			continue
		}
		out[id] = j.progress
	}
	return out
}

// PhaseOf reports the current phase of one job.
func (t *Tracker) PhaseOf(videoID string) (Phase, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	j, ok := t.jobs[videoID]
	if !ok {
		return Pending, false
	}
	return j.phase, true
}
