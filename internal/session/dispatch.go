package session

import (
	"sort"
	"sync"
	"time"
)

// OrderByTimestamp sorts actions by ascending timestamp for deterministic
// tie-breaking when ambiguity arises (spec.md section 4.9). Stable so
// actions with identical timestamps keep their input relative order.
func OrderByTimestamp(actions []Action) []Action {
	out := append([]Action(nil), actions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// LatencyTracker keeps a bounded sliding window of recent per-action
// latencies and reports average/p95 on demand, per spec.md section 4.9's
// "average and 95th-percentile are queryable." Grounded on the teacher's
// bucketed-counter style in RateLimiter (internal/api/ratelimit.go),
// generalized from a reset-on-window counter to a retained sample window.
type LatencyTracker struct {
	mu      sync.Mutex
	window  int
	samples []time.Duration
}

// NewLatencyTracker creates a tracker retaining the most recent windowSize
// samples.
func NewLatencyTracker(windowSize int) *LatencyTracker {
	return &LatencyTracker{window: windowSize}
}

// Record appends a latency sample, evicting the oldest once the window is
// full.
func (l *LatencyTracker) Record(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.samples = append(l.samples, d)
	if len(l.samples) > l.window {
		l.samples = l.samples[len(l.samples)-l.window:]
	}
}

// Average returns the mean of the current window, or 0 if empty.
func (l *LatencyTracker) Average() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range l.samples {
		total += s
	}
	return total / time.Duration(len(l.samples))
}

// P95 returns the 95th-percentile latency of the current window, or 0 if
// empty.
func (l *LatencyTracker) P95() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), l.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)) * 0.95)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
