package session

import (
	"log/slog"
	"time"
)

// Handler executes a validated action against the rest of the simulation
// (internal/region, internal/crafting, internal/structure, internal/character).
// Pipeline is agnostic to what a given kind does; it only owns validation,
// conflict serialization, and latency tracking (spec.md section 4.9).
type Handler func(Action) error

// Pipeline is the concrete action dispatch queue: validate, acquire the
// action's resource lock (if any), run the handler, release, record
// latency. Multiple workers dequeue concurrently; a per-resource lock
// serializes same-resource actions, matching spec.md section 4.9's
// "parallel-capable... per-resource lock serializes same-resource actions."
// Grounded on Sergey-Bar-Alfred's gateway concurrency middleware
// (services/gateway/middleware/concurrency.go), which combines a per-key
// mutex with a semaphore-bounded worker count for the same reason: bound
// total concurrency while still letting independent keys run in parallel.
type Pipeline struct {
	locks        *LockManager
	latency      *LatencyTracker
	handler      Handler
	hasCharacter HasCharacter
	now          func() time.Time
	sem          chan struct{}
}

// NewPipeline creates a Pipeline that runs at most maxConcurrent actions at
// once, executing each validated action through handler. hasCharacter backs
// the "all non-CHAT actions require a character" rule.
func NewPipeline(handler Handler, hasCharacter HasCharacter, maxConcurrent int) *Pipeline {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Pipeline{
		locks:        NewLockManager(),
		latency:      NewLatencyTracker(512),
		handler:      handler,
		hasCharacter: hasCharacter,
		now:          time.Now,
		sem:          make(chan struct{}, maxConcurrent),
	}
}

// Latency exposes the pipeline's running latency samples, for
// session/httpapi's session-info endpoint.
func (p *Pipeline) Latency() *LatencyTracker {
	return p.latency
}

// Locks exposes the pipeline's LockManager so callers can cancel a queued
// action with RemoveQueuedAction before it has acquired its lock.
func (p *Pipeline) Locks() *LockManager {
	return p.locks
}

// Submit validates the action and hands it to a worker. It returns once
// validation passes and a worker slot is claimed; execution, including any
// conflict wait, continues asynchronously. A validation failure is returned
// synchronously so the caller (the HTTP handler) can reject the request
// immediately rather than accepting and silently dropping it.
func (p *Pipeline) Submit(a Action) error {
	if err := Validate(a, a.PlayerID, p.now(), p.hasCharacter); err != nil {
		return err
	}

	p.sem <- struct{}{}
	go p.run(a)
	return nil
}

func (p *Pipeline) run(a Action) {
	defer func() { <-p.sem }()

	start := p.now()
	if key, conflicts := ConflictKey(a); conflicts {
		if !p.locks.AcquireAction(key, a.ActionID) {
			return
		}
		defer p.locks.Release(key)
	}

	if err := p.handler(a); err != nil {
		slog.Warn("action handler failed", "action_id", a.ActionID, "kind", a.Kind, "error", err)
	}
	p.latency.Record(p.now().Sub(start))
}
