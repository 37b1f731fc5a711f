// Package propagation implements the bounded BFS that spreads stories and
// events across the region graph, with per-hop decay and per-region-per-kind
// saturation. Mirrors the teacher's preference for small, pure per-tick
// transformation functions (internal/engine/relationships.go,
// internal/engine/crime.go) composed by a driving loop, but the loop here is
// a graph BFS instead of a per-agent scan.
// See design doc Section 4.5.
package propagation

import (
	"math"

	"github.com/talgya/worldcore/internal/rng"
)

// DecayFunc computes the attenuation factor at hop distance h.
type DecayFunc func(h int) float64

// ExponentialDecay is exp(-0.8*h), the default decay curve.
func ExponentialDecay(h int) float64 {
	return math.Exp(-0.8 * float64(h))
}

// LinearDecay is max(0, 1 - 0.15*h), the alternative linear decay curve.
// The 0.15 constant is the one spec.md section 9 resolves as authoritative
// for the linear variant (not 0.8, which governs only the exponential form).
func LinearDecay(h int) float64 {
	v := 1 - 0.15*float64(h)
	if v < 0 {
		return 0
	}
	return v
}

// Graph is a read-only adjacency view over the region graph, owned by the
// region package (spec.md design note: "propagation takes a read-only view").
type Graph interface {
	Neighbors(regionID string) []string
}

// Kind identifies which saturation bucket (stories vs events) a propagation
// call counts against.
type Kind uint8

const (
	KindStory Kind = iota
	KindEvent
)

// DefaultCap returns the default saturation cap for a kind (stories: 50,
// events: 20, per spec.md section 4.5).
func DefaultCap(k Kind) int {
	if k == KindEvent {
		return 20
	}
	return 50
}

// SaturationCounter tracks per-region, per-kind admission counts. Updates
// are meant to be atomic increments in a concurrent server (spec.md section
// 9, "Random stream discipline" / "Concurrency primitives"); this struct is
// the single-threaded core — callers needing concurrency wrap it with their
// own lock, matching how the region scheduler owns tick-exclusive access.
type SaturationCounter struct {
	counts map[string]map[Kind]int
	caps   map[Kind]int
}

// NewSaturationCounter creates a counter using the default caps.
func NewSaturationCounter() *SaturationCounter {
	return &SaturationCounter{
		counts: make(map[string]map[Kind]int),
		caps: map[Kind]int{
			KindStory: DefaultCap(KindStory),
			KindEvent: DefaultCap(KindEvent),
		},
	}
}

// SetCap overrides the saturation cap for a kind.
func (s *SaturationCounter) SetCap(k Kind, cap int) { s.caps[k] = cap }

// Count returns the current admitted count for (region, kind).
func (s *SaturationCounter) Count(region string, k Kind) int {
	m := s.counts[region]
	if m == nil {
		return 0
	}
	return m[k]
}

// Cap returns the saturation cap for kind k.
func (s *SaturationCounter) Cap(k Kind) int { return s.caps[k] }

// Increment records one more admission of kind k into region.
func (s *SaturationCounter) Increment(region string, k Kind) {
	m := s.counts[region]
	if m == nil {
		m = make(map[Kind]int)
		s.counts[region] = m
	}
	m[k]++
}

// Factor returns max(0, 1 - count/cap) for (region, kind).
func (s *SaturationCounter) Factor(region string, k Kind) float64 {
	cap := s.caps[k]
	if cap <= 0 {
		return 0
	}
	f := 1 - float64(s.Count(region, k))/float64(cap)
	if f < 0 {
		return 0
	}
	return f
}

// IsCapReached reports whether (region, kind) is at or above its hard cap.
func (s *SaturationCounter) IsCapReached(region string, k Kind) bool {
	return s.Count(region, k) >= s.caps[k]
}

// IsSoftCapReached reports whether (region, kind) is at or above 80% of its
// hard cap — a warning signal only, never itself zeroing the saturation
// factor.
func (s *SaturationCounter) IsSoftCapReached(region string, k Kind) bool {
	return float64(s.Count(region, k)) >= 0.8*float64(s.caps[k])
}

// Admittable is the narrative object the BFS admits into regions: stories
// and events share this surface (story.Story and story.Event both satisfy
// it) so the propagation loop has a single implementation.
type Admittable interface {
	Admit(regionID string, hop int)
}

// Run performs a bounded BFS from origin over graph g, decaying
// baseProbability by decay(h) and the per-region saturation factor, and
// admitting the object into every region that survives a stream draw.
// Determinism: identical seed, graph, and saturation state always produce
// identical affected-region sets and hop counts (spec.md section 4.5).
func Run(obj Admittable, origin string, g Graph, sat *SaturationCounter, k Kind, baseProbability float64, maxHops int, decay DecayFunc, stream *rng.Stream) {
	if decay == nil {
		decay = ExponentialDecay
	}

	visited := map[string]bool{origin: true}
	obj.Admit(origin, 0)
	sat.Increment(origin, k)

	type item struct {
		region string
		hop    int
	}
	queue := []item{{origin, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.hop >= maxHops {
			continue
		}

		for _, next := range g.Neighbors(cur.region) {
			if visited[next] {
				continue
			}
			visited[next] = true

			h := cur.hop + 1
			if h > maxHops {
				continue
			}

			satFactor := sat.Factor(next, k)
			effectiveP := baseProbability * decay(h) * satFactor

			if stream.NextUniform() < effectiveP {
				obj.Admit(next, h)
				sat.Increment(next, k)
				queue = append(queue, item{next, h})
			}
		}
	}
}
