package structure

import (
	"math"

	"github.com/talgya/worldcore/internal/corerr"
)

// Relationship is a clamped diplomacy metric record (spec.md section 3):
// reputation in [-100,100], influence in [0,100], alignment in [-100,100],
// race_affinity in [-50,50]. Every constructor and mutator clamps, per
// spec.md section 4.8's "clamp every metric on construction and mutation."
type Relationship struct {
	TargetID        string
	Reputation      float64
	Influence       float64
	Alignment       float64
	RaceAffinity    float64
	LastUpdatedTick uint64
}

// NewRelationship constructs a clamped, zeroed relationship record.
func NewRelationship(targetID string) *Relationship {
	return &Relationship{TargetID: targetID}
}

// AllianceStrength is (reputation + alignment) / 2.
func (r *Relationship) AllianceStrength() float64 {
	return (r.Reputation + r.Alignment) / 2
}

// WarLikelihood is max(0, (-reputation - 20) / 50).
func (r *Relationship) WarLikelihood() float64 {
	return math.Max(0, (-r.Reputation-20)/50)
}

func (r *Relationship) clamp() {
	r.Reputation = clamp(r.Reputation, -100, 100)
	r.Influence = clamp(r.Influence, 0, 100)
	r.Alignment = clamp(r.Alignment, -100, 100)
	r.RaceAffinity = clamp(r.RaceAffinity, -50, 50)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Decay applies the periodic drift-toward-zero step over Δt ticks (spec.md
// section 4.8): reputation and alignment step linearly toward 0, influence
// decays toward (and floors at) 0; race_affinity is unchanged.
func (r *Relationship) Decay(deltaTicks uint64, now uint64) {
	dt := float64(deltaTicks)

	r.Reputation = stepToward(r.Reputation, 0.01*(dt/100))
	r.Influence -= 0.05 * (dt / 100)
	if r.Influence < 0 {
		r.Influence = 0
	}
	r.Alignment = stepToward(r.Alignment, 0.001*dt)

	r.LastUpdatedTick = now
	r.clamp()
}

// stepToward moves v toward zero by at most step, never overshooting past
// zero (the "linear step ± toward 0" approximation spec.md section 4.8
// specifies in place of the ambiguous exponential form).
func stepToward(v, step float64) float64 {
	if v > 0 {
		return math.Max(0, v-step)
	}
	if v < 0 {
		return math.Min(0, v+step)
	}
	return 0
}

// EventKind enumerates the diplomacy event impacts spec.md section 4.8
// names.
type EventKind uint8

const (
	EventTradeMission EventKind = iota
	EventBetrayal
	EventDiplomaticGift
	EventWar
	EventAlliance
)

// ApplyEvent applies the fixed reputation/influence/alignment deltas spec.md
// section 4.8 names for each event kind, then clamps. ALLIANCE only applies
// its boost when alliance_strength already exceeds 30 before the event;
// otherwise it is rejected with a DomainError (spec.md section 7:
// alliance-requirements-unmet), matching Repair's rejection of destroyed-
// structure repairs.
func (r *Relationship) ApplyEvent(kind EventKind, now uint64) error {
	switch kind {
	case EventTradeMission:
		r.Reputation += 5
		r.Influence += 2
	case EventBetrayal:
		r.Reputation -= 30
	case EventDiplomaticGift:
		r.Reputation += 3
		r.Alignment += 1
	case EventWar:
		r.Reputation -= 40
		r.Alignment -= 20
	case EventAlliance:
		if r.AllianceStrength() <= 30 {
			return corerr.Domain("alliance-requirements-unmet: relationship with %s has alliance strength %.1f, need > 30", r.TargetID, r.AllianceStrength())
		}
		r.Reputation += 10
		r.Alignment += 10
	}
	r.LastUpdatedTick = now
	r.clamp()
	return nil
}
