// Package crafting implements recipe validation, the probabilistic
// success/quality roll, and tier-aware XP accounting (spec.md section 4.6,
// C6). The gate-then-roll pipeline mirrors the teacher's ResolveWork
// (internal/engine/production.go): a sequence of early-return gate checks
// followed by a production/growth step, generalized from hex-resource
// depletion to recipe material/tool/proficiency gating plus a success and
// quality roll.
package crafting

// Tier is a coarse proficiency level bucketed from cumulative skill XP.
type Tier uint8

const (
	Novice Tier = iota
	Apprentice
	Journeyman
	Expert
	Master
)

func (t Tier) String() string {
	switch t {
	case Novice:
		return "NOVICE"
	case Apprentice:
		return "APPRENTICE"
	case Journeyman:
		return "JOURNEYMAN"
	case Expert:
		return "EXPERT"
	case Master:
		return "MASTER"
	}
	return "UNKNOWN"
}

type tierBand struct {
	minXP       float64
	failureMult float64
}

// tierTable is ordered ascending by minXP; FromXP and FailureMultiplier
// both scan it, matching spec.md section 4.6's table.
var tierTable = []struct {
	tier Tier
	band tierBand
}{
	{Novice, tierBand{0, 0.5}},
	{Apprentice, tierBand{100, 0.4}},
	{Journeyman, tierBand{300, 0.3}},
	{Expert, tierBand{600, 0.2}},
	{Master, tierBand{1000, 0.1}},
}

// FromXP buckets cumulative xp into a Tier. XP accumulates indefinitely
// beyond MASTER; there is no hard cap on the underlying counter.
func FromXP(xp float64) Tier {
	result := Novice
	for _, row := range tierTable {
		if xp >= row.band.minXP {
			result = row.tier
		}
	}
	return result
}

// FailureMultiplier returns the tier's failure_mult, used both to scale the
// success-roll failure chance and to scale XP on a failed craft.
func FailureMultiplier(t Tier) float64 {
	for _, row := range tierTable {
		if row.tier == t {
			return row.band.failureMult
		}
	}
	return 1.0
}
