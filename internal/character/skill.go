package character

import "github.com/talgya/worldcore/internal/crafting"

// Skill tracks one character skill's cumulative XP and the tier it buckets
// into, using the same tier thresholds as crafting (spec.md section 4.7:
// "skill tier is fromXp(current_xp) via the same thresholds as crafting").
type Skill struct {
	ID  string
	XP  float64
}

// Tier returns the skill's current proficiency tier.
func (s *Skill) Tier() crafting.Tier {
	return crafting.FromXP(s.XP)
}

// AddXP adds rawXP scaled by the character's trait multiplier for this
// skill (effective_xp = raw_xp * trait_skill_multiplier).
func (s *Skill) AddXP(rawXP, traitSkillMultiplier float64) {
	if rawXP <= 0 {
		return
	}
	s.XP += rawXP * traitSkillMultiplier
}
