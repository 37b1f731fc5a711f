package character

import "github.com/talgya/worldcore/internal/crafting"

// TraitEffects holds the per-stat and per-skill gain multipliers a trait
// contributes. A character's effective multiplier for a stat/skill is the
// product across all of its traits that mention it; traits silent on a
// given stat/skill contribute 1.0.
type TraitEffects struct {
	StatMultiplier  map[CoreStat]float64
	SkillMultiplier map[string]float64
}

// Character is the full player/NPC progression record spec.md section 3
// names: core stats, skills, traits, inventory, and mana.
type Character struct {
	ID     string
	Stats  map[CoreStat]int
	Skills map[string]*Skill
	Traits map[string]TraitEffects

	Inventory       []string
	Specializations map[crafting.Category]bool // at most 2, per spec.md section 4.6
	Mana            Mana
}

// New constructs a Character with zeroed stats/mana and empty collections.
func New(id string) *Character {
	return &Character{
		ID:              id,
		Stats:           map[CoreStat]int{},
		Skills:          map[string]*Skill{},
		Traits:          map[string]TraitEffects{},
		Specializations: map[crafting.Category]bool{},
	}
}

// statMultiplier is the product of every trait's multiplier for stat s,
// defaulting each missing entry to 1.0.
func (c *Character) statMultiplier(s CoreStat) float64 {
	mult := 1.0
	for _, t := range c.Traits {
		if m, ok := t.StatMultiplier[s]; ok {
			mult *= m
		}
	}
	return mult
}

// skillMultiplier is the product of every trait's multiplier for skillID.
func (c *Character) skillMultiplier(skillID string) float64 {
	mult := 1.0
	for _, t := range c.Traits {
		if m, ok := t.SkillMultiplier[skillID]; ok {
			mult *= m
		}
	}
	return mult
}

// GainStat applies the spec.md section 4.7 increment law to stat s, using
// the character's combined trait multiplier for that stat.
func (c *Character) GainStat(s CoreStat, delta float64) {
	c.Stats[s] = StatGain(c.Stats[s], delta, c.statMultiplier(s))
}

// Skill returns the named skill, creating it at zero XP if absent.
func (c *Character) Skill(id string) *Skill {
	s, ok := c.Skills[id]
	if !ok {
		s = &Skill{ID: id}
		c.Skills[id] = s
	}
	return s
}

// GainSkillXP awards rawXP to skillID, scaled by the character's trait
// multiplier for that skill.
func (c *Character) GainSkillXP(skillID string, rawXP float64) {
	c.Skill(skillID).AddXP(rawXP, c.skillMultiplier(skillID))
}

// CraftingTier returns the character's proficiency tier for skillID, the
// value a caller puts in crafting.Crafter.Tier for the crafting pipeline.
func (c *Character) CraftingTier(skillID string) crafting.Tier {
	return c.Skill(skillID).Tier()
}

// MaxManaStat, ManaRegenStat, MaxHealthStat, and MeleeDamageBonusStat read
// the relevant core stat and apply the spec.md section 4.7 derived-stat formulas.
func (c *Character) MaxManaStat() int           { return MaxMana(c.Stats[INT]) }
func (c *Character) ManaRegenStat() int         { return ManaRegen(c.Stats[INT]) }
func (c *Character) MaxHealthStat() int         { return MaxHealth(c.Stats[CON]) }
func (c *Character) MeleeDamageBonusStat() float64 { return MeleeDamageBonus(c.Stats[STR]) }
