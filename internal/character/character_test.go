package character_test

import (
	"testing"

	"github.com/talgya/worldcore/internal/character"
)

func TestStatGainDecaysAboveSoftCap(t *testing.T) {
	lowGain := character.StatGain(10, 5, 1.0)
	highGain := character.StatGain(90, 5, 1.0)

	if lowGain-10 <= highGain-90 {
		t.Fatalf("expected a smaller absolute gain above soft cap: low-delta=%d high-delta=%d", lowGain-10, highGain-90)
	}
}

func TestStatGainClampedToHardCap(t *testing.T) {
	got := character.StatGain(99, 1000, 1.0)
	if got > character.HardCap {
		t.Fatalf("stat %d exceeds hard cap %d", got, character.HardCap)
	}
}

func TestStatGainNeverNegative(t *testing.T) {
	got := character.StatGain(5, -1000, 1.0)
	if got < 0 {
		t.Fatalf("stat %d below zero", got)
	}
}

func TestDerivedStatsFormulas(t *testing.T) {
	if got := character.MaxMana(10); got != 30 {
		t.Errorf("MaxMana(10) = %d, want 30", got)
	}
	if got := character.ManaRegen(25); got != 3 {
		t.Errorf("ManaRegen(25) = %d, want 3", got)
	}
	if got := character.MaxHealth(8); got != 90 {
		t.Errorf("MaxHealth(8) = %d, want 90", got)
	}
	if got := character.MeleeDamageBonus(20); got != 10 {
		t.Errorf("MeleeDamageBonus(20) = %v, want 10", got)
	}
}

func TestManaSpendAndRegen(t *testing.T) {
	m := &character.Mana{Current: 10, Max: 30}

	if !m.Spend(10) {
		t.Fatal("expected spend of exactly current to succeed")
	}
	if m.Current != 0 {
		t.Fatalf("current = %d, want 0", m.Current)
	}
	if m.Spend(1) {
		t.Fatal("expected spend beyond current to fail")
	}

	m.Regen(100)
	if m.Current != m.Max {
		t.Fatalf("regen not clamped: current=%d max=%d", m.Current, m.Max)
	}
}

func TestTraitMultiplierAppliesToStatGain(t *testing.T) {
	c := character.New("hero-1")
	c.Traits["strong"] = character.TraitEffects{StatMultiplier: map[character.CoreStat]float64{character.STR: 2.0}}

	c.GainStat(character.STR, 5)
	withoutTrait := character.StatGain(0, 5, 1.0)

	if c.Stats[character.STR] <= withoutTrait {
		t.Fatalf("trait multiplier did not amplify gain: got %d, baseline %d", c.Stats[character.STR], withoutTrait)
	}
}

func TestSkillTierFollowsCraftingThresholds(t *testing.T) {
	c := character.New("hero-1")
	c.GainSkillXP("blacksmithing", 150)

	if c.Skill("blacksmithing").Tier().String() != "APPRENTICE" {
		t.Fatalf("expected APPRENTICE tier at 150 xp, got %s", c.Skill("blacksmithing").Tier())
	}
}
