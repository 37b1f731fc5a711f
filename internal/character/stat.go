// Package character implements character stat progression, skill XP/tier
// tracking, and mana (spec.md section 4.7, C7). The flat value struct with
// small pure accessor/mutator methods mirrors the teacher's Agent model
// (internal/agents/types.go): grouped fields and derived values computed on
// demand rather than cached.
package character

// CoreStat enumerates the six core attributes spec.md section 4.7's
// derived-stat examples (INT, CON, STR) are drawn from; DEX/WIS/CHA round
// out the conventional RPG attribute set the rest of the pack implies but
// spec.md leaves unnamed.
type CoreStat uint8

const (
	STR CoreStat = iota
	CON
	INT
	DEX
	WIS
	CHA
)

// HardCap and SoftCap bound every core stat (spec.md section 3/4.7): gains
// decay quadratically above SoftCap and are driven to zero at HardCap.
const (
	HardCap = 100
	SoftCap = 50
)

// StatGain applies spec.md section 4.7's increment law:
// gain = d * traitMultiplier / (1 + (v/S)^2), new value clamped to
// [0, HardCap]. traitMultiplier defaults to 1.0 for characters without a
// trait affecting this stat.
func StatGain(current int, delta float64, traitMultiplier float64) int {
	v := float64(current)
	gain := delta * traitMultiplier / (1 + (v/SoftCap)*(v/SoftCap))
	next := v + gain
	if next < 0 {
		next = 0
	}
	if next > HardCap {
		next = HardCap
	}
	return int(next)
}

// MaxMana, ManaRegen, MaxHealth, and MeleeDamageBonus are the pure derived
// stats spec.md section 4.7 names explicitly.
func MaxMana(intStat int) int       { return 10 + 2*intStat }
func ManaRegen(intStat int) int     { return 1 + intStat/10 }
func MaxHealth(conStat int) int     { return 50 + 5*conStat }
func MeleeDamageBonus(strStat int) float64 { return float64(strStat) / 2 }
