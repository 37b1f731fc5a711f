package crafting

import (
	"math"

	"github.com/talgya/worldcore/internal/corerr"
	"github.com/talgya/worldcore/internal/rng"
)

// Stream is the subset of *rng.Stream the crafting pipeline draws from,
// kept as an interface so tests can supply a fixed sequence.
type Stream interface {
	NextUniform() float64
}

var _ Stream = (*rng.Stream)(nil)

// Crafter is the minimal view of a character the crafting pipeline needs:
// its tier, current category XP, and at-most-two specialization categories.
// Callers fill it in; internal/character.Character.CraftingTier supplies
// the Tier field.
type Crafter struct {
	Tier            Tier
	CategoryXP      map[Category]float64
	Specializations map[Category]bool
}

// Result is the structured outcome of a craft attempt that passed every
// gate: a failed or a successful roll. Gate rejections (proficiency,
// materials, tools) are not reported through Result; Craft returns them as
// corerr.ErrDomain-wrapped errors alongside a zero Result.
type Result struct {
	Success   bool
	Quality   Quality
	Item      *ItemInstance
	XPAwarded float64
	Category  Category
}

func rarityXPMultiplier(rarity string) float64 {
	switch rarity {
	case "uncommon":
		return 1.1
	case "rare":
		return 1.25
	case "epic":
		return 1.5
	case "legendary":
		return 2.0
	default:
		return 1.0
	}
}

// Craft runs the full recipe-validation and success/quality resolution
// pipeline (spec.md section 4.6). materials is mutated in place on success
// (requirements decremented); on any gate rejection or roll failure it is
// left untouched. recipeTier is the tier band the recipe's category is
// evaluated against for the below-tier-penalty (ordinarily recipe.MinTier).
func Craft(recipe Recipe, crafter Crafter, recipeTier Tier, materials map[string]int, availableTools map[string]struct{}, proto ItemPrototype, ownerID string, stream Stream) (Result, error) {
	if crafter.Tier < recipe.MinTier {
		return Result{}, corerr.Domain("reject-unmet-proficiency: crafter tier %s below recipe minimum %s", crafter.Tier, recipe.MinTier)
	}

	for protoID, qty := range recipe.Materials {
		if materials[protoID] < qty {
			return Result{}, corerr.Domain("reject-insufficient-materials: need %d of %s, have %d", qty, protoID, materials[protoID])
		}
	}

	for tool := range recipe.RequiredTools {
		if _, ok := availableTools[tool]; !ok {
			return Result{}, corerr.Domain("reject-missing-tool: missing %s", tool)
		}
	}

	tierDelta := float64(crafter.Tier) - float64(recipe.MinTier)
	failureChance := clamp01((recipe.BaseDifficulty-0.15*tierDelta)*FailureMultiplier(crafter.Tier), 0, 1)

	specialized := crafter.Specializations[recipe.Category]
	belowTierPenalty := 1.0
	if crafter.Tier > recipeTier {
		belowTierPenalty = 0.5
	}
	specializationBonus := 1.0
	if specialized {
		specializationBonus = 1.2
	}
	rarityMult := rarityXPMultiplier(proto.Rarity)

	if stream.NextUniform() <= failureChance {
		// Failure: no materials consumed; XP scaled by the failure
		// multiplier in place of the quality multiplier (spec.md step 5).
		xp := recipe.BaseXP * FailureMultiplier(crafter.Tier) * specializationBonus * rarityMult * belowTierPenalty
		return Result{
			Success:   false,
			XPAwarded: xp,
			Category:  recipe.Category,
		}, nil
	}

	quality := RollQuality(stream.NextUniform())

	for protoID, qty := range recipe.Materials {
		materials[protoID] -= qty
	}

	item := NewItemInstance(proto, ownerID, quality)

	xp := math.Round(recipe.BaseXP * specializationBonus * quality.XPMultiplier() * rarityMult * belowTierPenalty)

	return Result{
		Success:   true,
		Quality:   quality,
		Item:      &item,
		XPAwarded: xp,
		Category:  recipe.Category,
	}, nil
}

func clamp01(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
