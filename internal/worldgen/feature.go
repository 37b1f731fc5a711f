package worldgen

import (
	"math"

	"github.com/talgya/worldcore/internal/rng"
)

// FeatureType enumerates the regional feature kinds spec.md section 3 names
// (VOLCANO, SUBMERGED_CITY, MAGIC_ZONE, ...) plus two more the original
// worldgen vocabulary commonly ships alongside them.
type FeatureType uint8

const (
	FeatureVolcano FeatureType = iota
	FeatureSubmergedCity
	FeatureMagicZone
	FeatureAncientRuins
	FeatureMeteorCrater
)

const featureMinSeparation = 10

// RegionalFeature is a notable point of interest placed during world
// generation (spec.md section 3).
type RegionalFeature struct {
	ID              string
	Type            FeatureType
	Location        Tile
	Intensity       float64
	EffectDescription string
}

// compatible reports whether FeatureType t may be placed on the given tile's
// biome/elevation, per spec.md section 4.2 stage 5's "per-type compatibility
// predicate".
func compatible(t FeatureType, g *Grid, tile Tile) bool {
	biome := g.BiomeAt(tile)
	elev := g.ElevationAt(tile)

	switch t {
	case FeatureVolcano:
		return biome == BiomeVolcanic || (biome == BiomeMountain && elev > 0.8)
	case FeatureSubmergedCity:
		return biome.IsWater()
	case FeatureMagicZone:
		return biome.IsHabitable()
	case FeatureAncientRuins:
		return biome.IsHabitable() && biome != BiomeTundra
	case FeatureMeteorCrater:
		return biome != BiomeOcean
	}
	return false
}

func effectDescription(t FeatureType) string {
	switch t {
	case FeatureVolcano:
		return "periodic ash falls suppress nearby crop yield but enrich soil afterward"
	case FeatureSubmergedCity:
		return "ruins beneath the waves draw treasure-seekers and territorial predators"
	case FeatureMagicZone:
		return "ambient mana distorts crafting rolls and attracts wandering spellcasters"
	case FeatureAncientRuins:
		return "half-buried structures hide salvage and the occasional trap"
	case FeatureMeteorCrater:
		return "a rare-ore deposit formed on impact"
	}
	return ""
}

// PlaceFeatures implements spec.md section 4.2 stage 5: iterate candidate
// tiles in a shuffled deterministic order, accept when the type's
// compatibility predicate holds and no prior feature lies within radius 10,
// assigning intensity from the domain stream. Grounded on the teacher's
// shuffle-then-filter placement idiom in placeRivers
// (internal/world/generation.go), generalized to feature placement.
func PlaceFeatures(g *Grid, cfg Config, stream *rng.Stream) []RegionalFeature {
	var order []Tile
	g.Each(func(t Tile) { order = append(order, t) })
	stream.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	types := []FeatureType{FeatureVolcano, FeatureSubmergedCity, FeatureMagicZone, FeatureAncientRuins, FeatureMeteorCrater}

	var placed []RegionalFeature
	for _, tile := range order {
		ft := types[stream.NextIntN(len(types))]
		if !compatible(ft, g, tile) {
			continue
		}
		if tooCloseToAny(tile, placed, featureMinSeparation) {
			continue
		}
		placed = append(placed, RegionalFeature{
			ID:                stream.NextToken(),
			Type:              ft,
			Location:          tile,
			Intensity:         stream.NextUniform(),
			EffectDescription: effectDescription(ft),
		})
	}
	return placed
}

func tooCloseToAny(t Tile, features []RegionalFeature, minDist float64) bool {
	for _, f := range features {
		dx := float64(t.X - f.Location.X)
		dy := float64(t.Y - f.Location.Y)
		if math.Hypot(dx, dy) < minDist {
			return true
		}
	}
	return false
}
