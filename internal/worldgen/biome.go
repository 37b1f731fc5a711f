package worldgen

// Biome tags a tile with its terrain classification. Mirrors the teacher's
// Terrain enum (internal/world/hex.go) but carries the full set spec.md
// requires and exposes semantic predicates instead of leaving callers to
// switch on the raw tag everywhere.
type Biome uint8

const (
	BiomeOcean Biome = iota
	BiomeLake
	BiomeMountain
	BiomeHills
	BiomeVolcanic
	BiomeTundra
	BiomeTaiga
	BiomeDesert
	BiomeJungle
	BiomeSavanna
	BiomeForest
	BiomeSwamp
	BiomeGrassland
)

// IsWater reports whether the biome is a body of water.
func (b Biome) IsWater() bool {
	return b == BiomeOcean || b == BiomeLake
}

// IsHabitable reports whether settlers can found a structure on this biome.
// Water and raw volcanic tiles are not.
func (b Biome) IsHabitable() bool {
	return !b.IsWater() && b != BiomeVolcanic
}

// ResourceAbundance is a coarse 0..1 per-biome multiplier on base
// resource-node yield.
func (b Biome) ResourceAbundance() float64 {
	switch b {
	case BiomeOcean:
		return 0.6
	case BiomeLake:
		return 0.5
	case BiomeMountain:
		return 0.9
	case BiomeHills:
		return 0.6
	case BiomeVolcanic:
		return 0.4
	case BiomeTundra:
		return 0.3
	case BiomeTaiga:
		return 0.5
	case BiomeDesert:
		return 0.2
	case BiomeJungle:
		return 0.8
	case BiomeSavanna:
		return 0.5
	case BiomeForest:
		return 0.7
	case BiomeSwamp:
		return 0.4
	case BiomeGrassland:
		return 0.6
	}
	return 0
}

// String returns a human-readable biome name (mirrors the teacher's
// TerrainName helper, internal/world/generation.go).
func (b Biome) String() string {
	switch b {
	case BiomeOcean:
		return "Ocean"
	case BiomeLake:
		return "Lake"
	case BiomeMountain:
		return "Mountain"
	case BiomeHills:
		return "Hills"
	case BiomeVolcanic:
		return "Volcanic"
	case BiomeTundra:
		return "Tundra"
	case BiomeTaiga:
		return "Taiga"
	case BiomeDesert:
		return "Desert"
	case BiomeJungle:
		return "Jungle"
	case BiomeSavanna:
		return "Savanna"
	case BiomeForest:
		return "Forest"
	case BiomeSwamp:
		return "Swamp"
	case BiomeGrassland:
		return "Grassland"
	}
	return "Unknown"
}

// deriveBiome is the deterministic biome(elev, temp, moisture) function
// spec.md section 4.2 stage 3 calls for. Ocean/mountain bands come first
// (pure elevation thresholds), then temperature/moisture partition the
// habitable band — the same cascading-threshold shape as the teacher's
// deriveTerrain (internal/world/generation.go).
func deriveBiome(elev, temp, moisture float64, cfg Config) Biome {
	if elev < cfg.SeaLevel {
		return BiomeOcean
	}
	if elev > cfg.MountainLevel {
		if temp > 0.7 && moisture < 0.3 {
			return BiomeVolcanic
		}
		return BiomeMountain
	}
	if elev > cfg.MountainLevel-0.15 {
		return BiomeHills
	}
	if temp < 0.2 {
		return BiomeTundra
	}
	if temp < 0.35 {
		return BiomeTaiga
	}
	if moisture < 0.2 && temp > 0.5 {
		return BiomeDesert
	}
	if moisture > 0.75 && temp > 0.6 {
		return BiomeJungle
	}
	if moisture > 0.65 && elev < cfg.SeaLevel+0.15 {
		return BiomeSwamp
	}
	if moisture < 0.4 && temp > 0.45 {
		return BiomeSavanna
	}
	if moisture > 0.45 {
		return BiomeForest
	}
	return BiomeGrassland
}
