package worldgen

import (
	"fmt"
	"sort"

	"github.com/talgya/worldcore/internal/rng"
	"github.com/talgya/worldcore/internal/story"
)

// biomeKinds returns the story-kind distribution conditioned on biome, per
// spec.md section 4.2 stage 6 ("mountains -> LEGEND/PROPHECY; grassland ->
// COMEDY/QUEST; etc.").
func biomeKinds(b Biome) []story.Kind {
	switch b {
	case BiomeMountain, BiomeVolcanic, BiomeHills:
		return []story.Kind{story.KindLegend, story.KindProphecy}
	case BiomeGrassland, BiomeSavanna:
		return []story.Kind{story.KindComedy, story.KindQuest}
	case BiomeForest, BiomeJungle, BiomeTaiga:
		return []story.Kind{story.KindMystery, story.KindRumor}
	case BiomeSwamp, BiomeTundra:
		return []story.Kind{story.KindTragedy, story.KindDisaster}
	case BiomeOcean, BiomeLake:
		return []story.Kind{story.KindQuest, story.KindMystery}
	default:
		return []story.Kind{story.KindRumor, story.KindFestival}
	}
}

// SeedStories implements spec.md section 4.2 stage 6: per biome class, place
// stories whose number scales with world area, with unique origin tiles and
// a biome-conditioned kind distribution. Grounded on the teacher's
// biome-bucketed iteration idiom in markCoastalHexes
// (internal/world/generation.go).
func SeedStories(g *Grid, cfg Config, stream *rng.Stream) []*story.Story {
	byBiome := make(map[Biome][]Tile)
	g.Each(func(t Tile) {
		byBiome[g.BiomeAt(t)] = append(byBiome[g.BiomeAt(t)], t)
	})

	area := cfg.Width * cfg.Height
	// Scale with world area: roughly one story seed per 2000 tiles per biome
	// class present, with a floor of 1 so small worlds still get seeded.
	perBiome := area / 2000
	if perBiome < 1 {
		perBiome = 1
	}

	var stories []*story.Story
	used := map[Tile]bool{}

	biomes := make([]Biome, 0, len(byBiome))
	for b := range byBiome {
		biomes = append(biomes, b)
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i] < biomes[j] })

	for _, biome := range biomes {
		tiles := byBiome[biome]
		if len(tiles) == 0 {
			continue
		}
		order := append([]Tile(nil), tiles...)
		stream.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		kinds := biomeKinds(biome)
		n := perBiome
		if n > len(order) {
			n = len(order)
		}

		placed := 0
		for _, t := range order {
			if placed >= n {
				break
			}
			if used[t] {
				continue
			}
			used[t] = true

			kind := kinds[stream.NextIntN(len(kinds))]
			priority := story.PriorityForKind(kind)
			title := fmt.Sprintf("%s of %s", kind.String(), biome.String())

			s := story.New(stream.NextToken(), kind, title, [2]int{t.X, t.Y}, 0, stream.NextFloatRange(0.2, 0.9), 4+stream.NextIntN(5), priority)
			stories = append(stories, s)
			placed++
		}
	}

	return stories
}
