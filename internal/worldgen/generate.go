// Package worldgen implements the deterministic world generation pipeline:
// plates -> elevation -> biomes -> rivers -> features -> stories. Stages
// execute strictly in order, each consuming only prior stages' outputs plus
// its own derived stream (spec.md section 4.2), mirroring the teacher's
// single Generate() entry point (internal/world/generation.go) that chains
// post-passes after the main per-tile loop.
package worldgen

import (
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/worldcore/internal/rng"
	"github.com/talgya/worldcore/internal/story"
)

// World is the complete static output of world generation: everything the
// region and propagation subsystems read but never mutate (mutation happens
// through region.ResourceNode and the story/event lifecycle instead).
type World struct {
	Config   Config
	Grid     *Grid
	Plates   []Plate
	Rivers   []River
	Features []RegionalFeature
	Stories  []*story.Story
}

// Generate runs the full pipeline for the given configuration. If
// cfg.Seed == 0 a random seed is drawn (matching the teacher's "0 = random"
// convention in GenConfig), otherwise generation is fully deterministic:
// identical (seed, width, height, ...) always yields an identical Checksum.
func Generate(cfg Config) *World {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
		cfg.Seed = seed
	}

	g := NewGrid(cfg.Width, cfg.Height)

	plateStream := rng.Derive(seed, "worldgen-plates", 0)
	plates := GeneratePlates(cfg, plateStream)

	elevNoise := opensimplex.NewNormalized(seed)
	tempNoise := opensimplex.NewNormalized(seed + 1)
	moistNoise := opensimplex.NewNormalized(seed + 2)

	GenerateElevation(g, plates, cfg, elevNoise)
	GenerateClimate(g, cfg, tempNoise, moistNoise)

	// Reclassify closed-basin low spots discovered during river carving as
	// lakes: done as part of river carving itself (IsLake rivers mark their
	// terminus), so climate assignment runs before rivers as spec.md orders.

	riverStream := rng.Derive(seed, "worldgen-rivers", 0)
	rivers := CarveRivers(g, cfg, riverStream)
	for _, r := range rivers {
		if r.IsLake {
			g.SetBiome(r.Terminus, BiomeLake)
		}
	}

	featureStream := rng.Derive(seed, "worldgen-features", 0)
	features := PlaceFeatures(g, cfg, featureStream)

	storyStream := rng.Derive(seed, "worldgen-stories", 0)
	stories := SeedStories(g, cfg, storyStream)

	return &World{
		Config:   cfg,
		Grid:     g,
		Plates:   plates,
		Rivers:   rivers,
		Features: features,
		Stories:  stories,
	}
}

// Checksum computes a content hash over a canonical byte serialization of
// the elevation array (quantized), biome grid, then rivers, features, and
// stories each in id order, per spec.md section 4.1. Two worlds generated
// from the same seed and dimensions always produce the same checksum.
func (w *World) Checksum() string {
	sum := rng.NewSum()

	sum.WriteInt64(int64(w.Grid.W))
	sum.WriteInt64(int64(w.Grid.H))
	for _, e := range w.Grid.Elevation {
		sum.WriteFloat64Quantized(e)
	}
	for _, b := range w.Grid.Biomes {
		sum.WriteUint8(uint8(b))
	}

	rivers := append([]River(nil), w.Rivers...)
	sort.Slice(rivers, func(i, j int) bool { return rivers[i].ID < rivers[j].ID })
	for _, r := range rivers {
		sum.WriteString(r.ID)
		sum.WriteInt64(int64(r.Source.X))
		sum.WriteInt64(int64(r.Source.Y))
		sum.WriteInt64(int64(r.Terminus.X))
		sum.WriteInt64(int64(r.Terminus.Y))
		sum.WriteInt64(int64(len(r.Path)))
	}

	features := append([]RegionalFeature(nil), w.Features...)
	sort.Slice(features, func(i, j int) bool { return features[i].ID < features[j].ID })
	for _, f := range features {
		sum.WriteString(f.ID)
		sum.WriteUint8(uint8(f.Type))
		sum.WriteInt64(int64(f.Location.X))
		sum.WriteInt64(int64(f.Location.Y))
		sum.WriteFloat64Quantized(f.Intensity)
	}

	stories := append([]*story.Story(nil), w.Stories...)
	sort.Slice(stories, func(i, j int) bool { return stories[i].ID < stories[j].ID })
	for _, s := range stories {
		sum.WriteString(s.ID)
		sum.WriteUint8(uint8(s.Kind))
		sum.WriteInt64(int64(s.OriginTile[0]))
		sum.WriteInt64(int64(s.OriginTile[1]))
		sum.WriteInt64(int64(s.Priority))
	}

	return sum.Digest()
}
