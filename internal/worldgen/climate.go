package worldgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenerateClimate derives temperature and moisture per tile from a latitude
// band plus noise (spec.md section 4.2 stage 3), then assigns the biome.
// The latitude term folds around the horizontal midline of the grid
// (y = H/2) so the top and bottom edges run cold, matching the teacher's "distance from equator" shaping in
// internal/world/generation.go's temperature formula.
func GenerateClimate(g *Grid, cfg Config, tempNoise, moistNoise opensimplex.Noise) {
	midY := float64(cfg.Height) / 2

	g.Each(func(t Tile) {
		latitude := 1 - math.Abs(float64(t.Y)-midY)/midY

		tNoise := octaveNoise(tempNoise, float64(t.X), float64(t.Y), 3, 0.03, 0.5)
		mNoise := octaveNoise(moistNoise, float64(t.X), float64(t.Y), 3, 0.025, 0.5)

		elev := g.ElevationAt(t)
		temp := clamp01(latitude*0.6 + tNoise*0.3 + (1-elev)*0.1)
		moisture := clamp01(0.5 + mNoise*0.5)

		idx := t.Y*cfg.Width + t.X
		g.Temperature[idx] = temp
		g.Moisture[idx] = moisture
		g.SetBiome(t, deriveBiome(elev, temp, moisture, cfg))
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
