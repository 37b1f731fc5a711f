package worldgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// plateBaseline is the type-dependent elevation floor before noise and
// boundary contributions are added (continental land sits higher than
// oceanic crust, mirroring real-world hypsography).
func plateBaseline(t PlateType) float64 {
	if t == PlateContinental {
		return 0.55
	}
	return 0.25
}

// octaveNoise layers multiple noise frequencies for natural-looking
// variation. Verbatim technique from the teacher (internal/world/generation.go
// octaveNoise), generalized to an arbitrary opensimplex.Noise source.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}

// boundaryContributions computes, for each tile, the sum of collision
// intensities from nearby plate boundaries the tile's plate is party to.
// Every tile is visited once through its plate's OwnedTiles; each in-bounds
// 4-neighbor owned by a different plate adds that pair's collision
// intensity to the tile.
func boundaryContributions(g *Grid, plates []Plate, cfg Config) []float64 {
	contrib := make([]float64, cfg.Width*cfg.Height)

	owner := make(map[Tile]int, cfg.Width*cfg.Height)
	for i, p := range plates {
		for _, t := range p.OwnedTiles {
			owner[t] = i
		}
	}

	for i, p := range plates {
		for _, t := range p.OwnedTiles {
			for _, nb := range t.Neighbors4(cfg.Width, cfg.Height) {
				j, ok := owner[nb]
				if !ok || j == i {
					continue
				}
				_, intensity := CollisionIntensity(p, plates[j])
				if intensity > 0 {
					idx := t.Y*cfg.Width + t.X
					contrib[idx] += intensity
				}
			}
		}
	}

	return contrib
}

// GenerateElevation implements spec.md section 4.2 stage 2: for each tile,
// base elevation is the owning plate's type baseline plus multi-octave noise
// plus aggregated boundary collision contributions, normalized into [0,1].
func GenerateElevation(g *Grid, plates []Plate, cfg Config, elevNoise opensimplex.Noise) {
	for i := range g.PlateID {
		g.PlateID[i] = -1
	}
	for i, p := range plates {
		for _, t := range p.OwnedTiles {
			g.SetPlate(t, i)
		}
	}

	contrib := boundaryContributions(g, plates, cfg)

	raw := make([]float64, cfg.Width*cfg.Height)
	minV, maxV := math.MaxFloat64, -math.MaxFloat64

	g.Each(func(t Tile) {
		idx := t.Y*cfg.Width + t.X
		pIdx := g.PlateAt(t)
		baseline := 0.4
		if pIdx >= 0 {
			baseline = plateBaseline(plates[pIdx].Type)
		}

		noise := octaveNoise(elevNoise, float64(t.X), float64(t.Y), 4, 0.02, 0.5)
		v := baseline + noise*0.25 + contrib[idx]

		raw[idx] = v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	})

	span := maxV - minV
	if span == 0 {
		span = 1
	}
	g.Each(func(t Tile) {
		idx := t.Y*cfg.Width + t.X
		norm := (raw[idx] - minV) / span
		g.SetElevation(t, norm)
	})
}
