package worldgen

import (
	"sort"

	"github.com/talgya/worldcore/internal/rng"
)

const (
	riverSourceMinElevation = 0.6
	riverOceanElevation     = 0.2
	riverMinPathLen         = 6
	riverMinSourceSeparation = 8
)

// River is a carved downhill watercourse. Invariants (spec.md section 3):
// source elevation >= 0.6; each successive path tile has elevation <= the
// previous; terminus is either ocean (elev < 0.2) or a closed basin (lake);
// path length > 5.
type River struct {
	ID         string
	Source     Tile
	Terminus   Tile
	Path       []Tile
	IsLake     bool
}

// CarveRivers implements spec.md section 4.2 stage 4: candidate sources are
// accepted by a stream draw, walked downhill via strict 4-connected descent
// until ocean or a closed basin, and rejected if shorter than 6 tiles.
// Minimum pairwise source separation avoids clustering. Grounded on the
// teacher's traceRiver (internal/world/generation.go), generalized from hex
// 6-neighbor to grid 4-neighbor adjacency and tightened to the strict
// monotonicity and length invariants spec.md requires (the teacher's version
// permits ties and a shorter minimum).
func CarveRivers(g *Grid, cfg Config, stream *rng.Stream) []River {
	var candidates []Tile
	g.Each(func(t Tile) {
		if g.ElevationAt(t) >= riverSourceMinElevation && !g.BiomeAt(t).IsWater() {
			candidates = append(candidates, t)
		}
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Y != candidates[j].Y {
			return candidates[i].Y < candidates[j].Y
		}
		return candidates[i].X < candidates[j].X
	})
	stream.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var rivers []River
	var accepted []Tile

	for _, src := range candidates {
		if !stream.Bernoulli(0.3) {
			continue
		}
		if tooClose(src, accepted, riverMinSourceSeparation) {
			continue
		}

		path, terminus, isLake := walkDownhill(g, src)
		if len(path) < riverMinPathLen {
			continue
		}

		accepted = append(accepted, src)
		rivers = append(rivers, River{
			ID:       stream.NextToken(),
			Source:   src,
			Terminus: terminus,
			Path:     path,
			IsLake:   isLake,
		})
	}

	return rivers
}

func tooClose(t Tile, others []Tile, minDist int) bool {
	for _, o := range others {
		dx, dy := t.X-o.X, t.Y-o.Y
		if dx*dx+dy*dy < minDist*minDist {
			return true
		}
	}
	return false
}

// walkDownhill follows strict-descent 4-connected steps from src until
// reaching ocean elevation or running out of strictly-lower neighbors (a
// closed basin, marked as a lake terminus).
func walkDownhill(g *Grid, src Tile) (path []Tile, terminus Tile, isLake bool) {
	current := src
	visited := map[Tile]bool{src: true}
	path = append(path, src)

	const maxSteps = 4096
	for step := 0; step < maxSteps; step++ {
		if g.ElevationAt(current) < riverOceanElevation {
			return path, current, false
		}

		var best *Tile
		bestElev := g.ElevationAt(current)
		for _, nb := range current.Neighbors4(g.W, g.H) {
			if visited[nb] {
				continue
			}
			e := g.ElevationAt(nb)
			if e < bestElev {
				bestElev = e
				n := nb
				best = &n
			}
		}

		if best == nil {
			return path, current, true // closed basin -> lake
		}

		current = *best
		visited[current] = true
		path = append(path, current)
	}
	return path, current, true
}
