package worldgen

import (
	"math"

	"github.com/talgya/worldcore/internal/rng"
)

// PlateType distinguishes the two plate kinds spec.md section 3 defines.
type PlateType uint8

const (
	PlateContinental PlateType = iota
	PlateOceanic
)

// Plate is a tectonic plate: a drifting region of the grid whose relative
// motion against its neighbors drives elevation (spec.md section 3/4.2
// stage 1). Collision intensity is computed lazily by CollisionIntensity
// rather than stored, since it is a pairwise function of two plates.
type Plate struct {
	ID          string
	Center      Tile
	DriftVector [2]float64 // each component in [-0.5, 0.5]
	Type        PlateType
	OwnedTiles  []Tile
}

// vec2 is a small local vector helper — kept inline rather than imported
// from a generic math package since exactly two operations are needed.
type vec2 = [2]float64

func sub2(a, b vec2) vec2   { return vec2{a[0] - b[0], a[1] - b[1]} }
func dot2(a, b vec2) float64 { return a[0]*b[0] + a[1]*b[1] }
func norm2(a vec2) vec2 {
	l := math.Hypot(a[0], a[1])
	if l == 0 {
		return vec2{0, 0}
	}
	return vec2{a[0] / l, a[1] / l}
}

// CollisionIntensity implements spec.md section 4.2 stage 1: two plates
// "collide" iff the projection of their relative drift onto the direction
// between centers is strictly positive; intensity is that projection
// squared over 4, bounded by 0.25.
func CollisionIntensity(a, b Plate) (collides bool, intensity float64) {
	direction := norm2(vec2{float64(b.Center.X - a.Center.X), float64(b.Center.Y - a.Center.Y)})
	relative := sub2(a.DriftVector, b.DriftVector)
	proj := dot2(relative, direction)
	if proj <= 0 {
		return false, 0
	}
	intensity = proj * proj / 4
	if intensity > 0.25 {
		intensity = 0.25
	}
	return true, intensity
}

// GeneratePlates samples N ~= W*H/plateDensity plate centers uniformly over
// the grid, assigns drift vectors uniformly in [-0.5,0.5]^2 and type by a
// 70/30 continental/oceanic Bernoulli split, per spec.md section 4.2 stage 1.
// Grounded on the teacher's Voronoi nearest-plate assignment
// (internal/world/generation.go) generalized from a hex radius to a
// rectangular grid, and on other_examples' tectonics.go centroid/BFS
// assignment idiom for plate ownership.
func GeneratePlates(cfg Config, stream *rng.Stream) []Plate {
	n := int(float64(cfg.Width*cfg.Height) / cfg.PlateDensity)
	if n < 1 {
		n = 1
	}

	plates := make([]Plate, n)

	for i := 0; i < n; i++ {
		center := Tile{
			X: stream.NextIntN(cfg.Width),
			Y: stream.NextIntN(cfg.Height),
		}
		drift := vec2{
			stream.NextFloatRange(-0.5, 0.5),
			stream.NextFloatRange(-0.5, 0.5),
		}
		pt := PlateOceanic
		if stream.Bernoulli(0.7) {
			pt = PlateContinental
		}
		plates[i] = Plate{
			ID:          stream.NextToken(),
			Center:      center,
			DriftVector: drift,
			Type:        pt,
		}
	}

	// Shuffle so continental/oceanic assignment isn't spatially correlated
	// with draw order.
	stream.Shuffle(len(plates), func(i, j int) { plates[i], plates[j] = plates[j], plates[i] })

	AssignNearestPlate(plates, cfg)
	return plates
}

// AssignNearestPlate partitions every grid tile to its nearest plate center
// (Voronoi), recording ownership on both the Grid and each Plate's
// OwnedTiles, which must partition the tile grid (spec.md section 3
// invariant).
func AssignNearestPlate(plates []Plate, cfg Config) {
	for i := range plates {
		plates[i].OwnedTiles = plates[i].OwnedTiles[:0]
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			t := Tile{x, y}
			best := -1
			bestDist := math.MaxFloat64
			for i, p := range plates {
				dx := float64(t.X - p.Center.X)
				dy := float64(t.Y - p.Center.Y)
				d := dx*dx + dy*dy
				if d < bestDist {
					bestDist = d
					best = i
				}
			}
			plates[best].OwnedTiles = append(plates[best].OwnedTiles, t)
		}
	}
}
