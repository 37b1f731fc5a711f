package worldgen_test

import (
	"testing"

	"github.com/talgya/worldcore/internal/worldgen"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := worldgen.Config{Width: 48, Height: 48, Seed: 123456789, SeaLevel: 0.35, MountainLevel: 0.72, PlateDensity: 200}

	w1 := worldgen.Generate(cfg)
	w2 := worldgen.Generate(cfg)

	if w1.Checksum() != w2.Checksum() {
		t.Fatalf("checksums differ across identical-seed runs: %s vs %s", w1.Checksum(), w2.Checksum())
	}
}

func TestRiverDownhillMonotone(t *testing.T) {
	cfg := worldgen.Config{Width: 64, Height: 64, Seed: 12345, SeaLevel: 0.35, MountainLevel: 0.72, PlateDensity: 200}
	w := worldgen.Generate(cfg)

	if len(w.Rivers) == 0 {
		t.Skip("no rivers generated for this seed/config")
	}

	for _, r := range w.Rivers {
		for i := 1; i < len(r.Path); i++ {
			prev := w.Grid.ElevationAt(r.Path[i-1])
			cur := w.Grid.ElevationAt(r.Path[i])
			if cur > prev {
				t.Fatalf("river %s: elevation increased from %v to %v at step %d", r.ID, prev, cur, i)
			}
		}
	}
}

func TestFeatureSeparation(t *testing.T) {
	cfg := worldgen.Config{Width: 80, Height: 80, Seed: 777, SeaLevel: 0.35, MountainLevel: 0.72, PlateDensity: 150}
	w := worldgen.Generate(cfg)

	for i := 0; i < len(w.Features); i++ {
		for j := i + 1; j < len(w.Features); j++ {
			dx := float64(w.Features[i].Location.X - w.Features[j].Location.X)
			dy := float64(w.Features[i].Location.Y - w.Features[j].Location.Y)
			distSq := dx*dx + dy*dy
			if distSq < 100 { // 10*10
				t.Fatalf("features %s and %s are closer than 10 tiles", w.Features[i].ID, w.Features[j].ID)
			}
		}
	}
}

func TestPlatesPartitionGrid(t *testing.T) {
	cfg := worldgen.SmallTestConfig()
	w := worldgen.Generate(cfg)

	covered := make(map[worldgen.Tile]bool)
	for _, p := range w.Plates {
		for _, tile := range p.OwnedTiles {
			if covered[tile] {
				t.Fatalf("tile %v owned by more than one plate", tile)
			}
			covered[tile] = true
		}
	}
	if len(covered) != cfg.Width*cfg.Height {
		t.Fatalf("plates cover %d tiles, want %d", len(covered), cfg.Width*cfg.Height)
	}
}
