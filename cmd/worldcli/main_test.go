package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/talgya/worldcore/internal/worldgen"
)

func TestGlyphForBands(t *testing.T) {
	cases := []struct {
		elev float64
		want byte
	}{
		{0.0, '~'}, {0.19, '~'},
		{0.2, ','}, {0.39, ','},
		{0.4, '"'}, {0.69, '"'},
		{0.7, '^'}, {0.89, '^'},
		{0.9, 'M'}, {1.0, 'M'},
	}
	for _, c := range cases {
		if got := glyphFor(c.elev); got != c.want {
			t.Errorf("glyphFor(%v) = %q, want %q", c.elev, got, c.want)
		}
	}
}

func TestRunInteractiveValidCoordinate(t *testing.T) {
	g := worldgen.NewGrid(10, 10)
	g.SetElevation(worldgen.Tile{X: 3, Y: 4}, 0.5678)

	in := strings.NewReader("3 4\nquit\n")
	var out bytes.Buffer
	if code := runInteractive(g, in, &out); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "elevation=0.5678") {
		t.Fatalf("expected elevation output, got %q", out.String())
	}
}

func TestRunInteractiveOutOfBounds(t *testing.T) {
	g := worldgen.NewGrid(5, 5)
	in := strings.NewReader("100 100\nexit\n")
	var out bytes.Buffer
	runInteractive(g, in, &out)
	if !strings.Contains(out.String(), "Out of bounds") {
		t.Fatalf("expected out-of-bounds message, got %q", out.String())
	}
}

func TestRunInteractiveInvalidInput(t *testing.T) {
	g := worldgen.NewGrid(5, 5)
	in := strings.NewReader("not-a-number\nquit\n")
	var out bytes.Buffer
	runInteractive(g, in, &out)
	if !strings.Contains(out.String(), "Invalid input. Use: x y") {
		t.Fatalf("expected invalid-input message, got %q", out.String())
	}
}

func TestRenderASCIIProducesCorrectDimensions(t *testing.T) {
	cfg := worldgen.Config{Width: 16, Height: 8, Seed: 999, SeaLevel: 0.35, MountainLevel: 0.72, PlateDensity: 100}
	world := worldgen.Generate(cfg)
	lines := strings.Split(strings.TrimRight(renderASCII(world.Grid), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 16 {
			t.Fatalf("row %d: expected 16 columns, got %d", i, len(line))
		}
	}
}
