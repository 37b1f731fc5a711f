// Command worldcli is the CLI harness spec.md section 6 treats as an
// external collaborator: it generates a world from --width/--height/--seed,
// renders it as ASCII, optionally samples individual tiles interactively,
// and optionally writes the world out as a JSON chunk (spec.md section 6).
// None of the simulation core's invariants live here — this binary only
// drives internal/worldgen and internal/persistence, the way the teacher's
// cmd/worldsim wires internal/world and internal/persistence together,
// logging through log/slog exactly as the teacher configures it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/worldcore/internal/persistence"
	"github.com/talgya/worldcore/internal/worldgen"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	width := flag.Int("width", 40, "world width in tiles")
	height := flag.Int("height", 20, "world height in tiles")
	seed := flag.Int64("seed", 0, "world seed (0 = derived from wall clock)")
	interactive := flag.Bool("interactive", false, "sample individual tiles by coordinate after generation")
	out := flag.String("out", "", "path to write the generated world as a JSON chunk (optional)")
	flag.Parse()

	os.Exit(run(*width, *height, *seed, *interactive, *out, os.Stdin, os.Stdout))
}

func run(width, height int, seed int64, interactive bool, out string, in io.Reader, stdout io.Writer) int {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := worldgen.DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Seed = seed

	slog.Info("generating world", "width", width, "height", height, "seed", seed)
	world := worldgen.Generate(cfg)
	slog.Info("world generated",
		"checksum", world.Checksum(),
		"rivers", len(world.Rivers),
		"features", len(world.Features),
		"stories", len(world.Stories),
	)

	fmt.Fprintln(stdout, renderASCII(world.Grid))

	if out != "" {
		store := persistence.NewStore(persistence.DefaultBackupCount)
		if err := store.SaveWorldChunk(out, world); err != nil {
			slog.Error("failed to write world chunk", "path", out, "error", err)
			return 1
		}
		slog.Info("world chunk written", "path", out)
	}

	if interactive {
		return runInteractive(world.Grid, in, stdout)
	}
	return 0
}

// renderASCII maps each tile's elevation band to a glyph, exactly the table
// spec.md section 6 specifies: <0.2 '~', <0.4 ',', <0.7 '"', <0.9 '^', else
// 'M'.
func renderASCII(g *worldgen.Grid) string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			b.WriteByte(glyphFor(g.ElevationAt(worldgen.Tile{X: x, Y: y})))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyphFor(elev float64) byte {
	switch {
	case elev < 0.2:
		return '~'
	case elev < 0.4:
		return ','
	case elev < 0.7:
		return '"'
	case elev < 0.9:
		return '^'
	default:
		return 'M'
	}
}

// runInteractive reads "x y" pairs from in until "quit"/"exit", printing
// each tile's elevation to stdout (spec.md section 6's exact interactive
// contract, including error message text).
func runInteractive(g *worldgen.Grid, in io.Reader, stdout io.Writer) int {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return 0
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintln(stdout, "Invalid input. Use: x y")
			continue
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			fmt.Fprintln(stdout, "Invalid input. Use: x y")
			continue
		}

		tile := worldgen.Tile{X: x, Y: y}
		if !g.InBounds(tile) {
			fmt.Fprintln(stdout, "Out of bounds")
			continue
		}
		fmt.Fprintf(stdout, "elevation=%.4f\n", g.ElevationAt(tile))
	}
	if err := scanner.Err(); err != nil {
		slog.Error("reading interactive input", "error", err)
		return 1
	}
	return 0
}
