package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/worldcore/internal/config"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worldcore.yaml")

	want := config.Default()
	want.WorldGen.Seed = 123456789
	want.Tax.Rate = 0.1

	if err := config.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.WorldGen.Seed != want.WorldGen.Seed {
		t.Fatalf("seed mismatch: got %d, want %d", got.WorldGen.Seed, want.WorldGen.Seed)
	}
	if got.Tax.Rate != want.Tax.Rate {
		t.Fatalf("tax rate mismatch: got %v, want %v", got.Tax.Rate, want.Tax.Rate)
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("worldgen:\n  seed: 42\n"), 0o644); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.WorldGen.Seed != 42 {
		t.Fatalf("expected overridden seed 42, got %d", got.WorldGen.Seed)
	}
	if got.Persistence.BackupCount != config.Default().Persistence.BackupCount {
		t.Fatalf("expected default backup count to survive a partial override")
	}
}
