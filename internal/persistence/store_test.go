package persistence_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/worldcore/internal/corerr"
	"github.com/talgya/worldcore/internal/persistence"
)

type sample struct {
	Value int `json:"value"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	store := persistence.NewStore(3)

	want := sample{Value: 42}
	if err := store.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got sample
	if err := store.Load(path, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	store := persistence.NewStore(3)

	if err := store.Save(path, sample{Value: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Corrupt the saved payload without touching its checksum sidecar.
	corrupted, _ := json.Marshal(sample{Value: 999})
	if err := os.WriteFile(path, corrupted, 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	var got sample
	err := store.Load(path, &got)
	if !errors.Is(err, corerr.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestLoadWithBackupFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	store := persistence.NewStore(3)

	if err := store.Save(path, sample{Value: 1}); err != nil {
		t.Fatalf("Save 1: %v", err)
	}
	if err := store.Save(path, sample{Value: 2}); err != nil {
		t.Fatalf("Save 2: %v", err)
	}

	corrupted, _ := json.Marshal(sample{Value: 999})
	if err := os.WriteFile(path, corrupted, 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	var got sample
	if err := store.LoadWithBackupFallback(path, &got); err != nil {
		t.Fatalf("LoadWithBackupFallback: %v", err)
	}
	if got.Value != 1 {
		t.Fatalf("expected fallback to the backup of the first save (value=1), got %+v", got)
	}
}

func TestBackupRotationBounded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	store := persistence.NewStore(2)

	for i := 0; i < 5; i++ {
		if err := store.Save(path, sample{Value: i}); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	entries, err := filepath.Glob(path + ".bak-*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	// Only count the payload backups, not their .checksum sidecars.
	count := 0
	for _, e := range entries {
		if filepath.Ext(e) != ".checksum" {
			count++
		}
	}
	if count > 2 {
		t.Fatalf("expected at most 2 retained backups, found %d", count)
	}
}

func TestMigrationPathRejectsFutureVersion(t *testing.T) {
	reg := persistence.NewRegistry()
	reg.Register("test/Thing", 1, nil)

	if _, err := reg.MigrationPath("test/Thing", 2); !errors.Is(err, corerr.ErrSchemaVersion) {
		t.Fatalf("expected ErrSchemaVersion for a future version, got %v", err)
	}
}

func TestMigrationPathRejectsUnknownModule(t *testing.T) {
	reg := persistence.NewRegistry()
	if _, err := reg.MigrationPath("nonexistent/Module", 0); !errors.Is(err, corerr.ErrSchemaVersion) {
		t.Fatalf("expected ErrSchemaVersion for an unknown module, got %v", err)
	}
}

func TestMigrateAppliesOrderedSteps(t *testing.T) {
	reg := persistence.NewRegistry()
	reg.Register("test/Thing", 3, map[int]persistence.MigrationStep{
		1: func(p json.RawMessage) (json.RawMessage, error) {
			var m map[string]any
			if err := json.Unmarshal(p, &m); err != nil {
				return nil, err
			}
			m["added_at_v1"] = true
			return json.Marshal(m)
		},
		2: func(p json.RawMessage) (json.RawMessage, error) {
			var m map[string]any
			if err := json.Unmarshal(p, &m); err != nil {
				return nil, err
			}
			m["added_at_v2"] = true
			return json.Marshal(m)
		},
	})

	migrated, version, err := reg.Migrate("test/Thing", 1, json.RawMessage(`{"name":"x"}`))
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected final version 3, got %d", version)
	}

	var out map[string]any
	if err := json.Unmarshal(migrated, &out); err != nil {
		t.Fatalf("unmarshal migrated payload: %v", err)
	}
	if out["added_at_v1"] != true || out["added_at_v2"] != true {
		t.Fatalf("expected both migration steps applied, got %+v", out)
	}
}

func TestStandardRegistryKnownModules(t *testing.T) {
	reg := persistence.StandardRegistry()
	for _, module := range []string{"world/Chunk", "character/Character", "structure/Structure"} {
		version, ok := reg.CurrentVersion(module)
		if !ok {
			t.Fatalf("expected %s to be a known module", module)
		}
		if version != 1 {
			t.Fatalf("expected %s at version 1, got %d", module, version)
		}
	}
}
