package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/talgya/worldcore/internal/corerr"
)

// MigrationStep is a pure transformer from one schema version to the next:
// step N lives at key N and turns a version-N payload into a version-(N+1)
// payload (spec.md section 4.10).
type MigrationStep func(payload json.RawMessage) (json.RawMessage, error)

// moduleSchema is one registered module's current version and its ordered
// migration steps.
type moduleSchema struct {
	currentVersion int
	steps          map[int]MigrationStep
}

// Registry maps module name to its current schema version and migration
// steps (spec.md section 4.10). Known modules per spec.md section 6:
// world/Chunk=1, character/Character=1, structure/Structure=1.
type Registry struct {
	modules map[string]moduleSchema
}

// NewRegistry creates an empty migration registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]moduleSchema{}}
}

// Register declares module's current schema version and the steps needed
// to reach it from any earlier version. steps is keyed by source version:
// steps[1] transforms a v1 payload into v2, and so on.
func (r *Registry) Register(module string, currentVersion int, steps map[int]MigrationStep) {
	if steps == nil {
		steps = map[int]MigrationStep{}
	}
	r.modules[module] = moduleSchema{currentVersion: currentVersion, steps: steps}
}

// MigrationPath returns the ordered migration steps needed to bring module
// from fromVersion up to its registered current version. An unknown module
// or a fromVersion greater than the current version is a hard error
// (spec.md section 4.10: "a hard error", no migration attempted).
func (r *Registry) MigrationPath(module string, fromVersion int) ([]MigrationStep, error) {
	schema, ok := r.modules[module]
	if !ok {
		return nil, fmt.Errorf("%w: unknown module %q", corerr.ErrSchemaVersion, module)
	}
	if fromVersion > schema.currentVersion {
		return nil, fmt.Errorf("%w: module %q version %d exceeds current version %d",
			corerr.ErrSchemaVersion, module, fromVersion, schema.currentVersion)
	}

	var path []MigrationStep
	for v := fromVersion; v < schema.currentVersion; v++ {
		step, ok := schema.steps[v]
		if !ok {
			return nil, fmt.Errorf("%w: module %q missing migration step from version %d",
				corerr.ErrSchemaVersion, module, v)
		}
		path = append(path, step)
	}
	return path, nil
}

// Migrate applies module's migration path to payload starting at
// fromVersion, returning the fully-migrated payload and the version it now
// represents (the module's current version).
func (r *Registry) Migrate(module string, fromVersion int, payload json.RawMessage) (json.RawMessage, int, error) {
	path, err := r.MigrationPath(module, fromVersion)
	if err != nil {
		return nil, 0, err
	}
	schema := r.modules[module]

	current := payload
	for _, step := range path {
		next, err := step(current)
		if err != nil {
			return nil, 0, corerr.Persistence("migrating module %q: %v", module, err)
		}
		current = next
	}
	return current, schema.currentVersion, nil
}

// CurrentVersion reports module's registered current schema version.
func (r *Registry) CurrentVersion(module string) (int, bool) {
	schema, ok := r.modules[module]
	return schema.currentVersion, ok
}

// StandardRegistry returns the registry pre-populated with the known
// modules spec.md section 6 names, each presently at version 1 with no
// migration steps yet (nothing has shipped a schema change since).
func StandardRegistry() *Registry {
	r := NewRegistry()
	r.Register("world/Chunk", 1, nil)
	r.Register("character/Character", 1, nil)
	r.Register("structure/Structure", 1, nil)
	return r
}
