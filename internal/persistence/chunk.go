package persistence

import "github.com/talgya/worldcore/internal/worldgen"

// WorldChunkSchemaVersion is world/Chunk's current schema version
// (spec.md section 6).
const WorldChunkSchemaVersion = 1

// WorldChunk is the external JSON representation of a generated world
// (spec.md section 6): width, height, seed, a row-major height*width
// elevation array, and a checksum. The ASCII viewer (an external
// collaborator, out of this module's scope) maps elevation bands in this
// exact shape to glyphs.
type WorldChunk struct {
	SchemaVersion int       `json:"schema_version"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Seed          int64     `json:"seed"`
	Elevation     []float64 `json:"elevation"`
	Checksum      string    `json:"checksum"`
}

// ChunkFromWorld projects a generated world down to the external chunk
// representation, row-major as spec.md section 6 requires (worldgen.Grid
// already stores elevation row-major, so this is a direct field copy).
func ChunkFromWorld(w *worldgen.World) WorldChunk {
	return WorldChunk{
		SchemaVersion: WorldChunkSchemaVersion,
		Width:         w.Grid.W,
		Height:        w.Grid.H,
		Seed:          w.Config.Seed,
		Elevation:     append([]float64(nil), w.Grid.Elevation...),
		Checksum:      w.Checksum(),
	}
}

// SaveWorldChunk writes w's chunk representation to path via the standard
// atomic-save-plus-checksum-sidecar path (spec.md section 4.10).
func (s *Store) SaveWorldChunk(path string, w *worldgen.World) error {
	return s.Save(path, ChunkFromWorld(w))
}

// LoadWorldChunk reads a WorldChunk from path, verifying the
// persistence-layer sidecar checksum. The chunk's own recorded world
// checksum is returned as stored; it is not recomputed or compared against
// the elevation payload.
func (s *Store) LoadWorldChunk(path string) (WorldChunk, error) {
	var chunk WorldChunk
	if err := s.Load(path, &chunk); err != nil {
		return WorldChunk{}, err
	}
	return chunk, nil
}
