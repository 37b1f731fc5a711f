package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Sum accumulates a canonical byte serialization and yields a hex-encoded
// SHA-256 digest. Callers feed fields in a fixed, documented order — the
// world checksum hashes the quantized elevation array, biome grid, then
// rivers, features, and stories each in id order (spec.md section 4.1).
type Sum struct {
	h hash.Hash
}

// NewSum creates a new checksum accumulator.
func NewSum() *Sum {
	return &Sum{h: sha256.New()}
}

// WriteBytes appends raw bytes to the canonical serialization.
func (b *Sum) WriteBytes(p []byte) { b.h.Write(p) }

// WriteUint8 appends a single byte (used for enum tags like biome/plate type).
func (b *Sum) WriteUint8(v uint8) { b.h.Write([]byte{v}) }

// WriteInt64 appends a little-endian int64.
func (b *Sum) WriteInt64(v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	b.h.Write(buf[:])
}

// WriteFloat64Quantized writes a float64 quantized to a fixed-point integer
// so platform float-formatting differences can never perturb the checksum.
func (b *Sum) WriteFloat64Quantized(v float64) {
	b.WriteInt64(int64(v * 1e6))
}

// WriteString appends a UTF-8 string prefixed by its length, to avoid
// ambiguity between adjacent variable-length fields.
func (b *Sum) WriteString(s string) {
	b.WriteInt64(int64(len(s)))
	b.h.Write([]byte(s))
}

// Digest returns the hex-encoded SHA-256 digest of everything written so far.
func (b *Sum) Digest() string {
	return hex.EncodeToString(b.h.Sum(nil))
}
