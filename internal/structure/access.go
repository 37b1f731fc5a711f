// Package structure implements structure ownership/access, the tax
// enforcement state machine, and the diplomacy/relationship algebra
// (spec.md section 4.8, C8). The FSM and event-driven metric-adjustment
// style is grounded on the teacher's governance/relationship passes
// (internal/engine/governance.go, internal/engine/relationships.go):
// small pure functions mutating a value in place, clamped on every write.
package structure

import "github.com/talgya/worldcore/internal/corerr"

// AccessLevel is the ordered permission lattice spec.md section 3 defines:
// NONE < READ < USE < MODIFY < MANAGE < FULL. The owner is implicitly FULL
// and can never be downgraded.
type AccessLevel uint8

const (
	None AccessLevel = iota
	Read
	Use
	Modify
	Manage
	Full
)

func (a AccessLevel) String() string {
	switch a {
	case None:
		return "NONE"
	case Read:
		return "READ"
	case Use:
		return "USE"
	case Modify:
		return "MODIFY"
	case Manage:
		return "MANAGE"
	case Full:
		return "FULL"
	}
	return "UNKNOWN"
}

// Structure is a player- or clan-owned building (spec.md section 3).
type Structure struct {
	ID              string
	Type            string
	OwnerID         string
	OwnerType       string
	LocationTileID  string
	Health          float64
	MaxHealth       float64
	Permissions     map[string]AccessLevel // role -> level
	Rooms           []string
	Upgrades        []string
	CreatedAtTick   uint64
	LastUpdatedTick uint64
}

// NewStructure constructs a Structure at full health with no permissions
// beyond the implicit owner FULL access.
func NewStructure(id, structType, ownerID, ownerType, tileID string, maxHealth float64, createdAtTick uint64) *Structure {
	return &Structure{
		ID:              id,
		Type:            structType,
		OwnerID:         ownerID,
		OwnerType:       ownerType,
		LocationTileID:  tileID,
		Health:          maxHealth,
		MaxHealth:       maxHealth,
		Permissions:     map[string]AccessLevel{},
		CreatedAtTick:   createdAtTick,
		LastUpdatedTick: createdAtTick,
	}
}

// AccessFor returns the effective access level a role holds: FULL for the
// owner (unconditionally), else the role's explicit grant, else NONE.
func (s *Structure) AccessFor(roleID string) AccessLevel {
	if roleID == s.OwnerID {
		return Full
	}
	if lvl, ok := s.Permissions[roleID]; ok {
		return lvl
	}
	return None
}

// Grant sets roleID's access level, refusing to touch the owner's implicit
// FULL access.
func (s *Structure) Grant(roleID string, level AccessLevel) {
	if roleID == s.OwnerID {
		return
	}
	s.Permissions[roleID] = level
}

// TransferOwnership changes the owner and owner kind, validating non-empty
// newOwnerID and non-empty newOwnerType, and clearing every non-owner
// permission entry since none of them are guaranteed to still apply under
// the new owner (spec.md section 4.8: "validates non-empty owner id and
// non-null owner kind, clears all non-owner permissions, updates tick").
func (s *Structure) TransferOwnership(newOwnerID, newOwnerType string, tick uint64) error {
	if newOwnerID == "" {
		return corerr.Validation("structure %s: transfer requires a non-empty owner id", s.ID)
	}
	if newOwnerType == "" {
		return corerr.Validation("structure %s: transfer requires a non-empty owner kind", s.ID)
	}

	s.OwnerID = newOwnerID
	s.OwnerType = newOwnerType
	s.Permissions = map[string]AccessLevel{}
	s.LastUpdatedTick = tick
	return nil
}

// Decay is an alias for TakeDamage used by the per-tick structure-decay
// phase (spec.md section 4.9's ordering: resource regen -> propagation ->
// structure decay -> tax check).
func (s *Structure) Decay(amount float64, tick uint64) {
	s.TakeDamage(amount, tick)
}

// TakeDamage applies health = max(0, health - d) (spec.md section 4.8).
func (s *Structure) TakeDamage(d float64, tick uint64) {
	s.Health -= d
	if s.Health < 0 {
		s.Health = 0
	}
	s.LastUpdatedTick = tick
}

// Repair restores health, clamped at MaxHealth, and is rejected on a
// destroyed structure (spec.md section 4.8: "repair(r) clamps at max_health
// and is rejected on destroyed structures").
func (s *Structure) Repair(r float64, tick uint64) error {
	if s.Destroyed() {
		return corerr.Domain("destroyed-structure-repair: structure %s has zero health", s.ID)
	}
	s.Health += r
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	s.LastUpdatedTick = tick
	return nil
}

// Destroyed reports whether the structure has reached zero health, which
// gates the repair action (repairing a destroyed structure is a DomainError
// per spec.md section 7).
func (s *Structure) Destroyed() bool {
	return s.Health <= 0
}

// HasAccess reports whether roleID's access level is at least required
// (spec.md section 4.8: "has_access(role, required) returns
// level(role) >= required").
func (s *Structure) HasAccess(roleID string, required AccessLevel) bool {
	return s.AccessFor(roleID) >= required
}
