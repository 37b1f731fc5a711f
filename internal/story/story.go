// Package story models the narrative objects that the propagation engine
// spreads across the region graph: stories (long-lived, world-generation
// seeded) and events (short-lived, triggered during play). Both follow the
// builder-with-immutable-core pattern the teacher uses for its social value
// types (internal/social/faction.go, internal/social/settlement.go): a value
// struct plus small mutator methods that return an updated copy-free mutation
// on the held pointer, since these live inside the authoritative world state
// rather than being passed across trust boundaries.
// See design doc Section 3, 4.5, 4.2 stage 6, and C11 in SPEC_FULL.md.
package story

// Kind enumerates the narrative category of a story or event.
type Kind uint8

const (
	KindLegend Kind = iota
	KindProphecy
	KindComedy
	KindQuest
	KindTragedy
	KindRumor
	KindFestival
	KindWar
	KindDisaster
	KindMystery
)

// Status is the lattice a Story progresses through.
type Status uint8

const (
	StatusActive Status = iota
	StatusResolved
	StatusArchived
)

// EventStatus is the lattice an Event progresses through.
type EventStatus uint8

const (
	EventPending EventStatus = iota
	EventActive
	EventPropagating
	EventCompleted
)

const schemaVersion = 1

// Story is a long-lived narrative object seeded during world generation and
// spread by the propagation engine during play.
type Story struct {
	ID              string
	Kind            Kind
	Title           string
	OriginTile      [2]int
	OriginTick      uint64
	BaseProbability float64
	HopCount        int
	MaxHops         int
	Priority        int
	Status          Status
	AffectedRegions map[string]struct{}
	Metadata        map[string]string
	LinkedStoryID   string
	SchemaVersion   int
}

// New constructs a Story with the given id and the status/version
// invariants the data model requires (status ACTIVE, origin_tick as
// given). Callers supply id (NewEvent follows the same convention) so that
// world-generation-seeded stories can derive it from the seeded rng.Stream
// instead of a process-random source, keeping Generate deterministic.
func New(id string, kind Kind, title string, origin [2]int, originTick uint64, baseProbability float64, maxHops, priority int) *Story {
	return &Story{
		ID:              id,
		Kind:            kind,
		Title:           title,
		OriginTile:      origin,
		OriginTick:      originTick,
		BaseProbability: baseProbability,
		MaxHops:         maxHops,
		Priority:        priority,
		Status:          StatusActive,
		AffectedRegions: map[string]struct{}{},
		Metadata:        map[string]string{},
		SchemaVersion:   schemaVersion,
	}
}

// Admit records that regionID was reached at hop distance h, raising
// HopCount to at least h and growing the affected-region set.
func (s *Story) Admit(regionID string, h int) {
	s.AffectedRegions[regionID] = struct{}{}
	if h > s.HopCount {
		s.HopCount = h
	}
}

// Resolve transitions an ACTIVE story to RESOLVED.
func (s *Story) Resolve() {
	if s.Status == StatusActive {
		s.Status = StatusResolved
	}
}

// Archive transitions a RESOLVED story to ARCHIVED.
func (s *Story) Archive() {
	if s.Status == StatusResolved {
		s.Status = StatusArchived
	}
}

// String returns a human-readable label for the story kind.
func (k Kind) String() string {
	switch k {
	case KindLegend:
		return "Legend"
	case KindProphecy:
		return "Prophecy"
	case KindComedy:
		return "Comedy"
	case KindQuest:
		return "Quest"
	case KindTragedy:
		return "Tragedy"
	case KindRumor:
		return "Rumor"
	case KindFestival:
		return "Festival"
	case KindWar:
		return "War"
	case KindDisaster:
		return "Disaster"
	case KindMystery:
		return "Mystery"
	}
	return "Unknown"
}

// PriorityForKind returns the canonical priority band for a seeded story
// kind, matching spec.md 4.2 stage 6 (LEGEND >= 8, COMEDY <= 3).
func PriorityForKind(k Kind) int {
	switch k {
	case KindLegend, KindProphecy, KindDisaster, KindWar:
		return 8
	case KindComedy, KindRumor, KindFestival:
		return 2
	default:
		return 5
	}
}
