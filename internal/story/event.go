package story

// Event is a short-lived narrative object triggered during play (as opposed
// to a Story, which is seeded at world generation). It shares the same
// propagation mechanics but its own status lattice: PENDING, ACTIVE,
// PROPAGATING, COMPLETED.
type Event struct {
	ID              string
	Kind            Kind
	Title           string
	OriginTile      [2]int
	OriginTick      uint64
	BaseProbability float64
	HopCount        int
	MaxHops         int
	Priority        int
	Status          EventStatus
	AffectedRegions map[string]struct{}
	Metadata        map[string]string
	LinkedStoryID   string
	SchemaVersion   int
}

// NewEvent constructs an Event in PENDING status.
func NewEvent(id string, kind Kind, title string, origin [2]int, originTick uint64, baseProbability float64, maxHops, priority int) *Event {
	return &Event{
		ID:              id,
		Kind:            kind,
		Title:           title,
		OriginTile:      origin,
		OriginTick:      originTick,
		BaseProbability: baseProbability,
		MaxHops:         maxHops,
		Priority:        priority,
		Status:          EventPending,
		AffectedRegions: map[string]struct{}{},
		Metadata:        map[string]string{},
		SchemaVersion:   schemaVersion,
	}
}

// Admit records that regionID was reached at hop distance h.
func (e *Event) Admit(regionID string, h int) {
	e.AffectedRegions[regionID] = struct{}{}
	if h > e.HopCount {
		e.HopCount = h
	}
}

// Activate transitions PENDING -> ACTIVE.
func (e *Event) Activate() {
	if e.Status == EventPending {
		e.Status = EventActive
	}
}

// BeginPropagation transitions ACTIVE -> PROPAGATING.
func (e *Event) BeginPropagation() {
	if e.Status == EventActive {
		e.Status = EventPropagating
	}
}

// Complete transitions PROPAGATING (or ACTIVE) -> COMPLETED.
func (e *Event) Complete() {
	if e.Status == EventPropagating || e.Status == EventActive {
		e.Status = EventCompleted
	}
}
