package region

import "sort"

// Rate multipliers from spec.md section 4.3: ACTIVE regions integrate at
// full rate every tick; BACKGROUND regions integrate at 1/60th rate, only
// every BackgroundInterval ticks.
const (
	ActiveRate     = 1.0
	BackgroundRate = 1.0 / 60.0

	// BackgroundInterval is round(1/BackgroundRate).
	BackgroundInterval uint64 = 60
)

// Scheduler drives a set of regions forward on a shared tick clock, the
// per-region generalization of the teacher's single global Engine.step
// (internal/engine/tick.go): ACTIVE regions process every tick, BACKGROUND
// regions process only on tick multiples of BackgroundInterval, and a
// region transitioning BACKGROUND -> ACTIVE gets one resynchronizing
// integration step before resuming per-tick processing.
type Scheduler struct {
	TickLengthSeconds float64
	regions           map[string]*Region
	order             []string // region IDs in ascending order, cached
}

// NewScheduler creates an empty scheduler with the given tick length.
func NewScheduler(tickLengthSeconds float64) *Scheduler {
	return &Scheduler{
		TickLengthSeconds: tickLengthSeconds,
		regions:           map[string]*Region{},
	}
}

// Add registers a region with the scheduler. Regions are processed each
// Step in ascending ID order, per spec.md's single-threaded cooperative
// ordering requirement.
func (s *Scheduler) Add(r *Region) {
	if _, exists := s.regions[r.ID]; !exists {
		s.order = append(s.order, r.ID)
		sort.Strings(s.order)
	}
	s.regions[r.ID] = r
}

// Region looks up a region by id.
func (s *Scheduler) Region(id string) (*Region, bool) {
	r, ok := s.regions[id]
	return r, ok
}

// Step advances every region by one tick, in ascending region-id order.
// ACTIVE regions integrate with dt = tick_length * ActiveRate. BACKGROUND
// regions integrate only when tick is a multiple of BackgroundInterval, with
// dt = (tick - last_processed) * tick_length * BackgroundRate.
func (s *Scheduler) Step(tick uint64) {
	for _, id := range s.order {
		r := s.regions[id]
		switch r.State {
		case Active:
			s.integrate(r, s.TickLengthSeconds*ActiveRate)
			r.LastProcessedTick = tick
		case Background:
			if tick%BackgroundInterval != 0 {
				continue
			}
			dt := float64(tick-r.LastProcessedTick) * s.TickLengthSeconds * BackgroundRate
			s.integrate(r, dt)
			r.LastProcessedTick = tick
		}
	}
}

// Activate transitions a region from BACKGROUND to ACTIVE, applying the
// single catch-up integration step spec.md section 4.4 requires before the
// region resumes per-tick processing. A region already ACTIVE is untouched.
func (s *Scheduler) Activate(id string, tick uint64) {
	r, ok := s.regions[id]
	if !ok || r.State == Active {
		return
	}
	dt := float64(tick-r.LastProcessedTick) * s.TickLengthSeconds * BackgroundRate
	s.integrate(r, dt)
	r.LastProcessedTick = tick
	r.State = Active
}

// Deactivate transitions a region from ACTIVE to BACKGROUND without
// integrating (the next BACKGROUND processing pass measures elapsed ticks
// from LastProcessedTick going forward).
func (s *Scheduler) Deactivate(id string, tick uint64) {
	r, ok := s.regions[id]
	if !ok || r.State == Background {
		return
	}
	r.State = Background
	r.LastProcessedTick = tick
}

// integrate regenerates every resource node in r by dt.
func (s *Scheduler) integrate(r *Region, dt float64) {
	for _, n := range r.Resources {
		n.Regenerate(dt)
	}
}
