package domain

// Phase is a community's position in its event window relative to a single
// reading of the clock. Transitions only move forward:
// unscheduled -> upcoming -> active -> ended.
type Phase string

const (
	PhaseUnscheduled Phase = "unscheduled"
	PhaseUpcoming    Phase = "upcoming"
	PhaseActive      Phase = "active"
	PhaseEnded       Phase = "ended"
)

func (p Phase) Valid() bool {
	return p == PhaseUnscheduled || p == PhaseUpcoming || p == PhaseActive || p == PhaseEnded
}

// RevealPolicy decides when a community's photos become viewable.
type RevealPolicy string

const (
	// RevealAfterEndOnly hides photos until the event has ended.
	// This is the product behavior: shoot during the night, discover the next day.
	RevealAfterEndOnly RevealPolicy = "after_end_only"
	// RevealDuringOrAfter additionally allows live viewing while the event runs.
	RevealDuringOrAfter RevealPolicy = "during_or_after"
)
