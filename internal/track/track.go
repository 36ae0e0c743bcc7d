package track

import "github.com/adikms/kinetrack/internal/detector"

// Position is a single center-point sample in a track's history.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Timestamp is the capture time in milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Action is the discrete motion-state label derived from recent movement.
type Action string

// The fixed action label set, ordered roughly by increasing speed.
const (
	ActionStationary    Action = "stationary"
	ActionSitting       Action = "sitting"
	ActionStanding      Action = "standing"
	ActionWalkingSlowly Action = "walking slowly"
	ActionWalking       Action = "walking"
	ActionWalkingFast   Action = "walking fast"
	ActionRunning       Action = "running"
)

// Object is a tracked object: the engine's persistent identity for one
// physical object across detection cycles.
//
// Identity is the ID field only, never reference identity; Objects are
// plain values and may be freely copied between containers. The History
// slice is exclusively owned by its Object and never aliased across
// tracks or cycles.
type Object struct {
	// ID is assigned once at creation and immutable thereafter.
	ID string `json:"id"`

	ClassName  string               `json:"className"`
	Box        detector.BoundingBox `json:"boundingBox"`
	Confidence float64              `json:"confidenceScore"`

	// History holds the most recent center positions, time-ordered
	// ascending, at most Config.PositionHistory entries.
	History []Position `json:"history"`

	// Speed is the smoothed speed estimate in km/h, rounded to the
	// nearest integer. Recomputed every matched cycle.
	Speed float64 `json:"speed"`

	// Action is the motion-state label. Recomputed every matched cycle.
	Action Action `json:"action"`

	// LastUpdate is the time of the last successful detection match,
	// in milliseconds.
	LastUpdate int64 `json:"lastUpdate"`

	// Matched reports whether a detection matched this track on the most
	// recent cycle. Unmatched tracks coast until the object timeout.
	Matched bool `json:"matched"`
}

// LastPosition returns the most recent history sample.
// The second return value is false if the history is empty.
func (o *Object) LastPosition() (Position, bool) {
	if len(o.History) == 0 {
		return Position{}, false
	}
	return o.History[len(o.History)-1], true
}

// appendBounded returns a new history slice containing the samples of
// history followed by sample, keeping at most max entries by evicting the
// oldest. The input slice is never mutated; the result never shares a
// backing array with it.
func appendBounded(history []Position, sample Position, max int) []Position {
	start := 0
	if len(history)+1 > max {
		start = len(history) + 1 - max
	}

	out := make([]Position, 0, len(history)-start+1)
	out = append(out, history[start:]...)
	return append(out, sample)
}

// cloneHistory returns an independent copy of a history slice.
func cloneHistory(history []Position) []Position {
	out := make([]Position, len(history))
	copy(out, history)
	return out
}
