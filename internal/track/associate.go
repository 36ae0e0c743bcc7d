package track

import (
	"math"

	"github.com/google/uuid"

	"github.com/adikms/kinetrack/internal/detector"
)

// AdvanceCycle runs one full tracking cycle: it associates the current
// detections with the previous cycle's tracks, extends matched histories,
// recomputes kinematics, and drops tracks whose idle time reached the
// object timeout.
//
// The function is pure with respect to its inputs: previous and its
// histories are never mutated, and the returned slice shares no backing
// storage with them, so the caller can publish the result as a read-only
// snapshot. The only non-determinism is id assignment for new tracks.
//
// Association policy: detections are processed in detector order; each
// scans the previous tracks in order and takes the first unclaimed track
// of the same class whose last known center lies within the rectangular
// gate (|dx| and |dy| both under Config.AssociationGatePx). A track can be
// claimed by at most one detection per cycle; a second crowded detection
// of the same class starts a new track.
//
// Tracks no detection matched are carried forward untouched (history,
// speed and action frozen, Matched false) until now minus their last
// update reaches Config.ObjectTimeoutMs, at which point they are removed
// for good. Ids are never reused.
func AdvanceCycle(cfg Config, previous []Object, detections []detector.Detection, now int64) []Object {
	next := make([]Object, 0, len(detections))
	claimed := make(map[int]bool, len(previous))

	for _, det := range detections {
		if !det.Valid() {
			continue
		}

		cx, cy := det.Box.Center()
		sample := Position{X: cx, Y: cy, Timestamp: now}

		obj := Object{
			ClassName:  det.ClassName,
			Box:        det.Box,
			Confidence: det.Confidence,
			LastUpdate: now,
			Matched:    true,
		}

		if idx := findMatch(cfg, previous, claimed, det.ClassName, cx, cy); idx >= 0 {
			claimed[idx] = true
			obj.ID = previous[idx].ID
			obj.History = appendBounded(previous[idx].History, sample, cfg.PositionHistory)
		} else {
			obj.ID = uuid.NewString()
			obj.History = []Position{sample}
		}

		obj.Speed = Speed(cfg, obj.History)
		obj.Action = DetermineAction(cfg, obj.History, obj.Speed)

		next = append(next, obj)
	}

	// Carry unmatched tracks until they go stale.
	for i := range previous {
		if claimed[i] {
			continue
		}
		if now-previous[i].LastUpdate >= cfg.ObjectTimeoutMs {
			continue
		}
		carried := previous[i]
		carried.History = cloneHistory(previous[i].History)
		carried.Matched = false
		next = append(next, carried)
	}

	return next
}

// findMatch returns the index of the first unclaimed previous track with
// the same class whose last known center is within the rectangular gate
// of (cx, cy), or -1 if none qualifies.
func findMatch(cfg Config, previous []Object, claimed map[int]bool, className string, cx, cy float64) int {
	for i := range previous {
		if claimed[i] || previous[i].ClassName != className {
			continue
		}
		last, ok := previous[i].LastPosition()
		if !ok {
			continue
		}
		if math.Abs(cx-last.X) < cfg.AssociationGatePx && math.Abs(cy-last.Y) < cfg.AssociationGatePx {
			return i
		}
	}
	return -1
}
