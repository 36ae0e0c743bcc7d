package track

import "math"

// Speed computes the smoothed speed in km/h for a position history.
//
// Consecutive sample pairs produce instantaneous speeds via the fixed
// pixel-to-meter calibration. Pairs that moved at most Config.MinMovementPx
// are sensor noise; pairs with non-positive elapsed time carry no speed
// signal; instantaneous speeds at or above Config.MaxSpeedKMH are
// association artifacts. The surviving speeds are averaged over the last
// Config.SpeedSmoothingWindow values and rounded to the nearest integer.
// Histories with fewer than two samples, or where no pair survives the
// filters, yield 0.
func Speed(cfg Config, history []Position) float64 {
	if len(history) < 2 {
		return 0
	}

	speeds := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]

		dist := math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		elapsed := float64(cur.Timestamp-prev.Timestamp) / 1000.0
		if dist <= cfg.MinMovementPx || elapsed <= 0 {
			continue
		}

		kmh := dist * cfg.PixelToMeter / elapsed * 3.6
		if kmh >= cfg.MaxSpeedKMH {
			continue
		}

		speeds = append(speeds, kmh)
	}

	if len(speeds) == 0 {
		return 0
	}
	if len(speeds) > cfg.SpeedSmoothingWindow {
		speeds = speeds[len(speeds)-cfg.SpeedSmoothingWindow:]
	}

	var sum float64
	for _, s := range speeds {
		sum += s
	}
	return math.Round(sum / float64(len(speeds)))
}

// DetermineAction maps a position history and its smoothed speed to a
// discrete action label.
//
// The decision table compares the smoothed speed against fixed thresholds
// and, at low speeds, the summed vertical and horizontal displacement over
// the last three positions. A mostly-vertical low-speed pattern reads as
// bobbing in place (standing) rather than locomotion.
func DetermineAction(cfg Config, history []Position, speed float64) Action {
	if len(history) < 2 {
		return ActionStationary
	}

	recent := history
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	var vertical, horizontal float64
	for i := 1; i < len(recent); i++ {
		vertical += math.Abs(recent[i].Y - recent[i-1].Y)
		horizontal += math.Abs(recent[i].X - recent[i-1].X)
	}

	switch {
	case speed < 1 && vertical < cfg.MinMovementPx*2:
		return ActionSitting
	case speed < 1:
		return ActionStanding
	case speed < 3 && vertical > horizontal:
		return ActionStanding
	case speed < 3:
		return ActionWalkingSlowly
	case speed < 8:
		return ActionWalking
	case speed < 15:
		return ActionWalkingFast
	default:
		return ActionRunning
	}
}
