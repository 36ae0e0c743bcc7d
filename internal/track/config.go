// Package track implements the tracking-and-kinematics engine for the
// Kinetrack motion tracking system: it associates per-frame detections with
// persistent tracks, maintains a bounded position history per track, and
// derives a smoothed speed estimate and a discrete action label from recent
// motion.
package track

// Config holds the calibration constants for association and kinematics.
// The defaults assume a generic webcam framing at 640x480; retune for a
// different camera or scale without touching the algorithms.
type Config struct {
	// DetectionIntervalMs is the nominal detection polling cadence in
	// milliseconds.
	DetectionIntervalMs int

	// PositionHistory is the maximum number of position samples kept per
	// track. The oldest sample is evicted when the buffer is full.
	PositionHistory int

	// ObjectTimeoutMs is the idle age in milliseconds past which a track
	// with no matching detection is dropped.
	ObjectTimeoutMs int64

	// PixelToMeter converts pixel distance to meters.
	PixelToMeter float64

	// MinMovementPx is the pixel distance below which movement between two
	// samples is treated as sensor noise rather than motion.
	MinMovementPx float64

	// MaxSpeedKMH is the instantaneous speed at or above which a sample
	// pair is discarded as an association or outlier artifact.
	MaxSpeedKMH float64

	// SpeedSmoothingWindow is the number of most recent instantaneous
	// speeds averaged to produce the reported speed.
	SpeedSmoothingWindow int

	// AssociationGatePx is the per-axis spatial gate for matching a
	// detection to an existing track. Both |dx| and |dy| must be below
	// this value. The gate is rectangular, not circular.
	AssociationGatePx float64
}

// DefaultConfig returns the calibration used by the stock camera setup.
func DefaultConfig() Config {
	return Config{
		DetectionIntervalMs:  33,
		PositionHistory:      15,
		ObjectTimeoutMs:      1000,
		PixelToMeter:         0.015,
		MinMovementPx:        2,
		MaxSpeedKMH:          30,
		SpeedSmoothingWindow: 3,
		AssociationGatePx:    50,
	}
}
