// Package notify dispatches alert commands when tracked objects change action.
package notify

import "encoding/json"

// Event is the payload sent to an alert command on its stdin when a tracked
// object transitions into the action an alert rule is bound to.
type Event struct {
	TrackID   string  `json:"trackId"`
	ClassName string  `json:"className"`
	Action    string  `json:"action"`
	SpeedKMH  float64 `json:"speedKmh"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	AtMs      int64   `json:"atMs"`
}

// Response is what an alert command writes to its stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
