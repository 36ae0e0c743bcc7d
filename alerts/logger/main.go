// Package main provides an example alert command that appends each event to
// a log file. Point an alert rule's command at the built binary to keep a
// plain-text record of action transitions.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Event is the payload the engine writes to stdin.
type Event struct {
	TrackID   string  `json:"trackId"`
	ClassName string  `json:"className"`
	Action    string  `json:"action"`
	SpeedKMH  float64 `json:"speedKmh"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	AtMs      int64   `json:"atMs"`
}

// Response is what the engine expects on stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var ev Event
	if err := json.NewDecoder(os.Stdin).Decode(&ev); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode event: %v", err)})
		return
	}

	if err := appendToLog(&ev); err != nil {
		writeResponse(Response{Error: err.Error()})
		return
	}

	writeResponse(Response{Success: true})
}

// appendToLog writes one line per event to ~/.kinetrack/alerts.log.
func appendToLog(ev *Event) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".kinetrack")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logDir, "alerts.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	stamp := time.UnixMilli(ev.AtMs).Format(time.RFC3339)
	_, err = fmt.Fprintf(f, "%s %s %s is %s at (%.0f, %.0f) %.0f km/h\n",
		stamp, ev.ClassName, ev.TrackID, ev.Action, ev.X, ev.Y, ev.SpeedKMH)
	if err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}

	return nil
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
