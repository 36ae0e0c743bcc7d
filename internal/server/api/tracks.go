package api

import (
	"net/http"

	"github.com/adikms/kinetrack/internal/track"
)

// TrackSource provides the current track snapshot, typically the engine.
type TrackSource interface {
	Snapshot() []track.Object
	SessionID() string
}

// TrackHandler handles HTTP requests for the live track snapshot.
type TrackHandler struct {
	source TrackSource
}

// NewTrackHandler creates a new TrackHandler reading from the given source.
func NewTrackHandler(source TrackSource) *TrackHandler {
	return &TrackHandler{source: source}
}

type tracksResponse struct {
	SessionID string         `json:"sessionId,omitempty"`
	Tracks    []track.Object `json:"tracks"`
}

// ServeHTTP handles GET /api/tracks and returns the current track set.
func (h *TrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	objects := h.source.Snapshot()
	if objects == nil {
		objects = []track.Object{}
	}

	writeJSON(w, http.StatusOK, tracksResponse{
		SessionID: h.source.SessionID(),
		Tracks:    objects,
	})
}
