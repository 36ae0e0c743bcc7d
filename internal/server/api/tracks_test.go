package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adikms/kinetrack/internal/track"
)

// fakeTrackSource is a static TrackSource for handler tests.
type fakeTrackSource struct {
	objects   []track.Object
	sessionID string
}

func (f *fakeTrackSource) Snapshot() []track.Object { return f.objects }
func (f *fakeTrackSource) SessionID() string        { return f.sessionID }

func TestTrackHandler_Get(t *testing.T) {
	source := &fakeTrackSource{
		sessionID: "session-1",
		objects: []track.Object{
			{ID: "track-a", ClassName: "person", Speed: 5, Action: track.ActionWalking},
		},
	}
	handler := NewTrackHandler(source)

	req := httptest.NewRequest(http.MethodGet, "/api/tracks", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp tracksResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionID != "session-1" {
		t.Errorf("SessionID mismatch: got %q, want %q", resp.SessionID, "session-1")
	}
	if len(resp.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(resp.Tracks))
	}
	if resp.Tracks[0].ID != "track-a" || resp.Tracks[0].Action != track.ActionWalking {
		t.Errorf("unexpected track: %+v", resp.Tracks[0])
	}
}

func TestTrackHandler_EmptySnapshot(t *testing.T) {
	handler := NewTrackHandler(&fakeTrackSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/tracks", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp tracksResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Tracks == nil {
		t.Error("tracks should encode as an empty array, not null")
	}
}

func TestTrackHandler_MethodNotAllowed(t *testing.T) {
	handler := NewTrackHandler(&fakeTrackSource{})

	req := httptest.NewRequest(http.MethodPost, "/api/tracks", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
