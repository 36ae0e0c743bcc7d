package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adikms/kinetrack/internal/store"
)

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if _, err := s.Sessions().Start("session-2"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(resp.Sessions))
	}
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if err := s.Sessions().End("session-1"); err != nil {
		t.Fatalf("failed to end session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "session-1" {
		t.Errorf("ID mismatch: got %q, want %q", resp.ID, "session-1")
	}
	if resp.EndedAt == "" {
		t.Error("ended session should have an ended_at timestamp")
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-session", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_ListEvents(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	events := []*store.TrackEvent{
		{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "walking", SpeedKMH: 5, AtMs: 1000},
		{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "running", SpeedKMH: 17, AtMs: 2000},
	}
	for _, ev := range events {
		if err := s.TrackEvents().Record(ev); err != nil {
			t.Fatalf("failed to record event: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-1/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Events))
	}
	if resp.Events[0].Action != "walking" || resp.Events[1].Action != "running" {
		t.Errorf("events out of order: %+v", resp.Events)
	}
}

func TestSessionHandler_ListEvents_SessionNotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-session/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
