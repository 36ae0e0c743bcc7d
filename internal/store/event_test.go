package store

import "testing"

func TestTrackEventRepository_Record(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	repo := s.TrackEvents()
	ev := &TrackEvent{
		SessionID: "session-1",
		TrackID:   "track-a",
		ClassName: "person",
		Action:    "walking",
		SpeedKMH:  5,
		X:         120,
		Y:         240,
		AtMs:      1000,
	}

	if err := repo.Record(ev); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}
	if ev.ID == 0 {
		t.Error("ID should be set after record")
	}
}

func TestTrackEventRepository_ListBySession(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if _, err := s.Sessions().Start("session-2"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	repo := s.TrackEvents()
	events := []*TrackEvent{
		{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "standing", AtMs: 3000},
		{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "walking", SpeedKMH: 5, AtMs: 1000},
		{SessionID: "session-2", TrackID: "track-b", ClassName: "dog", Action: "running", SpeedKMH: 18, AtMs: 2000},
	}
	for _, ev := range events {
		if err := repo.Record(ev); err != nil {
			t.Fatalf("failed to record event: %v", err)
		}
	}

	listed, err := repo.ListBySession("session-1")
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 events for session-1, got %d", len(listed))
	}

	// Events come back in chronological order regardless of insert order
	if listed[0].Action != "walking" || listed[1].Action != "standing" {
		t.Errorf("events out of order: got [%s, %s]", listed[0].Action, listed[1].Action)
	}
}

func TestTrackEventRepository_ListByTrack(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	repo := s.TrackEvents()
	for _, ev := range []*TrackEvent{
		{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "walking", AtMs: 1000},
		{SessionID: "session-1", TrackID: "track-b", ClassName: "cat", Action: "sitting", AtMs: 1500},
		{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "running", AtMs: 2000},
	} {
		if err := repo.Record(ev); err != nil {
			t.Fatalf("failed to record event: %v", err)
		}
	}

	listed, err := repo.ListByTrack("track-a")
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 events for track-a, got %d", len(listed))
	}
	if listed[0].Action != "walking" || listed[1].Action != "running" {
		t.Errorf("events out of order: got [%s, %s]", listed[0].Action, listed[1].Action)
	}
}

func TestTrackEventRepository_SessionCascade(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Sessions().Start("session-1"); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	repo := s.TrackEvents()
	ev := &TrackEvent{SessionID: "session-1", TrackID: "track-a", ClassName: "person", Action: "walking", AtMs: 1000}
	if err := repo.Record(ev); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}

	if _, err := s.DB().Exec(`DELETE FROM sessions WHERE id = ?`, "session-1"); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}

	listed, err := repo.ListBySession("session-1")
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("events should be removed with their session, got %d", len(listed))
	}
}
