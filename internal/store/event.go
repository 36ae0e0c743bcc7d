package store

import "database/sql"

// TrackEvent records an action transition observed on a track during a
// session: the moment a tracked object started sitting, walking, running
// and so on.
type TrackEvent struct {
	ID        int64
	SessionID string
	TrackID   string
	ClassName string
	Action    string
	SpeedKMH  float64
	X         float64
	Y         float64
	AtMs      int64
}

// TrackEventRepository provides operations for track events.
type TrackEventRepository struct {
	db *sql.DB
}

// TrackEvents returns the track event repository for this store.
func (s *Store) TrackEvents() *TrackEventRepository {
	return &TrackEventRepository{db: s.db}
}

// Record inserts a new track event.
func (r *TrackEventRepository) Record(ev *TrackEvent) error {
	result, err := r.db.Exec(
		`INSERT INTO track_events (session_id, track_id, class_name, action, speed_kmh, x, y, at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.TrackID, ev.ClassName, ev.Action, ev.SpeedKMH, ev.X, ev.Y, ev.AtMs,
	)
	if err != nil {
		return err
	}

	ev.ID, err = result.LastInsertId()
	return err
}

// ListBySession returns all events for a session in chronological order.
func (r *TrackEventRepository) ListBySession(sessionID string) ([]*TrackEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, track_id, class_name, action, speed_kmh, x, y, at_ms
		 FROM track_events WHERE session_id = ? ORDER BY at_ms, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*TrackEvent
	for rows.Next() {
		ev := &TrackEvent{}
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.TrackID, &ev.ClassName, &ev.Action,
			&ev.SpeedKMH, &ev.X, &ev.Y, &ev.AtMs); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// ListByTrack returns all events for a track id across sessions, in
// chronological order.
func (r *TrackEventRepository) ListByTrack(trackID string) ([]*TrackEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, track_id, class_name, action, speed_kmh, x, y, at_ms
		 FROM track_events WHERE track_id = ? ORDER BY at_ms, id`,
		trackID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*TrackEvent
	for rows.Next() {
		ev := &TrackEvent{}
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.TrackID, &ev.ClassName, &ev.Action,
			&ev.SpeedKMH, &ev.X, &ev.Y, &ev.AtMs); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
