package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per engine run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,

		// Track events table - action transitions observed during a session
		`CREATE TABLE IF NOT EXISTS track_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			track_id TEXT NOT NULL,
			class_name TEXT NOT NULL,
			action TEXT NOT NULL,
			speed_kmh REAL NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			at_ms INTEGER NOT NULL
		)`,

		// Alert rules table - (class, action) -> command bindings
		`CREATE TABLE IF NOT EXISTS alert_rules (
			id TEXT PRIMARY KEY,
			class_name TEXT NOT NULL,
			action TEXT NOT NULL,
			command TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_track_events_session_id ON track_events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_track_events_track_id ON track_events(track_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_rules_class_action ON alert_rules(class_name, action)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
