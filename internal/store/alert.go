package store

import (
	"database/sql"
	"errors"
	"time"
)

// AlertRule binds a (class, action) pair to an external command.
// When a tracked object of the class transitions into the action, the
// notifier executes the command.
type AlertRule struct {
	ID        string
	ClassName string
	Action    string
	Command   string
	Enabled   bool
	CreatedAt time.Time
}

// AlertRuleRepository provides CRUD operations for alert rules.
type AlertRuleRepository struct {
	db *sql.DB
}

// AlertRules returns the alert rule repository for this store.
func (s *Store) AlertRules() *AlertRuleRepository {
	return &AlertRuleRepository{db: s.db}
}

// Create inserts a new alert rule.
func (r *AlertRuleRepository) Create(rule *AlertRule) error {
	rule.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO alert_rules (id, class_name, action, command, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.ClassName, rule.Action, rule.Command, rule.Enabled, rule.CreatedAt,
	)
	return err
}

// GetByID retrieves an alert rule by its ID.
func (r *AlertRuleRepository) GetByID(id string) (*AlertRule, error) {
	rule := &AlertRule{}

	err := r.db.QueryRow(
		`SELECT id, class_name, action, command, enabled, created_at
		 FROM alert_rules WHERE id = ?`,
		id,
	).Scan(&rule.ID, &rule.ClassName, &rule.Action, &rule.Command, &rule.Enabled, &rule.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return rule, nil
}

// List returns all alert rules.
func (r *AlertRuleRepository) List() ([]*AlertRule, error) {
	rows, err := r.db.Query(
		`SELECT id, class_name, action, command, enabled, created_at
		 FROM alert_rules ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*AlertRule
	for rows.Next() {
		rule := &AlertRule{}
		if err := rows.Scan(&rule.ID, &rule.ClassName, &rule.Action, &rule.Command,
			&rule.Enabled, &rule.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// ListEnabled returns only the enabled alert rules.
func (r *AlertRuleRepository) ListEnabled() ([]*AlertRule, error) {
	rows, err := r.db.Query(
		`SELECT id, class_name, action, command, enabled, created_at
		 FROM alert_rules WHERE enabled = 1 ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*AlertRule
	for rows.Next() {
		rule := &AlertRule{}
		if err := rows.Scan(&rule.ID, &rule.ClassName, &rule.Action, &rule.Command,
			&rule.Enabled, &rule.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// Update modifies an existing alert rule.
// Returns ErrNotFound if the rule does not exist.
func (r *AlertRuleRepository) Update(rule *AlertRule) error {
	result, err := r.db.Exec(
		`UPDATE alert_rules SET class_name = ?, action = ?, command = ?, enabled = ? WHERE id = ?`,
		rule.ClassName, rule.Action, rule.Command, rule.Enabled, rule.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an alert rule.
// Returns ErrNotFound if the rule does not exist.
func (r *AlertRuleRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM alert_rules WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
