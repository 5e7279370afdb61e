package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
)

// RecordInvocation upserts an invocation keyed by (timestamp, skill name).
// A repeat write at the same timestamp for the same skill overwrites the
// existing row. The skill_cache usage counters are bumped in the same
// transaction so a partially written invocation is never observable.
func (s *SQLiteStorage) RecordInvocation(inv Invocation) error {
	if err := s.ready(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keywords, err := json.Marshal(inv.Keywords)
	if err != nil {
		return fmt.Errorf("failed to serialize keywords: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// An upsert that overwrites an existing row must not re-count the
	// invocation in the metadata cache.
	var exists bool
	err = tx.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM invocations WHERE timestamp = ? AND skill_name = ?)",
		millis(inv.Timestamp), inv.SkillName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for existing invocation: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO invocations
			(id, timestamp, prompt, rationale, keywords, skill_name, confidence, invocation_type, outcome, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(timestamp, skill_name) DO UPDATE SET
			id = excluded.id,
			prompt = excluded.prompt,
			rationale = excluded.rationale,
			keywords = excluded.keywords,
			confidence = excluded.confidence,
			invocation_type = excluded.invocation_type,
			outcome = excluded.outcome,
			feedback = excluded.feedback
	`,
		inv.ID,
		millis(inv.Timestamp),
		inv.Prompt,
		inv.Rationale,
		string(keywords),
		inv.SkillName,
		inv.Confidence,
		inv.InvocationType,
		inv.Outcome,
		inv.Feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}

	counterQuery := `
		UPDATE skill_cache
		SET invocation_count = invocation_count + 1, last_invoked = ?
		WHERE skill_name = ?
	`
	if exists {
		counterQuery = "UPDATE skill_cache SET last_invoked = ? WHERE skill_name = ?"
	}
	if _, err := tx.Exec(counterQuery, millis(inv.Timestamp), inv.SkillName); err != nil {
		return fmt.Errorf("failed to bump skill counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invocation: %w", err)
	}

	return nil
}

// GetInvocation retrieves an invocation by its ID. Returns (nil, nil) when no
// row exists.
func (s *SQLiteStorage) GetInvocation(id string) (*Invocation, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT id, timestamp, prompt, rationale, keywords, skill_name, confidence, invocation_type, outcome, feedback
		FROM invocations
		WHERE id = ?
	`, id)

	inv, err := scanInvocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invocation: %w", err)
	}
	return inv, nil
}

// GetRecentInvocations retrieves the most recent invocations, newest first.
func (s *SQLiteStorage) GetRecentInvocations(limit int) ([]Invocation, error) {
	return s.queryInvocations(`
		SELECT id, timestamp, prompt, rationale, keywords, skill_name, confidence, invocation_type, outcome, feedback
		FROM invocations
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
}

// GetRecentSuccesses retrieves the most recent invocations with a success
// outcome, newest first.
func (s *SQLiteStorage) GetRecentSuccesses(limit int) ([]Invocation, error) {
	return s.queryInvocations(`
		SELECT id, timestamp, prompt, rationale, keywords, skill_name, confidence, invocation_type, outcome, feedback
		FROM invocations
		WHERE outcome = 'success'
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
}

// UpdateInvocationOutcome rewrites the outcome and feedback of an invocation
// and, on success, bumps the skill's success counter.
func (s *SQLiteStorage) UpdateInvocationOutcome(id, outcome, feedback string) error {
	if err := s.ready(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var skillName string
	err = tx.QueryRow("SELECT skill_name FROM invocations WHERE id = ?", id).Scan(&skillName)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find invocation: %w", err)
	}

	if _, err := tx.Exec(
		"UPDATE invocations SET outcome = ?, feedback = ? WHERE id = ?",
		outcome, feedback, id,
	); err != nil {
		return fmt.Errorf("failed to update outcome: %w", err)
	}

	if outcome == OutcomeSuccess {
		if _, err := tx.Exec(
			"UPDATE skill_cache SET success_count = success_count + 1 WHERE skill_name = ?",
			skillName,
		); err != nil {
			return fmt.Errorf("failed to bump success counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit outcome update: %w", err)
	}

	return nil
}

// GetSkillMetrics aggregates invocation history for a skill.
func (s *SQLiteStorage) GetSkillMetrics(skillName string) (SkillMetrics, error) {
	if err := s.ready(); err != nil {
		return SkillMetrics{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(confidence), 0),
			COALESCE(MAX(timestamp), 0)
		FROM invocations
		WHERE skill_name = ?
	`, skillName)

	var metrics SkillMetrics
	var lastMillis int64
	if err := row.Scan(&metrics.Count, &metrics.SuccessCount, &metrics.MeanConfidence, &lastMillis); err != nil {
		return SkillMetrics{}, fmt.Errorf("failed to aggregate skill metrics: %w", err)
	}

	if lastMillis > 0 {
		metrics.LastInvoked = fromMillis(lastMillis)
	}

	return metrics, nil
}

// queryInvocations runs an invocation query with a single limit argument.
func (s *SQLiteStorage) queryInvocations(query string, limit int) ([]Invocation, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			log.Printf("Warning: failed to scan invocation row: %v", err)
			continue
		}
		invocations = append(invocations, *inv)
	}

	return invocations, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanInvocation scans one invocation row.
func scanInvocation(row rowScanner) (*Invocation, error) {
	var inv Invocation
	var ts int64
	var keywords string

	if err := row.Scan(
		&inv.ID,
		&ts,
		&inv.Prompt,
		&inv.Rationale,
		&keywords,
		&inv.SkillName,
		&inv.Confidence,
		&inv.InvocationType,
		&inv.Outcome,
		&inv.Feedback,
	); err != nil {
		return nil, err
	}

	inv.Timestamp = fromMillis(ts)
	if err := json.Unmarshal([]byte(keywords), &inv.Keywords); err != nil {
		return nil, fmt.Errorf("failed to parse keywords: %w", err)
	}

	return &inv, nil
}
