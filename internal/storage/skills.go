package storage

import (
	"encoding/json"
	"fmt"
	"log"
)

// CacheSkillMetadata upserts a skill-metadata row. For an existing skill the
// descriptive fields are refreshed while invocation and success counters are
// preserved. New skills start with zeroed counters.
func (s *SQLiteStorage) CacheSkillMetadata(rec SkillRecord) error {
	if err := s.ready(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to serialize tags: %w", err)
	}

	var lastInvoked any
	if !rec.LastInvoked.IsZero() {
		lastInvoked = millis(rec.LastInvoked)
	}

	_, err = s.db.Exec(`
		INSERT INTO skill_cache (skill_name, category, tags, description, invocation_count, success_count, last_invoked)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(skill_name) DO UPDATE SET
			category = excluded.category,
			tags = excluded.tags,
			description = excluded.description
	`,
		rec.Name,
		rec.Category,
		string(tagsJSON),
		rec.Description,
		rec.InvocationCount,
		rec.SuccessCount,
		lastInvoked,
	)
	if err != nil {
		return fmt.Errorf("failed to cache skill metadata: %w", err)
	}

	return nil
}

// GetAllSkills retrieves the full skill metadata cache, ordered by skill
// name. Tags round-trip in their stored order.
func (s *SQLiteStorage) GetAllSkills() ([]SkillRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT skill_name, category, tags, description, invocation_count, success_count, last_invoked
		FROM skill_cache
		ORDER BY skill_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill cache: %w", err)
	}
	defer rows.Close()

	skills := []SkillRecord{}
	for rows.Next() {
		var rec SkillRecord
		var tagsJSON string
		var lastInvoked *int64

		if err := rows.Scan(
			&rec.Name,
			&rec.Category,
			&tagsJSON,
			&rec.Description,
			&rec.InvocationCount,
			&rec.SuccessCount,
			&lastInvoked,
		); err != nil {
			log.Printf("Warning: failed to scan skill row: %v", err)
			continue
		}

		if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
			log.Printf("Warning: failed to parse skill tags: %v", err)
			rec.Tags = []string{}
		}
		if lastInvoked != nil {
			rec.LastInvoked = fromMillis(*lastInvoked)
		}

		skills = append(skills, rec)
	}

	return skills, rows.Err()
}
