package storage

import (
	"fmt"
	"log"
	"strings"
)

// UpdateKeywordWeight upserts a (keyword, skill) weight. The new weight
// overwrites any prior value; weights are not accumulated. Downstream
// ranking in GetSkillsForKeywords depends on this overwrite behavior.
func (s *SQLiteStorage) UpdateKeywordWeight(keyword, skillName string, weight float64) error {
	if err := s.ready(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO keyword_weights (keyword, skill_name, weight)
		VALUES (?, ?, ?)
		ON CONFLICT(keyword, skill_name) DO UPDATE SET weight = excluded.weight
	`, keyword, skillName, clamp01(weight))
	if err != nil {
		return fmt.Errorf("failed to update keyword weight: %w", err)
	}

	return nil
}

// GetSkillsForKeywords sums stored weights per skill across the supplied
// keywords, grouped by skill and ordered by total weight descending.
func (s *SQLiteStorage) GetSkillsForKeywords(keywords []string, limit int) ([]SkillWeight, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if len(keywords) == 0 {
		return []SkillWeight{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keywords)), ", ")
	args := make([]any, 0, len(keywords)+1)
	for _, kw := range keywords {
		args = append(args, kw)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT skill_name, SUM(weight) AS total
		FROM keyword_weights
		WHERE keyword IN (%s)
		GROUP BY skill_name
		ORDER BY total DESC
		LIMIT ?
	`, placeholders)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword weights: %w", err)
	}
	defer rows.Close()

	weights := []SkillWeight{}
	for rows.Next() {
		var w SkillWeight
		if err := rows.Scan(&w.SkillName, &w.Weight); err != nil {
			log.Printf("Warning: failed to scan weight row: %v", err)
			continue
		}
		weights = append(weights, w)
	}

	return weights, rows.Err()
}
