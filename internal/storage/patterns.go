package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// LearnPattern inserts or updates a learned pattern. For an existing key the
// success rate is folded into the running weighted average
//
//	newRate = (oldRate*oldCount + sampleRate) / (oldCount+1)
//
// and the invocation count is incremented. Keyword and skill sets are merged.
// The read-modify-write runs inside a transaction so concurrent writers on
// the same connection cannot lose updates.
func (s *SQLiteStorage) LearnPattern(p Pattern) error {
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

	var (
		oldKeywords string
		oldSkills   string
		oldRate     float64
		oldCount    int
	)
	err = tx.QueryRow(`
		SELECT keywords, skills, success_rate, invocation_count
		FROM patterns
		WHERE pattern_key = ?
	`, p.Key).Scan(&oldKeywords, &oldSkills, &oldRate, &oldCount)

	switch {
	case err == sql.ErrNoRows:
		keywords, skills, merr := marshalPatternSets(p.Keywords, p.Skills)
		if merr != nil {
			return merr
		}
		if _, err := tx.Exec(`
			INSERT INTO patterns (pattern_key, keywords, skills, success_rate, invocation_count, last_used)
			VALUES (?, ?, ?, ?, 1, ?)
		`, p.Key, keywords, skills, clamp01(p.SuccessRate), millis(p.LastUsed)); err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}

	case err != nil:
		return fmt.Errorf("failed to load pattern: %w", err)

	default:
		newRate := (oldRate*float64(oldCount) + clamp01(p.SuccessRate)) / float64(oldCount+1)

		mergedKeywords := mergeSerializedSet(oldKeywords, p.Keywords)
		mergedSkills := mergeSerializedSet(oldSkills, p.Skills)
		keywords, skills, merr := marshalPatternSets(mergedKeywords, mergedSkills)
		if merr != nil {
			return merr
		}

		if _, err := tx.Exec(`
			UPDATE patterns
			SET keywords = ?, skills = ?, success_rate = ?, invocation_count = ?, last_used = ?
			WHERE pattern_key = ?
		`, keywords, skills, newRate, oldCount+1, millis(p.LastUsed), p.Key); err != nil {
			return fmt.Errorf("failed to update pattern: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pattern: %w", err)
	}

	return nil
}

// FindMatchingPatterns returns patterns whose serialized keyword field
// contains any supplied keyword as a substring, ordered by success rate then
// invocation count, both descending.
func (s *SQLiteStorage) FindMatchingPatterns(keywords []string, limit int) ([]Pattern, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if len(keywords) == 0 {
		return []Pattern{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conditions := make([]string, 0, len(keywords))
	args := make([]any, 0, len(keywords)+1)
	for _, kw := range keywords {
		conditions = append(conditions, `keywords LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(kw)+"%")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT pattern_key, keywords, skills, success_rate, invocation_count, last_used
		FROM patterns
		WHERE %s
		ORDER BY success_rate DESC, invocation_count DESC
		LIMIT ?
	`, strings.Join(conditions, " OR "))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	patterns := []Pattern{}
	for rows.Next() {
		var p Pattern
		var keywordsJSON, skillsJSON string
		var lastUsed int64

		if err := rows.Scan(&p.Key, &keywordsJSON, &skillsJSON, &p.SuccessRate, &p.InvocationCount, &lastUsed); err != nil {
			log.Printf("Warning: failed to scan pattern row: %v", err)
			continue
		}

		if err := json.Unmarshal([]byte(keywordsJSON), &p.Keywords); err != nil {
			log.Printf("Warning: failed to parse pattern keywords: %v", err)
			continue
		}
		if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
			log.Printf("Warning: failed to parse pattern skills: %v", err)
			continue
		}

		p.LastUsed = fromMillis(lastUsed)
		patterns = append(patterns, p)
	}

	return patterns, rows.Err()
}

// marshalPatternSets serializes the keyword and skill sets for storage.
func marshalPatternSets(keywords, skills []string) (string, string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	if skills == nil {
		skills = []string{}
	}

	kw, err := json.Marshal(keywords)
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize pattern keywords: %w", err)
	}
	sk, err := json.Marshal(skills)
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize pattern skills: %w", err)
	}
	return string(kw), string(sk), nil
}

// mergeSerializedSet unions a stored JSON string list with new members,
// preserving stored order first.
func mergeSerializedSet(stored string, extra []string) []string {
	var merged []string
	if err := json.Unmarshal([]byte(stored), &merged); err != nil {
		merged = []string{}
	}

	seen := make(map[string]bool, len(merged))
	for _, v := range merged {
		seen[v] = true
	}
	for _, v := range extra {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}

	return merged
}

// escapeLike escapes SQL LIKE wildcards in user-derived keywords.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// clamp01 clips a value to the [0,1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
