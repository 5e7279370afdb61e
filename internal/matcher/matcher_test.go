/*
Package matcher tests cover scoring bounds, categorization, reasoning, and
the learning adjustment against a real SQLite store.
*/
package matcher

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
	"github.com/hoangnm/skill-advisor/internal/storage"
)

// newTestStore creates an initialized SQLite store in a temp directory.
func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store := storage.NewStorageAt(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

var frontendSkill = Skill{
	Name:        "frontend-helper",
	Description: "Optimize react component rendering and frontend performance",
	Category:    "frontend",
	Tags:        []string{"react", "performance", "css"},
}

var unrelatedSkill = Skill{
	Name:        "db-migrator",
	Description: "Generate database migration scripts",
	Category:    "database",
	Tags:        []string{"sql", "migration"},
}

// TestScoreBounds verifies scores stay within [0,1] across varied inputs.
func TestScoreBounds(t *testing.T) {
	m := New(DefaultConfig(), nil)

	contexts := []analyzer.Context{
		analyzer.Analyze("optimize my React app for better performance"),
		analyzer.Analyze("fix the race condition in the event-loop handler"),
		analyzer.Analyze(""),
		{
			Keywords:       []string{"react", "react", "react"},
			TechnicalTerms: []string{"memory leak"},
			Intent:         analyzer.IntentOptimize,
			Domains:        []string{"frontend", "performance"},
			ActionVerbs:    []string{"optimize", "fix", "improve"},
		},
	}

	for _, ctx := range contexts {
		for _, skill := range []Skill{frontendSkill, unrelatedSkill, {}} {
			score := m.Score(ctx, skill)
			if score < 0 || score > 1 {
				t.Errorf("Score out of bounds: %f for skill %q", score, skill.Name)
			}
		}
	}
}

// TestScoreEmptyContext verifies empty keyword/domain/term sets contribute
// zero without a division fault.
func TestScoreEmptyContext(t *testing.T) {
	m := New(DefaultConfig(), nil)

	score := m.Score(analyzer.Context{Intent: analyzer.IntentGeneral}, frontendSkill)
	if score != 0 {
		t.Errorf("Expected zero score for empty context, got %f", score)
	}
}

// TestScoreMissingDescriptorFields verifies malformed skills degrade to zero
// contribution from the missing field, not a failure.
func TestScoreMissingDescriptorFields(t *testing.T) {
	m := New(DefaultConfig(), nil)
	ctx := analyzer.Analyze("optimize my React app for better performance")

	bare := Skill{Name: "bare"}
	score := m.Score(ctx, bare)
	if score < 0 || score > 1 {
		t.Errorf("Score out of bounds for bare skill: %f", score)
	}
}

// TestScoreRelevance verifies a related skill outscores an unrelated one.
func TestScoreRelevance(t *testing.T) {
	m := New(DefaultConfig(), nil)
	ctx := analyzer.Analyze("optimize my React app for better performance")

	related := m.Score(ctx, frontendSkill)
	unrelated := m.Score(ctx, unrelatedSkill)

	if related <= unrelated {
		t.Errorf("Expected related skill to outscore unrelated: %f vs %f", related, unrelated)
	}
}

// TestMatchThresholdFilter verifies matches below the suggestion threshold
// are dropped.
func TestMatchThresholdFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LearningEnabled = false
	m := New(cfg, nil)

	ctx := analyzer.Analyze("optimize my React app for better performance")
	matches, err := m.Match(ctx, []Skill{frontendSkill, unrelatedSkill})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	for _, match := range matches {
		if match.Confidence < cfg.SuggestionThreshold {
			t.Errorf("Match %q below threshold: %f", match.SkillName, match.Confidence)
		}
		if match.SkillName == "db-migrator" {
			t.Errorf("Unrelated skill should not clear the threshold")
		}
	}
}

// TestMatchTruncation verifies MaxSuggestions caps the result.
func TestMatchTruncation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LearningEnabled = false
	cfg.MaxSuggestions = 2
	cfg.SuggestionThreshold = 0.0
	m := New(cfg, nil)

	ctx := analyzer.Analyze("optimize my React app for better performance")
	skills := []Skill{
		frontendSkill,
		{Name: "a", Description: "react performance work", Tags: []string{"react"}},
		{Name: "b", Description: "frontend optimization", Category: "frontend"},
		unrelatedSkill,
	}

	matches, err := m.Match(ctx, skills)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) > 2 {
		t.Errorf("Expected at most 2 matches, got %d", len(matches))
	}

	// Sorted descending.
	for i := 1; i < len(matches); i++ {
		if matches[i].Confidence > matches[i-1].Confidence {
			t.Errorf("Matches not sorted descending: %v", matches)
		}
	}
}

// TestCategorizePartition verifies the partitions are disjoint and their
// union equals the qualifying set.
func TestCategorizePartition(t *testing.T) {
	m := New(DefaultConfig(), nil)

	matches := []Match{
		{SkillName: "a", Confidence: 0.92},
		{SkillName: "b", Confidence: 0.85},
		{SkillName: "c", Confidence: 0.70},
		{SkillName: "d", Confidence: 0.60},
	}

	auto, suggestions := m.Categorize(matches)

	if len(auto)+len(suggestions) != len(matches) {
		t.Errorf("Partition not exhaustive: %d + %d != %d", len(auto), len(suggestions), len(matches))
	}

	seen := map[string]bool{}
	for _, match := range append(append([]Match{}, auto...), suggestions...) {
		if seen[match.SkillName] {
			t.Errorf("Skill %q in both partitions", match.SkillName)
		}
		seen[match.SkillName] = true
	}

	// 0.92 and the boundary value 0.85 auto-invoke under default thresholds.
	if len(auto) != 2 {
		t.Errorf("Expected 2 auto-invoke matches, got %d", len(auto))
	}
	for _, match := range auto {
		if match.Confidence < 0.85 {
			t.Errorf("Auto match below auto threshold: %f", match.Confidence)
		}
	}
	for _, match := range suggestions {
		if match.Confidence >= 0.85 {
			t.Errorf("Suggestion at or above auto threshold: %f", match.Confidence)
		}
	}
}

// TestLearningAdjustmentNeverDecreases verifies the multiplier is always at
// least 1.
func TestLearningAdjustmentNeverDecreases(t *testing.T) {
	store := newTestStore(t)

	// A pattern with zero success rate: boost factor 1 + 0*0.2 = 1.
	failed := storage.Pattern{
		Key:         "failing pattern",
		Keywords:    []string{"react", "performance"},
		Skills:      []string{"frontend-helper"},
		SuccessRate: 0.0,
		LastUsed:    time.Now(),
	}
	if err := store.LearnPattern(failed); err != nil {
		t.Fatalf("LearnPattern failed: %v", err)
	}

	cfg := DefaultConfig()
	m := New(cfg, store)

	ctx := analyzer.Analyze("optimize my React app for better performance")
	before := m.Score(ctx, frontendSkill)

	matches, err := m.Match(ctx, []Skill{frontendSkill})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Confidence < before {
		t.Errorf("Learning adjustment decreased score: %f -> %f", before, matches[0].Confidence)
	}
}

// TestLearningAdjustmentBoost verifies a successful pattern raises confidence
// and appends a historical reason.
func TestLearningAdjustmentBoost(t *testing.T) {
	store := newTestStore(t)

	pattern := storage.Pattern{
		Key:         "optimize my React app",
		Keywords:    []string{"react", "performance", "optimize"},
		Skills:      []string{"frontend-helper"},
		SuccessRate: 1.0,
		LastUsed:    time.Now(),
	}
	if err := store.LearnPattern(pattern); err != nil {
		t.Fatalf("LearnPattern failed: %v", err)
	}

	cfg := DefaultConfig()
	m := New(cfg, store)

	ctx := analyzer.Analyze("optimize my React app for better performance")
	base := m.Score(ctx, frontendSkill)

	matches, err := m.Match(ctx, []Skill{frontendSkill})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	boosted := matches[0].Confidence
	wantBoost := base * 1.2
	if wantBoost > 1.0 {
		wantBoost = 1.0
	}
	if boosted < wantBoost-0.0001 || boosted > wantBoost+0.0001 {
		t.Errorf("Expected boosted confidence %f, got %f", wantBoost, boosted)
	}

	foundReason := false
	for _, reason := range matches[0].Reasons {
		if strings.Contains(reason, "Historically successful") {
			foundReason = true
		}
	}
	if !foundReason {
		t.Errorf("Expected historical success reason in %v", matches[0].Reasons)
	}
}

// TestReasoningContent verifies the ordered reason structure.
func TestReasoningContent(t *testing.T) {
	m := New(DefaultConfig(), nil)
	ctx := analyzer.Analyze("optimize my React app for better performance")

	reasons := m.reasoning(ctx, frontendSkill, 0.91)

	if len(reasons) == 0 {
		t.Fatal("Expected reasons, got none")
	}

	joined := strings.Join(reasons, "\n")
	if !strings.Contains(joined, "Matched keywords:") {
		t.Errorf("Expected matched-keywords reason in %v", reasons)
	}
	if !strings.Contains(joined, "Relevant domains:") {
		t.Errorf("Expected domain reason in %v", reasons)
	}
	if !strings.Contains(joined, "Aligns with optimize intent") {
		t.Errorf("Expected intent reason in %v", reasons)
	}
	if reasons[len(reasons)-1] != "High confidence match" {
		t.Errorf("Expected high-confidence qualifier last, got %v", reasons)
	}
}

// TestReasoningQualifierTiers verifies the confidence qualifier boundaries.
func TestReasoningQualifierTiers(t *testing.T) {
	m := New(DefaultConfig(), nil)
	ctx := analyzer.Context{Intent: analyzer.IntentGeneral}

	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "High confidence match"},
		{0.80, "Strong match"},
		{0.65, "Moderate match"},
	}

	for _, tt := range tests {
		reasons := m.reasoning(ctx, Skill{Name: "x"}, tt.score)
		if len(reasons) != 1 || reasons[0] != tt.want {
			t.Errorf("Score %.2f: expected [%s], got %v", tt.score, tt.want, reasons)
		}
	}
}
