/*
Package advisor coordinates the recommendation pipeline.

An Advisor owns the analyzer, matcher, persistent storage, configuration, and
the in-memory candidate skill set. Each Recommend call analyzes the input,
scores the candidates, builds a reasoning summary, and (when learning is
enabled) persists every returned match and its keyword weights so future
matches improve.

The candidate set is an instance field, not ambient state: separate Advisor
instances are fully isolated.
*/
package advisor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
	"github.com/hoangnm/skill-advisor/internal/matcher"
	"github.com/hoangnm/skill-advisor/internal/storage"
)

// statisticsSampleSize bounds the recent-invocation sample used by
// Statistics.
const statisticsSampleSize = 50

// topSkillCount bounds how many top skills Statistics reports.
const topSkillCount = 5

// Config is the advisor configuration surface.
type Config struct {
	matcher.Config

	// EnableAutoInvoke controls whether auto-invoke matches are returned.
	// When disabled the auto-invoke list is always empty; qualifying
	// matches are still recorded with the auto invocation type.
	EnableAutoInvoke bool `json:"enableAutoInvoke"`
}

// DefaultConfig returns the standard advisor configuration.
func DefaultConfig() Config {
	return Config{
		Config:           matcher.DefaultConfig(),
		EnableAutoInvoke: true,
	}
}

// Result is the outcome of one Recommend call.
type Result struct {
	// Context is the analyzed (and possibly combined) context.
	Context analyzer.Context `json:"context"`

	// AutoInvoke are matches at or above the auto-invoke threshold, empty
	// when auto-invocation is disabled.
	AutoInvoke []matcher.Match `json:"autoInvoke"`

	// Suggestions are advisory matches below the auto-invoke threshold.
	Suggestions []matcher.Match `json:"suggestions"`

	// Reasoning is a multi-line human-readable summary.
	Reasoning string `json:"reasoning"`

	// Timestamp is the decision time in unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Statistics summarizes recent advisor activity.
type Statistics struct {
	// SampleSize is the number of recent invocations examined.
	SampleSize int `json:"sampleSize"`

	// SuccessRate is successes divided by the sample size, or 0 for an
	// empty sample.
	SuccessRate float64 `json:"successRate"`

	// TopSkills are the most-invoked skills from the metadata cache.
	TopSkills []storage.SkillRecord `json:"topSkills"`
}

// Advisor orchestrates analysis, matching, and learning per request.
type Advisor struct {
	store   storage.Storage
	matcher *matcher.Matcher
	config  Config

	mu     sync.RWMutex
	skills []matcher.Skill
}

// New creates an advisor over the given storage.
func New(store storage.Storage, config Config) *Advisor {
	return &Advisor{
		store:   store,
		matcher: matcher.New(config.Config, store),
		config:  config,
	}
}

// Config returns the current configuration.
func (a *Advisor) Config() Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// UpdateConfig replaces the configuration, rebuilding the matcher.
func (a *Advisor) UpdateConfig(config Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = config
	a.matcher = matcher.New(config.Config, a.store)
}

// UpdateSkills replaces the candidate skill set and upserts metadata-cache
// entries. Newly seen skills start with zeroed counters; existing counters
// are preserved.
func (a *Advisor) UpdateSkills(skills []matcher.Skill) error {
	a.mu.Lock()
	a.skills = append([]matcher.Skill(nil), skills...)
	a.mu.Unlock()

	for _, skill := range skills {
		rec := storage.SkillRecord{
			Name:        skill.Name,
			Category:    skill.Category,
			Tags:        skill.Tags,
			Description: skill.Description,
		}
		if err := a.store.CacheSkillMetadata(rec); err != nil {
			return fmt.Errorf("failed to cache skill %q: %w", skill.Name, err)
		}
	}

	return nil
}

// Skills returns a copy of the current candidate skill set.
func (a *Advisor) Skills() []matcher.Skill {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]matcher.Skill(nil), a.skills...)
}

// Recommend runs the full pipeline for a prompt and optional rationale text.
func (a *Advisor) Recommend(prompt, rationale string) (*Result, error) {
	ctx := analyzer.Analyze(prompt)
	if strings.TrimSpace(rationale) != "" {
		ctx = analyzer.Combine([]analyzer.Context{ctx, analyzer.Analyze(rationale)})
	}

	a.mu.RLock()
	skills := a.skills
	m := a.matcher
	config := a.config
	a.mu.RUnlock()

	matches, err := m.Match(ctx, skills)
	if err != nil {
		return nil, err
	}

	// Timestamps are stored at millisecond resolution; truncate so the
	// returned value matches what persistence will key on.
	now := time.UnixMilli(time.Now().UnixMilli())

	// Persist before categorizing so assigned invocation IDs propagate into
	// the returned partitions.
	if config.LearningEnabled {
		if err := a.persistMatches(ctx, prompt, rationale, matches, now, config.AutoInvokeThreshold); err != nil {
			return nil, err
		}
	}

	autoInvoke, suggestions := m.Categorize(matches)

	result := &Result{
		Context:     ctx,
		AutoInvoke:  autoInvoke,
		Suggestions: suggestions,
		Reasoning:   buildReasoningSummary(ctx, autoInvoke, suggestions),
		Timestamp:   now.UnixMilli(),
	}

	if !config.EnableAutoInvoke {
		result.AutoInvoke = []matcher.Match{}
	}

	return result, nil
}

// persistMatches records every returned match as an invocation with outcome
// unknown and upserts a keyword weight for every (keyword, skill) pair. The
// invocation type derives from whether the score cleared the auto-invoke
// threshold. Assigned invocation IDs are written back into the matches.
func (a *Advisor) persistMatches(ctx analyzer.Context, prompt, rationale string, matches []matcher.Match, now time.Time, autoThreshold float64) error {
	for i := range matches {
		invocationType := storage.InvocationSuggested
		if matches[i].Confidence >= autoThreshold {
			invocationType = storage.InvocationAuto
		}

		id := uuid.NewString()
		matches[i].InvocationID = id

		inv := storage.Invocation{
			ID:             id,
			Timestamp:      now,
			Prompt:         prompt,
			Rationale:      rationale,
			Keywords:       ctx.Keywords,
			SkillName:      matches[i].SkillName,
			Confidence:     matches[i].Confidence,
			InvocationType: invocationType,
			Outcome:        storage.OutcomeUnknown,
		}
		if err := a.store.RecordInvocation(inv); err != nil {
			return fmt.Errorf("failed to record invocation: %w", err)
		}

		for _, kw := range ctx.Keywords {
			if err := a.store.UpdateKeywordWeight(kw, matches[i].SkillName, matches[i].Confidence); err != nil {
				return fmt.Errorf("failed to update keyword weight: %w", err)
			}
		}
	}

	return nil
}

// buildReasoningSummary produces the multi-line human-readable summary.
func buildReasoningSummary(ctx analyzer.Context, autoInvoke, suggestions []matcher.Match) string {
	lines := []string{fmt.Sprintf("Detected intent: %s", ctx.Intent)}

	if len(ctx.Domains) > 0 {
		lines = append(lines, fmt.Sprintf("Domains: %s", strings.Join(ctx.Domains, ", ")))
	}
	if ctx.Complexity != analyzer.ComplexityLow {
		lines = append(lines, fmt.Sprintf("Complexity: %s", ctx.Complexity))
	}

	lines = append(lines, fmt.Sprintf("%d skills for auto-invocation, %d suggested",
		len(autoInvoke), len(suggestions)))

	return strings.Join(lines, "\n")
}

// outcomeRates maps feedback outcomes to pattern success-rate samples.
var outcomeRates = map[string]float64{
	storage.OutcomeSuccess: 1.0,
	storage.OutcomePartial: 0.5,
	storage.OutcomeFailure: 0.0,
}

// RecordFeedback attaches an outcome to the most recent invocation if its
// skill name matches, then folds the result into the learned pattern for the
// prompt. A missing or non-matching recent invocation is a silent no-op.
//
// The recency heuristic can attach feedback to the wrong invocation when one
// call matched several skills; RecordFeedbackByID is the precise variant.
func (a *Advisor) RecordFeedback(skillName, outcome, feedback string) error {
	recent, err := a.store.GetRecentInvocations(1)
	if err != nil {
		return err
	}
	if len(recent) == 0 || recent[0].SkillName != skillName {
		return nil
	}

	return a.applyFeedback(&recent[0], outcome, feedback)
}

// RecordFeedbackByID attaches an outcome to a specific invocation by the
// stable identifier returned from Recommend. An unknown ID is a silent
// no-op.
func (a *Advisor) RecordFeedbackByID(invocationID, outcome, feedback string) error {
	inv, err := a.store.GetInvocation(invocationID)
	if err != nil {
		return err
	}
	if inv == nil {
		return nil
	}

	return a.applyFeedback(inv, outcome, feedback)
}

// applyFeedback rewrites the invocation outcome and updates the learned
// pattern for the invocation's prompt. The outcome is validated before
// anything is written so an unrecognized value can never reach storage.
func (a *Advisor) applyFeedback(inv *storage.Invocation, outcome, feedback string) error {
	rate, ok := outcomeRates[outcome]
	if !ok {
		return fmt.Errorf("invalid outcome %q: must be %s, %s, or %s",
			outcome, storage.OutcomeSuccess, storage.OutcomeFailure, storage.OutcomePartial)
	}

	if err := a.store.UpdateInvocationOutcome(inv.ID, outcome, feedback); err != nil {
		return err
	}

	pattern := storage.Pattern{
		Key:         storage.PatternKey(inv.Prompt),
		Keywords:    inv.Keywords,
		Skills:      []string{inv.SkillName},
		SuccessRate: rate,
		LastUsed:    time.Now(),
	}

	return a.store.LearnPattern(pattern)
}

// Statistics computes the success rate over a bounded recent sample and the
// top skills by invocation count.
func (a *Advisor) Statistics() (*Statistics, error) {
	recent, err := a.store.GetRecentInvocations(statisticsSampleSize)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{SampleSize: len(recent), TopSkills: []storage.SkillRecord{}}

	if len(recent) > 0 {
		successes := 0
		for _, inv := range recent {
			if inv.Outcome == storage.OutcomeSuccess {
				successes++
			}
		}
		stats.SuccessRate = float64(successes) / float64(len(recent))
	}

	skills, err := a.store.GetAllSkills()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].InvocationCount > skills[j].InvocationCount
	})
	if len(skills) > topSkillCount {
		skills = skills[:topSkillCount]
	}
	stats.TopSkills = skills

	return stats, nil
}
