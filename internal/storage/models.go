/*
Package storage provides data models for invocation history and learning.

These models represent recorded skill invocations, learned prompt patterns,
keyword-to-skill weights, and cached skill metadata.
*/
package storage

import "time"

// Invocation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
	OutcomeUnknown = "unknown"
)

// Invocation types.
const (
	InvocationAuto      = "auto"
	InvocationSuggested = "suggested"
)

// patternKeyLength is how many characters of the originating prompt form a
// pattern key. Truncation collisions are accepted: prompts sharing a prefix
// are treated as the same pattern.
const patternKeyLength = 100

// Invocation represents one recorded instance of a skill being matched for a
// prompt. Rows are uniquely keyed by (timestamp, skill name); a repeat write
// at the same timestamp for the same skill overwrites.
type Invocation struct {
	// ID is a stable unique identifier (UUID) for feedback targeting.
	ID string `json:"id"`

	// Timestamp is when the match was produced.
	Timestamp time.Time `json:"timestamp"`

	// Prompt is the originating task description.
	Prompt string `json:"prompt"`

	// Rationale is the optional secondary rationale text.
	Rationale string `json:"rationale,omitempty"`

	// Keywords are the context keywords extracted from the prompt.
	Keywords []string `json:"keywords"`

	// SkillName is the matched skill.
	SkillName string `json:"skillName"`

	// Confidence is the match confidence score in [0,1].
	Confidence float64 `json:"confidence"`

	// InvocationType is "auto" or "suggested".
	InvocationType string `json:"invocationType"`

	// Outcome is "success", "failure", "partial", or "unknown".
	Outcome string `json:"outcome"`

	// Feedback is optional free-text feedback.
	Feedback string `json:"feedback,omitempty"`
}

// Pattern is a historically observed (prompt-prefix, keywords, skills)
// association with a learned success rate.
type Pattern struct {
	// Key is the first 100 characters of the originating prompt.
	Key string `json:"key"`

	// Keywords associated with the pattern.
	Keywords []string `json:"keywords"`

	// Skills associated with the pattern.
	Skills []string `json:"skills"`

	// SuccessRate is the running weighted average in [0,1].
	SuccessRate float64 `json:"successRate"`

	// InvocationCount is how many samples the rate averages over.
	InvocationCount int `json:"invocationCount"`

	// LastUsed is when the pattern was last updated.
	LastUsed time.Time `json:"lastUsed"`
}

// PatternKey derives a pattern key from a prompt: the first 100 characters,
// rune-safe.
func PatternKey(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > patternKeyLength {
		runes = runes[:patternKeyLength]
	}
	return string(runes)
}

// SkillWeight is an aggregated learned weight for one skill.
type SkillWeight struct {
	// SkillName is the skill the weight applies to.
	SkillName string `json:"skillName"`

	// Weight is the summed keyword weight.
	Weight float64 `json:"weight"`
}

// SkillRecord is a cached skill-metadata row with usage counters.
type SkillRecord struct {
	// Name is the unique skill name.
	Name string `json:"name"`

	// Category is the optional skill category.
	Category string `json:"category,omitempty"`

	// Tags is the ordered tag list, round-tripped without reordering.
	Tags []string `json:"tags"`

	// Description is the skill description text.
	Description string `json:"description,omitempty"`

	// InvocationCount is the total number of recorded invocations.
	InvocationCount int `json:"invocationCount"`

	// SuccessCount is the number of invocations with a success outcome.
	SuccessCount int `json:"successCount"`

	// LastInvoked is when the skill was last invoked (zero if never).
	LastInvoked time.Time `json:"lastInvoked,omitempty"`
}

// SkillMetrics aggregates invocation history for one skill.
type SkillMetrics struct {
	// Count is the total number of invocations.
	Count int `json:"count"`

	// SuccessCount is the number of successful invocations.
	SuccessCount int `json:"successCount"`

	// MeanConfidence is the average confidence across invocations.
	MeanConfidence float64 `json:"meanConfidence"`

	// LastInvoked is the most recent invocation timestamp.
	LastInvoked time.Time `json:"lastInvoked"`
}
