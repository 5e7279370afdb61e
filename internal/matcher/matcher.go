/*
Package matcher scores candidate skills against an analyzed context.

Scoring is a weighted combination of keyword, domain, intent, and technical
sub-scores, each clipped to [0,1]. Matches above the suggestion threshold are
ranked, optionally boosted by historically successful patterns from storage,
and partitioned into auto-invoke and advisory suggestions.
*/
package matcher

import (
	"sort"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
	"github.com/hoangnm/skill-advisor/internal/storage"
)

// Config controls thresholds and learning behavior.
type Config struct {
	// AutoInvokeThreshold is the minimum confidence for auto-invocation.
	AutoInvokeThreshold float64 `json:"autoInvokeThreshold"`

	// SuggestionThreshold is the minimum confidence for any suggestion.
	SuggestionThreshold float64 `json:"suggestionThreshold"`

	// MaxSuggestions caps the number of returned matches.
	MaxSuggestions int `json:"maxSuggestions"`

	// LearningEnabled toggles the historical-success adjustment.
	LearningEnabled bool `json:"learningEnabled"`

	// ContextWindow bounds how many learned patterns are consulted during
	// the learning adjustment.
	ContextWindow int `json:"contextWindow"`
}

// DefaultConfig returns the standard matcher configuration.
func DefaultConfig() Config {
	return Config{
		AutoInvokeThreshold: 0.85,
		SuggestionThreshold: 0.60,
		MaxSuggestions:      5,
		LearningEnabled:     true,
		ContextWindow:       20,
	}
}

// Skill is a candidate skill descriptor. The matcher only reads it; the
// catalog that supplies descriptors owns them.
type Skill struct {
	// Name uniquely identifies the skill.
	Name string `json:"name"`

	// Description is the skill's description text.
	Description string `json:"description"`

	// Category is the optional skill category.
	Category string `json:"category,omitempty"`

	// Tags is the optional tag list.
	Tags []string `json:"tags,omitempty"`
}

// Match is one scored skill with human-readable reasoning.
type Match struct {
	// SkillName is the matched skill.
	SkillName string `json:"skillName"`

	// Confidence is the match score in [0,1].
	Confidence float64 `json:"confidence"`

	// Reasons explains the match, in presentation order.
	Reasons []string `json:"reasons"`

	// Category echoes the skill's category.
	Category string `json:"category,omitempty"`

	// Tags echoes the skill's tags.
	Tags []string `json:"tags,omitempty"`

	// Description echoes the skill's description.
	Description string `json:"description,omitempty"`

	// InvocationID is the stable identifier assigned when the match is
	// persisted, used for precise feedback targeting. Empty until recorded.
	InvocationID string `json:"invocationId,omitempty"`
}

// Matcher scores skills against contexts. The storage handle is only used
// when learning is enabled and may be nil otherwise.
type Matcher struct {
	config Config
	store  storage.Storage
}

// New creates a matcher with the given configuration and storage.
func New(config Config, store storage.Storage) *Matcher {
	return &Matcher{config: config, store: store}
}

// Config returns the matcher's configuration.
func (m *Matcher) Config() Config {
	return m.config
}

// Match scores every candidate, retains those at or above the suggestion
// threshold, applies the learning adjustment when enabled, and returns the
// top matches sorted by descending confidence.
func (m *Matcher) Match(ctx analyzer.Context, skills []Skill) ([]Match, error) {
	matches := make([]Match, 0, len(skills))

	for _, skill := range skills {
		score := m.Score(ctx, skill)
		if score < m.config.SuggestionThreshold {
			continue
		}

		matches = append(matches, Match{
			SkillName:   skill.Name,
			Confidence:  score,
			Reasons:     m.reasoning(ctx, skill, score),
			Category:    skill.Category,
			Tags:        skill.Tags,
			Description: skill.Description,
		})
	}

	sortMatches(matches)

	if m.config.LearningEnabled && m.store != nil {
		adjusted, err := m.applyLearningAdjustment(ctx, matches)
		if err != nil {
			return nil, err
		}
		matches = adjusted
	}

	if len(matches) > m.config.MaxSuggestions {
		matches = matches[:m.config.MaxSuggestions]
	}

	return matches, nil
}

// Categorize partitions matches into auto-invoke (confidence at or above the
// auto-invoke threshold) and suggestions (everything else above the
// suggestion threshold). The partitions are disjoint and exhaustive over the
// input.
func (m *Matcher) Categorize(matches []Match) (autoInvoke, suggestions []Match) {
	autoInvoke = []Match{}
	suggestions = []Match{}

	for _, match := range matches {
		if match.Confidence >= m.config.AutoInvokeThreshold {
			autoInvoke = append(autoInvoke, match)
		} else {
			suggestions = append(suggestions, match)
		}
	}

	return autoInvoke, suggestions
}

// sortMatches orders by descending confidence, breaking ties by skill name
// for determinism.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].SkillName < matches[j].SkillName
	})
}
