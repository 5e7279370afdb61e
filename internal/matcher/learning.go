package matcher

import (
	"fmt"
	"math"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
)

// learningBoostFactor scales how much historical success can raise a score:
// confidence is multiplied by (1 + meanRate*0.2), capped at 1.0. The
// multiplier is always >= 1, so the adjustment never lowers a score.
const learningBoostFactor = 0.2

// applyLearningAdjustment boosts matches whose skill appears in historically
// successful patterns for the context keywords. The pattern lookup is bounded
// by the configured context window. Matches are re-sorted and re-truncated
// after adjustment.
func (m *Matcher) applyLearningAdjustment(ctx analyzer.Context, matches []Match) ([]Match, error) {
	if len(matches) == 0 || len(ctx.Keywords) == 0 {
		return matches, nil
	}

	patterns, err := m.store.FindMatchingPatterns(ctx.Keywords, m.config.ContextWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch learned patterns: %w", err)
	}
	if len(patterns) == 0 {
		return matches, nil
	}

	for i := range matches {
		sum := 0.0
		count := 0
		for _, p := range patterns {
			for _, skillName := range p.Skills {
				if skillName == matches[i].SkillName {
					sum += p.SuccessRate
					count++
					break
				}
			}
		}
		if count == 0 {
			continue
		}

		meanRate := sum / float64(count)
		boosted := math.Min(matches[i].Confidence*(1+meanRate*learningBoostFactor), 1.0)
		matches[i].Confidence = boosted
		matches[i].Reasons = append(matches[i].Reasons,
			fmt.Sprintf("Historically successful (%.0f%% success rate)", meanRate*100))
	}

	sortMatches(matches)

	if len(matches) > m.config.MaxSuggestions {
		matches = matches[:m.config.MaxSuggestions]
	}

	return matches, nil
}
