package matcher

import (
	"fmt"
	"strings"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
)

// Confidence qualifier tiers for reasoning strings.
const (
	highConfidenceTier = 0.9
	strongMatchTier    = 0.75
	moderateMatchTier  = 0.6
)

// maxReasonKeywords caps how many matched keywords a reason lists.
const maxReasonKeywords = 3

// reasoning builds the ordered human-readable reason list for a match:
// matched keywords (up to 3), matched domains, an intent-alignment note, and
// a confidence qualifier.
func (m *Matcher) reasoning(ctx analyzer.Context, skill Skill, score float64) []string {
	desc := strings.ToLower(skill.Description)
	category := strings.ToLower(skill.Category)
	tags := lowerAll(skill.Tags)

	reasons := []string{}

	matched := []string{}
	for _, kw := range ctx.Keywords {
		if strings.Contains(desc, kw) || anyContains(tags, kw) {
			matched = append(matched, kw)
			if len(matched) == maxReasonKeywords {
				break
			}
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Matched keywords: %s", strings.Join(matched, ", ")))
	}

	matchedDomains := []string{}
	for _, domain := range ctx.Domains {
		if (category != "" && strings.Contains(category, domain)) || anyContains(tags, domain) {
			matchedDomains = append(matchedDomains, domain)
		}
	}
	if len(matchedDomains) > 0 {
		reasons = append(reasons, fmt.Sprintf("Relevant domains: %s", strings.Join(matchedDomains, ", ")))
	}

	if ctx.Intent != analyzer.IntentGeneral {
		reasons = append(reasons, fmt.Sprintf("Aligns with %s intent", ctx.Intent))
	}

	switch {
	case score >= highConfidenceTier:
		reasons = append(reasons, "High confidence match")
	case score >= strongMatchTier:
		reasons = append(reasons, "Strong match")
	case score >= moderateMatchTier:
		reasons = append(reasons, "Moderate match")
	}

	return reasons
}
