package matcher

import (
	"strings"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
)

// Sub-score weights. The weighted sum is clipped to [0,1].
const (
	keywordWeight   = 0.40
	domainWeight    = 0.25
	intentWeight    = 0.20
	technicalWeight = 0.15
)

// Per-hit contributions inside the sub-scores.
const (
	keywordDescriptionHit = 1.0
	keywordTagHit         = 0.5
	domainCategoryHit     = 1.5
	domainTagHit          = 1.0
	intentKeywordHit      = 0.2
	intentVerbHit         = 0.15
	technicalDescHit      = 1.0
	technicalNameHit      = 0.5
)

// Score computes the weighted match score between a context and a skill.
// Missing descriptor fields contribute zero rather than failing.
func (m *Matcher) Score(ctx analyzer.Context, skill Skill) float64 {
	desc := strings.ToLower(skill.Description)
	name := strings.ToLower(skill.Name)
	category := strings.ToLower(skill.Category)
	tags := lowerAll(skill.Tags)

	score := keywordWeight*keywordScore(ctx.Keywords, desc, tags) +
		domainWeight*domainScore(ctx.Domains, category, tags) +
		intentWeight*intentScore(ctx.Intent, ctx.ActionVerbs, desc) +
		technicalWeight*technicalScore(ctx.TechnicalTerms, desc, name)

	return clip01(score)
}

// keywordScore awards 1 per keyword found in the description, falling back
// to 0.5 for a tag hit, normalized by keyword count.
func keywordScore(keywords []string, desc string, tags []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	total := 0.0
	for _, kw := range keywords {
		switch {
		case strings.Contains(desc, kw):
			total += keywordDescriptionHit
		case anyContains(tags, kw):
			total += keywordTagHit
		}
	}

	return clip01(total / float64(len(keywords)))
}

// domainScore awards 1.5 per domain found in the category, falling back to 1
// for a tag hit, normalized by domain count.
func domainScore(domains []string, category string, tags []string) float64 {
	if len(domains) == 0 {
		return 0
	}

	total := 0.0
	for _, domain := range domains {
		switch {
		case category != "" && strings.Contains(category, domain):
			total += domainCategoryHit
		case anyContains(tags, domain):
			total += domainTagHit
		}
	}

	return clip01(total / float64(len(domains)))
}

// intentScore awards 0.2 per intent keyword and 0.15 per context action verb
// found in the description, clipped to 1. The general intent has no keyword
// set, so only action verbs contribute.
func intentScore(intent analyzer.Intent, verbs []string, desc string) float64 {
	total := 0.0

	for _, kw := range intentKeywords[intent] {
		if strings.Contains(desc, kw) {
			total += intentKeywordHit
		}
	}
	for _, verb := range verbs {
		if strings.Contains(desc, verb) {
			total += intentVerbHit
		}
	}

	return clip01(total)
}

// technicalScore awards 1 per technical term found in the description,
// falling back to 0.5 for a skill-name hit, normalized by term count.
func technicalScore(terms []string, desc, name string) float64 {
	if len(terms) == 0 {
		return 0
	}

	total := 0.0
	for _, term := range terms {
		switch {
		case strings.Contains(desc, term):
			total += technicalDescHit
		case strings.Contains(name, term):
			total += technicalNameHit
		}
	}

	return clip01(total / float64(len(terms)))
}

// intentKeywords maps each intent to description keywords that signal
// alignment. Intents without an entry (including general) score zero from
// keywords.
var intentKeywords = map[analyzer.Intent][]string{
	analyzer.IntentFixBug:        {"debug", "fix", "troubleshoot", "diagnos", "error", "bug"},
	analyzer.IntentCreateFeature: {"creat", "build", "implement", "generat", "scaffold"},
	analyzer.IntentOptimize:      {"optimiz", "performance", "speed", "efficien", "profil"},
	analyzer.IntentTesting:       {"test", "coverage", "assert", "mock", "verif"},
	analyzer.IntentDeployment:    {"deploy", "release", "ship", "publish", "pipeline"},
	analyzer.IntentRefactor:      {"refactor", "restructur", "clean", "simplif"},
	analyzer.IntentMigration:     {"migrat", "upgrad", "convert", "port"},
	analyzer.IntentSecurity:      {"secur", "vulnerab", "encrypt", "audit", "auth"},
	analyzer.IntentLearning:      {"explain", "teach", "document", "guide", "tutorial"},
	analyzer.IntentArchitecture:  {"architect", "design", "structur", "pattern", "model"},
}

// lowerAll lower-cases a string slice.
func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

// anyContains reports whether any candidate contains the substring.
func anyContains(candidates []string, sub string) bool {
	for _, c := range candidates {
		if strings.Contains(c, sub) {
			return true
		}
	}
	return false
}

// clip01 clips a score to the [0,1] range.
func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
