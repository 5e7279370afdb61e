/*
Package analyzer extracts structured context from free-text task descriptions.

The analyzer is stateless and deterministic: the same input text always yields
the same keywords, technical terms, intent, complexity, domains, and action
verbs. All extraction is rule-driven from the fixed tables in tables.go; no
model inference and no I/O.
*/
package analyzer

import (
	"math"
	"sort"
	"strings"
)

// Intent classifies what the user is trying to accomplish.
type Intent string

// Recognized intents. DetectIntent returns the first matching rule, so the
// declaration order in intentRules is part of the contract.
const (
	IntentFixBug        Intent = "fix_bug"
	IntentCreateFeature Intent = "create_feature"
	IntentOptimize      Intent = "optimize"
	IntentTesting       Intent = "testing"
	IntentDeployment    Intent = "deployment"
	IntentRefactor      Intent = "refactor"
	IntentMigration     Intent = "migration"
	IntentSecurity      Intent = "security"
	IntentLearning      Intent = "learning"
	IntentArchitecture  Intent = "architecture"
	IntentGeneral       Intent = "general"
)

// Complexity estimates how involved the described task is.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// maxKeywords bounds the relevance-ranked keyword list.
const maxKeywords = 15

// Context is the structured result of analyzing one text.
type Context struct {
	// Keywords are the top tokens ranked by relevance (TF-IDF), most
	// relevant first.
	Keywords []string `json:"keywords"`

	// TechnicalTerms are matched technical phrases plus hyphenated tokens.
	TechnicalTerms []string `json:"technicalTerms"`

	// Intent is the detected task intent, or "general".
	Intent Intent `json:"intent"`

	// Complexity is the estimated task complexity.
	Complexity Complexity `json:"complexity"`

	// Domains are the detected technology domains, in table order.
	Domains []string `json:"domains"`

	// ActionVerbs are recognized verbs from the action vocabulary.
	ActionVerbs []string `json:"actionVerbs"`
}

// Analyze extracts a full context from the given text. Empty or
// whitespace-only input yields an empty context with intent "general" and
// complexity "low" rather than an error.
func Analyze(text string) Context {
	tokens := Tokenize(text)
	domains := DetectDomains(tokens)

	return Context{
		Keywords:       ExtractKeywords(tokens),
		TechnicalTerms: ExtractTechnicalTerms(tokens),
		Intent:         DetectIntent(text),
		Complexity:     AssessComplexity(tokens, domains),
		Domains:        domains,
		ActionVerbs:    ExtractActionVerbs(tokens),
	}
}

// Tokenize lower-cases the text, splits on word boundaries, and drops stop
// words, tokens of length <= 2, and tokens that are not [a-z0-9-]+.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	parts := wordSplitPattern.Split(lowered, -1)

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) <= 2 {
			continue
		}
		if stopWords[part] {
			continue
		}
		if !tokenPattern.MatchString(part) {
			continue
		}
		tokens = append(tokens, part)
	}

	return tokens
}

// ExtractKeywords ranks tokens by TF-IDF, treating the token sequence itself
// as a single-document corpus, and returns the top 15 by descending score.
// Ties preserve first-appearance order.
func ExtractKeywords(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{}
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	total := float64(len(tokens))
	scores := make(map[string]float64, len(counts))
	for tok, count := range counts {
		tf := float64(count) / total
		idf := math.Log(total/float64(count)) + 1
		scores[tok] = tf * idf
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// ExtractTechnicalTerms matches known multi-word technical phrases against
// the joined token text and adds any individual token containing a hyphen.
// Hyphenation is the only compound form that survives Tokenize: snake_case
// words are filtered there, so only "-" is checked here.
// The result is deduplicated, preserving match order.
func ExtractTechnicalTerms(tokens []string) []string {
	joined := strings.Join(tokens, " ")

	terms := []string{}
	seen := make(map[string]bool)

	for _, phrase := range technicalPhrases {
		if strings.Contains(joined, phrase) && !seen[phrase] {
			seen[phrase] = true
			terms = append(terms, phrase)
		}
	}

	for _, tok := range tokens {
		if !strings.Contains(tok, "-") {
			continue
		}
		if !seen[tok] {
			seen[tok] = true
			terms = append(terms, tok)
		}
	}

	return terms
}

// DetectIntent evaluates the ordered intent rules against the text and
// returns the label of the first rule with a word-boundary match, or
// "general" if none match.
func DetectIntent(text string) Intent {
	lowered := strings.ToLower(text)
	for _, rule := range intentRules {
		if rule.pattern.MatchString(lowered) {
			return rule.intent
		}
	}
	return IntentGeneral
}

// AssessComplexity scores keyword-tier hits plus token-count and domain-count
// bonuses, then maps the score to low/medium/high.
func AssessComplexity(tokens []string, domains []string) Complexity {
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	score := 0
	for _, kw := range complexityHigh {
		if tokenSet[kw] {
			score += 3
		}
	}
	for _, kw := range complexityMedium {
		if tokenSet[kw] {
			score += 2
		}
	}
	for _, kw := range complexityLow {
		if tokenSet[kw] {
			score++
		}
	}

	switch {
	case len(tokens) > 50:
		score += 2
	case len(tokens) > 20:
		score++
	}

	switch {
	case len(domains) > 2:
		score += 2
	case len(domains) > 1:
		score++
	}

	switch {
	case score >= 6:
		return ComplexityHigh
	case score >= 3:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// DetectDomains returns every domain whose keyword list intersects the token
// set, in table declaration order. A single hit is enough to include the
// domain.
func DetectDomains(tokens []string) []string {
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	domains := []string{}
	for _, rule := range domainRules {
		for _, kw := range rule.keywords {
			if tokenSet[kw] {
				domains = append(domains, rule.domain)
				break
			}
		}
	}

	return domains
}

// ExtractActionVerbs filters tokens against the fixed action-verb vocabulary,
// deduplicated in first-appearance order.
func ExtractActionVerbs(tokens []string) []string {
	verbs := []string{}
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if actionVerbSet[tok] && !seen[tok] {
			seen[tok] = true
			verbs = append(verbs, tok)
		}
	}
	return verbs
}

// Combine merges multiple contexts into one: set fields are unioned in
// first-appearance order, intent comes from the first context, and
// complexity is the maximum severity across all inputs.
func Combine(contexts []Context) Context {
	if len(contexts) == 0 {
		return Context{
			Keywords:       []string{},
			TechnicalTerms: []string{},
			Intent:         IntentGeneral,
			Complexity:     ComplexityLow,
			Domains:        []string{},
			ActionVerbs:    []string{},
		}
	}

	combined := Context{
		Keywords:       unionStrings(contexts, func(c Context) []string { return c.Keywords }),
		TechnicalTerms: unionStrings(contexts, func(c Context) []string { return c.TechnicalTerms }),
		Intent:         contexts[0].Intent,
		Complexity:     ComplexityLow,
		Domains:        unionStrings(contexts, func(c Context) []string { return c.Domains }),
		ActionVerbs:    unionStrings(contexts, func(c Context) []string { return c.ActionVerbs }),
	}

	for _, c := range contexts {
		if complexityRank(c.Complexity) > complexityRank(combined.Complexity) {
			combined.Complexity = c.Complexity
		}
	}

	return combined
}

// unionStrings collects a deduplicated union of one field across contexts.
func unionStrings(contexts []Context, field func(Context) []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, c := range contexts {
		for _, s := range field(c) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// complexityRank orders complexities for max comparison.
func complexityRank(c Complexity) int {
	switch c {
	case ComplexityHigh:
		return 2
	case ComplexityMedium:
		return 1
	default:
		return 0
	}
}
