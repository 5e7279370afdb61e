/*
Package analyzer tests cover tokenization invariants, extraction behavior,
and context combination.
*/
package analyzer

import (
	"strings"
	"testing"
)

// TestTokenizeInvariants verifies every returned token matches the token
// shape, has length >= 3, and is not a stop word.
func TestTokenizeInvariants(t *testing.T) {
	inputs := []string{
		"Fix the memory leak in the HTTP server!",
		"optimize my React app for better performance",
		"  WEIRD   input...with,,punctuation?? and CAPS  ",
		"a an it x y z",
		"",
	}

	for _, input := range inputs {
		for _, tok := range Tokenize(input) {
			if !tokenPattern.MatchString(tok) {
				t.Errorf("token %q does not match [a-z0-9-]+", tok)
			}
			if len(tok) < 3 {
				t.Errorf("token %q shorter than 3 chars", tok)
			}
			if stopWords[tok] {
				t.Errorf("stop word %q survived tokenization", tok)
			}
		}
	}
}

// TestTokenizeEmpty verifies empty and whitespace-only inputs yield no tokens.
func TestTokenizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if tokens := Tokenize(input); len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", input, tokens)
		}
	}
}

// TestExtractKeywordsLimit verifies the keyword list is capped at 15.
func TestExtractKeywordsLimit(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
		"hotel", "india", "juliett", "kilo", "lima", "mike", "november",
		"oscar", "papa", "quebec", "romeo", "sierra", "tango",
	}
	keywords := ExtractKeywords(words)
	if len(keywords) != 15 {
		t.Errorf("Expected 15 keywords, got %d", len(keywords))
	}
}

// TestExtractKeywordsRanking verifies repeated tokens do not crowd out the
// result and ranking is deterministic.
func TestExtractKeywordsRanking(t *testing.T) {
	tokens := Tokenize("cache cache cache latency profiling")

	first := ExtractKeywords(tokens)
	second := ExtractKeywords(tokens)

	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("ExtractKeywords not deterministic: %v vs %v", first, second)
	}

	found := map[string]bool{}
	for _, kw := range first {
		found[kw] = true
	}
	for _, want := range []string{"cache", "latency", "profiling"} {
		if !found[want] {
			t.Errorf("Expected keyword %q in %v", want, first)
		}
	}
}

// TestExtractTechnicalTerms verifies phrase matching and hyphenated tokens.
func TestExtractTechnicalTerms(t *testing.T) {
	tokens := Tokenize("debug the race condition in the event-loop handler")
	terms := ExtractTechnicalTerms(tokens)

	found := map[string]bool{}
	for _, term := range terms {
		found[term] = true
	}

	if !found["race condition"] {
		t.Errorf("Expected phrase 'race condition' in %v", terms)
	}
	if !found["event-loop"] {
		t.Errorf("Expected hyphenated token 'event-loop' in %v", terms)
	}
}

// TestExtractTechnicalTermsHyphenOnly pins the compound-token rule: snake_case
// words never survive tokenization, so hyphenated tokens are the only compound
// form that can surface as a technical term.
func TestExtractTechnicalTermsHyphenOnly(t *testing.T) {
	tokens := Tokenize("profile the event-loop around user_repository writes")

	for _, tok := range tokens {
		if strings.Contains(tok, "_") {
			t.Errorf("Underscore token %q survived tokenization", tok)
		}
	}

	terms := ExtractTechnicalTerms(tokens)
	found := map[string]bool{}
	for _, term := range terms {
		found[term] = true
	}
	if !found["event-loop"] {
		t.Errorf("Expected 'event-loop' in %v", terms)
	}
	if found["user_repository"] {
		t.Errorf("snake_case term must not surface, got %v", terms)
	}
}

// TestDetectIntentOrder verifies first-match-wins ordering: text containing
// both fix and optimize vocabulary resolves to fix_bug.
func TestDetectIntentOrder(t *testing.T) {
	intent := DetectIntent("fix the bug and then optimize the query")
	if intent != IntentFixBug {
		t.Errorf("Expected fix_bug, got %s", intent)
	}
}

// TestDetectIntent verifies representative inputs per intent.
func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"fix the login crash", IntentFixBug},
		{"implement a new export feature", IntentCreateFeature},
		{"optimize my React app for better performance", IntentOptimize},
		{"increase unit test coverage", IntentTesting},
		{"deploy the release to production", IntentDeployment},
		{"refactor the payment module", IntentRefactor},
		{"migrate from mysql to postgres", IntentMigration},
		{"encrypt the session tokens", IntentSecurity},
		{"explain the event loop to me", IntentLearning},
		{"sketch the system architecture", IntentArchitecture},
		{"hello world", IntentGeneral},
		{"", IntentGeneral},
	}

	for _, tt := range tests {
		if got := DetectIntent(tt.text); got != tt.want {
			t.Errorf("DetectIntent(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

// TestAssessComplexity verifies the tier scoring boundaries.
func TestAssessComplexity(t *testing.T) {
	// Single low-tier keyword: score 1 -> low.
	low := AssessComplexity([]string{"fix", "typo"}, nil)
	if low != ComplexityLow {
		t.Errorf("Expected low, got %s", low)
	}

	// High-tier keyword (3) -> medium.
	medium := AssessComplexity([]string{"distributed", "cache"}, nil)
	if medium != ComplexityMedium {
		t.Errorf("Expected medium, got %s", medium)
	}

	// Two high-tier keywords (6) -> high.
	high := AssessComplexity([]string{"distributed", "kubernetes"}, nil)
	if high != ComplexityHigh {
		t.Errorf("Expected high, got %s", high)
	}
}

// TestAssessComplexityBonuses verifies token-count and domain-count bonuses.
func TestAssessComplexityBonuses(t *testing.T) {
	// 21 plain tokens (bonus 1) + 3 domains (bonus 2) = 3 -> medium.
	tokens := make([]string, 21)
	for i := range tokens {
		tokens[i] = "word"
	}
	domains := []string{"frontend", "backend", "database"}

	if got := AssessComplexity(tokens, domains); got != ComplexityMedium {
		t.Errorf("Expected medium from bonuses, got %s", got)
	}
}

// TestDetectDomains verifies membership and declaration-order output.
func TestDetectDomains(t *testing.T) {
	tokens := Tokenize("optimize my React app for better performance")
	domains := DetectDomains(tokens)

	found := map[string]bool{}
	for _, d := range domains {
		found[d] = true
	}
	if !found["frontend"] || !found["performance"] {
		t.Errorf("Expected frontend and performance in %v", domains)
	}

	// frontend is declared before performance.
	var frontendIdx, performanceIdx int
	for i, d := range domains {
		if d == "frontend" {
			frontendIdx = i
		}
		if d == "performance" {
			performanceIdx = i
		}
	}
	if frontendIdx > performanceIdx {
		t.Errorf("Expected declaration order, got %v", domains)
	}
}

// TestDetectDomainsIdempotent verifies identical token sequences always yield
// identical domain sets.
func TestDetectDomainsIdempotent(t *testing.T) {
	tokens := Tokenize("deploy the docker container and add prometheus metrics")

	first := DetectDomains(tokens)
	second := DetectDomains(tokens)

	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("DetectDomains not idempotent: %v vs %v", first, second)
	}
}

// TestExtractActionVerbs verifies vocabulary filtering and deduplication.
func TestExtractActionVerbs(t *testing.T) {
	tokens := Tokenize("create tests, create docs, deploy and monitor everything")
	verbs := ExtractActionVerbs(tokens)

	count := map[string]int{}
	for _, v := range verbs {
		count[v]++
	}

	if count["create"] != 1 {
		t.Errorf("Expected 'create' exactly once, got %v", verbs)
	}
	if count["deploy"] != 1 || count["monitor"] != 1 {
		t.Errorf("Expected deploy and monitor in %v", verbs)
	}
}

// TestAnalyzeEmptyInput verifies the empty-input contract: empty sets,
// general intent, low complexity, no error.
func TestAnalyzeEmptyInput(t *testing.T) {
	ctx := Analyze("   ")

	if len(ctx.Keywords) != 0 || len(ctx.Domains) != 0 || len(ctx.TechnicalTerms) != 0 {
		t.Errorf("Expected empty sets, got %+v", ctx)
	}
	if ctx.Intent != IntentGeneral {
		t.Errorf("Expected general intent, got %s", ctx.Intent)
	}
	if ctx.Complexity != ComplexityLow {
		t.Errorf("Expected low complexity, got %s", ctx.Complexity)
	}
}

// TestCombine verifies union semantics, first intent, and max complexity.
func TestCombine(t *testing.T) {
	a := Context{
		Keywords:    []string{"react", "render"},
		Intent:      IntentOptimize,
		Complexity:  ComplexityLow,
		Domains:     []string{"frontend"},
		ActionVerbs: []string{"optimize"},
	}
	b := Context{
		Keywords:    []string{"render", "cache"},
		Intent:      IntentFixBug,
		Complexity:  ComplexityHigh,
		Domains:     []string{"frontend", "performance"},
		ActionVerbs: []string{"fix"},
	}

	combined := Combine([]Context{a, b})

	if combined.Intent != IntentOptimize {
		t.Errorf("Expected first context's intent, got %s", combined.Intent)
	}
	if combined.Complexity != ComplexityHigh {
		t.Errorf("Expected max complexity high, got %s", combined.Complexity)
	}
	if len(combined.Keywords) != 3 {
		t.Errorf("Expected deduplicated union of 3 keywords, got %v", combined.Keywords)
	}
	if len(combined.Domains) != 2 {
		t.Errorf("Expected 2 domains, got %v", combined.Domains)
	}
}

// TestCombineEmpty verifies combining no contexts yields the neutral context.
func TestCombineEmpty(t *testing.T) {
	combined := Combine(nil)
	if combined.Intent != IntentGeneral || combined.Complexity != ComplexityLow {
		t.Errorf("Expected neutral context, got %+v", combined)
	}
}
