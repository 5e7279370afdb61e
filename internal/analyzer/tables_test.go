package analyzer

import "testing"

// All matching behavior is driven by the rule tables, so membership changes
// are behavior changes. These tests pin the table shapes and a sample of
// exact members to make edits deliberate.

// TestIntentRuleOrder pins the intent evaluation order.
func TestIntentRuleOrder(t *testing.T) {
	want := []Intent{
		IntentFixBug,
		IntentCreateFeature,
		IntentOptimize,
		IntentTesting,
		IntentDeployment,
		IntentRefactor,
		IntentMigration,
		IntentSecurity,
		IntentLearning,
		IntentArchitecture,
	}

	if len(intentRules) != len(want) {
		t.Fatalf("Expected %d intent rules, got %d", len(want), len(intentRules))
	}
	for i, rule := range intentRules {
		if rule.intent != want[i] {
			t.Errorf("Intent rule %d: expected %s, got %s", i, want[i], rule.intent)
		}
	}
}

// TestDomainRuleOrder pins the domain declaration order.
func TestDomainRuleOrder(t *testing.T) {
	want := []string{
		"frontend", "backend", "database", "devops", "testing",
		"security", "ai", "blockchain", "performance", "monitoring",
	}

	if len(domainRules) != len(want) {
		t.Fatalf("Expected %d domain rules, got %d", len(want), len(domainRules))
	}
	for i, rule := range domainRules {
		if rule.domain != want[i] {
			t.Errorf("Domain rule %d: expected %s, got %s", i, want[i], rule.domain)
		}
		if len(rule.keywords) == 0 {
			t.Errorf("Domain %s has no keywords", rule.domain)
		}
	}
}

// TestDomainKeywordSamples pins representative members per domain.
func TestDomainKeywordSamples(t *testing.T) {
	samples := map[string]string{
		"frontend":    "react",
		"backend":     "api",
		"database":    "sql",
		"devops":      "docker",
		"testing":     "test",
		"security":    "auth",
		"ai":          "llm",
		"blockchain":  "ethereum",
		"performance": "latency",
		"monitoring":  "prometheus",
	}

	for _, rule := range domainRules {
		want, ok := samples[rule.domain]
		if !ok {
			continue
		}
		found := false
		for _, kw := range rule.keywords {
			if kw == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Domain %s missing pinned keyword %q", rule.domain, want)
		}
	}
}

// TestStopWordSamples pins representative stop words.
func TestStopWordSamples(t *testing.T) {
	for _, w := range []string{"the", "and", "with", "would", "please"} {
		if !stopWords[w] {
			t.Errorf("Expected %q in stop-word set", w)
		}
	}
	for _, w := range []string{"react", "deploy", "cache"} {
		if stopWords[w] {
			t.Errorf("Did not expect %q in stop-word set", w)
		}
	}
}

// TestTechnicalPhraseSamples pins representative technical phrases.
func TestTechnicalPhraseSamples(t *testing.T) {
	want := map[string]bool{
		"race condition":   false,
		"memory leak":      false,
		"rest api":         false,
		"machine learning": false,
	}

	for _, phrase := range technicalPhrases {
		if _, ok := want[phrase]; ok {
			want[phrase] = true
		}
	}
	for phrase, found := range want {
		if !found {
			t.Errorf("Expected phrase %q in technical phrase table", phrase)
		}
	}
}

// TestActionVerbSamples pins representative action verbs.
func TestActionVerbSamples(t *testing.T) {
	for _, v := range []string{"create", "fix", "deploy", "refactor", "monitor"} {
		if !actionVerbSet[v] {
			t.Errorf("Expected verb %q in action-verb set", v)
		}
	}
}

// TestComplexityTiersDisjoint verifies no keyword appears in two tiers.
func TestComplexityTiersDisjoint(t *testing.T) {
	seen := map[string]string{}
	tiers := map[string][]string{
		"high":   complexityHigh,
		"medium": complexityMedium,
		"low":    complexityLow,
	}

	for tier, words := range tiers {
		for _, w := range words {
			if prev, ok := seen[w]; ok {
				t.Errorf("Keyword %q in both %s and %s tiers", w, prev, tier)
			}
			seen[w] = tier
		}
	}
}
