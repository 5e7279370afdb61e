package analyzer

import "regexp"

// Rule tables are the analyzer's entire knowledge base. All matching behavior
// is driven by these declarative lists; changing membership changes behavior,
// so the tables are pinned by unit tests.

// stopWords are tokens dropped during tokenization.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "him": true, "his": true, "how": true, "its": true,
	"may": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "way": true, "who": true, "did": true, "get": true,
	"use": true, "that": true, "this": true, "with": true, "from": true,
	"have": true, "will": true, "what": true, "when": true, "where": true,
	"which": true, "would": true, "could": true, "should": true,
	"there": true, "their": true, "about": true, "into": true,
	"some": true, "them": true, "then": true, "than": true, "were": true,
	"been": true, "being": true, "they": true, "your": true, "also": true,
	"more": true, "very": true, "just": true, "only": true, "over": true,
	"such": true, "make": true, "like": true, "want": true, "need": true,
	"please": true, "help": true,
}

// tokenPattern is the shape every surviving token must have.
var tokenPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// wordSplitPattern splits raw text on word boundaries.
var wordSplitPattern = regexp.MustCompile(`[^a-z0-9_-]+`)

// technicalPhrases are multi-word technical phrases matched against the
// joined token text.
var technicalPhrases = []string{
	"machine learning",
	"deep learning",
	"neural network",
	"rest api",
	"unit test",
	"integration test",
	"continuous integration",
	"continuous deployment",
	"load balancing",
	"rate limiting",
	"message queue",
	"event driven",
	"dependency injection",
	"design pattern",
	"code review",
	"pull request",
	"garbage collection",
	"memory leak",
	"race condition",
	"connection pool",
}

// intentRule pairs an intent label with its trigger keywords. Rules are
// evaluated in declaration order and the first match wins, so overlapping
// vocabularies (e.g. "fix" vs "optimize") resolve deterministically.
type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

var intentRules = []intentRule{
	{IntentFixBug, wordGroup("fix", "bug", "error", "issue", "broken", "crash", "debug", "fail", "failing")},
	{IntentCreateFeature, wordGroup("create", "add", "implement", "build", "feature", "develop")},
	{IntentOptimize, wordGroup("optimize", "performance", "slow", "faster", "speed", "improve", "efficient")},
	{IntentTesting, wordGroup("test", "testing", "coverage", "unit", "e2e", "assertion")},
	{IntentDeployment, wordGroup("deploy", "deployment", "release", "ship", "publish", "rollout")},
	{IntentRefactor, wordGroup("refactor", "restructure", "cleanup", "simplify", "reorganize")},
	{IntentMigration, wordGroup("migrate", "migration", "upgrade", "port", "convert")},
	{IntentSecurity, wordGroup("security", "vulnerability", "secure", "encrypt", "auth", "exploit")},
	{IntentLearning, wordGroup("learn", "understand", "explain", "tutorial", "documentation")},
	{IntentArchitecture, wordGroup("architecture", "design", "structure", "pattern", "system")},
}

// wordGroup compiles an alternation of keywords anchored on word boundaries.
func wordGroup(words ...string) *regexp.Regexp {
	pattern := `\b(`
	for i, w := range words {
		if i > 0 {
			pattern += "|"
		}
		pattern += w
	}
	pattern += `)\b`
	return regexp.MustCompile(pattern)
}

// domainRule pairs a domain label with its trigger keywords. Domains are
// reported in declaration order.
type domainRule struct {
	domain   string
	keywords []string
}

var domainRules = []domainRule{
	{"frontend", []string{"react", "vue", "angular", "svelte", "css", "html", "frontend", "component", "dom", "browser"}},
	{"backend", []string{"api", "server", "backend", "endpoint", "rest", "grpc", "graphql", "microservice", "handler"}},
	{"database", []string{"database", "sql", "postgres", "mysql", "mongodb", "redis", "query", "schema", "sqlite"}},
	{"devops", []string{"docker", "kubernetes", "deploy", "deployment", "terraform", "pipeline", "helm", "cloud", "aws"}},
	{"testing", []string{"test", "testing", "coverage", "mock", "assert", "e2e", "regression"}},
	{"security", []string{"security", "auth", "authentication", "encryption", "vulnerability", "oauth", "token"}},
	{"ai", []string{"ai", "ml", "model", "llm", "embedding", "neural", "training", "inference"}},
	{"blockchain", []string{"blockchain", "solidity", "ethereum", "wallet", "crypto", "defi", "contract"}},
	{"performance", []string{"performance", "optimize", "latency", "cache", "caching", "profiling", "benchmark", "throughput"}},
	{"monitoring", []string{"monitoring", "metrics", "logging", "observability", "tracing", "alert", "prometheus", "grafana"}},
}

// Complexity tiers. Each hit contributes its tier weight to the complexity
// score (high=3, medium=2, low=1).
var (
	complexityHigh = []string{
		"distributed", "microservices", "scalability", "architecture",
		"concurrency", "kubernetes", "orchestration", "sharding",
	}
	complexityMedium = []string{
		"refactor", "integration", "migration", "optimize", "async",
		"authentication", "deployment", "caching",
	}
	complexityLow = []string{
		"fix", "update", "change", "rename", "typo", "tweak", "adjust",
	}
)

// actionVerbs is the fixed verb vocabulary recognized in task descriptions.
var actionVerbs = []string{
	"create", "build", "implement", "add", "fix", "debug", "update",
	"remove", "delete", "refactor", "optimize", "deploy", "test",
	"migrate", "install", "configure", "analyze", "review", "write",
	"design", "improve", "integrate", "monitor", "scale", "secure",
	"document", "validate",
}

var actionVerbSet = func() map[string]bool {
	set := make(map[string]bool, len(actionVerbs))
	for _, v := range actionVerbs {
		set[v] = true
	}
	return set
}()
