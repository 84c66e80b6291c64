// Package intent evaluates how well a model recognizes user intent and
// the entities mentioned alongside it.
package intent

import (
	"regexp"
	"strings"

	"github.com/stellarlinkco/capeval/internal/evaluator"
)

var weights = evaluator.Weights{
	"intent_accuracy":    0.40,
	"entity_accuracy":    0.30,
	"response_relevance": 0.20,
	"structured_output":  0.10,
}

// Evaluator scores intent recognition responses.
type Evaluator struct{}

// New returns the intent evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Name() string { return "intent" }

// Weights implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Weights() evaluator.Weights { return weights }

// Score implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Score(output string, hint *evaluator.Hint) (float64, evaluator.MetricScore) {
	if hint == nil {
		hint = &evaluator.Hint{}
	}
	metrics := evaluator.MetricScore{
		"intent_accuracy":    intentAccuracy(output, hint.Intent),
		"entity_accuracy":    entityAccuracy(output, hint.Entities),
		"response_relevance": relevance(hint.Text, output),
		"structured_output":  structuredOutput(output),
	}
	return weights.Score(metrics), metrics
}

// intentCategory pairs the keywords and phrase patterns that indicate a
// given intent label.
type intentCategory struct {
	keywords []string
	patterns []*regexp.Regexp
}

var intentCategories = map[string]intentCategory{
	"information_seeking": {
		keywords: []string{"what", "how", "why", "when", "where", "who", "explain", "tell me", "describe"},
		patterns: compile(`what is`, `how does`, `why is`, `when does`, `where can`),
	},
	"problem_solving": {
		keywords: []string{"problem", "issue", "error", "fix", "solve", "troubleshoot", "help", "broken"},
		patterns: compile(`how to fix`, `how to solve`, `what's wrong`, `not working`),
	},
	"decision_making": {
		keywords: []string{"should", "choose", "decide", "recommend", "better", "best", "compare", "option"},
		patterns: compile(`should i`, `which is better`, `what should`, `recommend`),
	},
	"action_request": {
		keywords: []string{"do", "make", "create", "build", "generate", "write", "send", "call"},
		patterns: compile(`can you`, `please`, `would you`, `could you`),
	},
	"confirmation": {
		keywords: []string{"confirm", "verify", "check", "validate", "correct", "right", "true"},
		patterns: compile(`is this`, `are you sure`, `confirm that`),
	},
	"complaint": {
		keywords: []string{"complaint", "dissatisfied", "unhappy", "disappointed", "frustrated", "angry"},
		patterns: compile(`i'm not happy`, `this is wrong`, `terrible`, `awful`),
	},
	"praise": {
		keywords: []string{"great", "excellent", "amazing", "wonderful", "love", "perfect", "fantastic"},
		patterns: compile(`thank you`, `well done`, `good job`, `impressed`),
	},
	"clarification": {
		keywords: []string{"clarify", "explain more", "elaborate", "details", "specific", "precise"},
		patterns: compile(`can you explain`, `more details`, `be more specific`),
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(expr))
	}
	return out
}

// entityPatterns is the subset of entity types the intent catalog
// references. The entity evaluator carries the full table.
var entityPatterns = map[string]*regexp.Regexp{
	"person":       regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
	"organization": regexp.MustCompile(`\b[A-Z][a-z]+ (Inc|Corp|LLC|Ltd|Company|Corporation)\b`),
	"email":        regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	"phone":        regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	"date":         regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	"time":         regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(AM|PM|am|pm)?\b`),
	"currency":     regexp.MustCompile(`\$\d+(,\d{3})*(\.\d{2})?`),
	"percentage":   regexp.MustCompile(`\b\d+(\.\d+)?%`),
	"url":          regexp.MustCompile(`https?://\S+`),
	"product":      regexp.MustCompile(`\b[A-Z][a-z]+ (Pro|Plus|Max|Mini|Air|Studio)\b`),
}

func intentAccuracy(output, expected string) float64 {
	if expected == "" {
		return 0.5
	}
	lower := strings.ToLower(output)
	if strings.Contains(lower, strings.ReplaceAll(expected, "_", " ")) {
		return 1.0
	}
	cat, ok := intentCategories[expected]
	if !ok {
		return 0.0
	}
	if n := evaluator.CountAny(output, cat.keywords); n > 0 {
		return evaluator.Ratio(n, len(cat.keywords))
	}
	for _, p := range cat.patterns {
		if p.MatchString(lower) {
			return 0.7
		}
	}
	return 0.0
}

// entityAccuracy is the F1 over expected versus detected entity types.
func entityAccuracy(output string, expected []string) float64 {
	if len(expected) == 0 {
		return 1.0
	}
	detected := make(map[string]bool)
	for name, p := range entityPatterns {
		if p.MatchString(output) {
			detected[name] = true
		}
	}
	truePositives := 0
	for _, name := range expected {
		if detected[name] {
			truePositives++
		}
	}
	if len(detected) == 0 || truePositives == 0 {
		return 0.0
	}
	precision := float64(truePositives) / float64(len(detected))
	recall := float64(truePositives) / float64(len(expected))
	return 2 * precision * recall / (precision + recall)
}

// relevance compares the output against the source utterance captured
// in the hint.
func relevance(source, output string) float64 {
	score := 0.0
	if source != "" {
		sourceWords := wordSet(source)
		outputWords := wordSet(output)
		common := 0
		for w := range sourceWords {
			if outputWords[w] {
				common++
			}
		}
		if len(sourceWords) > 0 {
			score += float64(common) / float64(len(sourceWords)) * 0.5
		}
	}
	if wc := evaluator.WordCount(output); wc >= 10 && wc <= 200 {
		score += 0.3
	}
	if strings.Contains(source, "?") &&
		evaluator.ContainsAny(output, []string{"answer", "response", "explanation", "solution"}) {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	return score
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

var structureLabels = []string{"intent:", "entities:", "confidence:", "analysis:"}

func structuredOutput(output string) float64 {
	score := evaluator.Ratio(evaluator.CountAny(output, structureLabels), len(structureLabels)) * 0.4
	if strings.Contains(output, "{") && strings.Contains(output, "}") {
		score += 0.3
	}
	for _, marker := range []string{"•", "-", "*", "1.", "2.", "3."} {
		if strings.Contains(output, marker) {
			score += 0.3
			break
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}
