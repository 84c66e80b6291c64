// Package business evaluates enterprise advisory responses: strategy,
// finance, operations, and related leadership scenarios.
package business

import (
	"regexp"
	"strings"

	"github.com/stellarlinkco/capeval/internal/evaluator"
)

var weights = evaluator.Weights{
	"business_relevance": 0.30,
	"actionability":      0.25,
	"structure_clarity":  0.20,
	"specificity":        0.15,
	"professional_tone":  0.10,
}

// Evaluator scores business and enterprise scenarios.
type Evaluator struct{}

// New returns the business evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Name() string { return "business" }

// Weights implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Weights() evaluator.Weights { return weights }

// Score implements evaluator.CapabilityEvaluator. Business cases carry
// no ground truth; all metrics are derived from the output alone.
func (e *Evaluator) Score(output string, _ *evaluator.Hint) (float64, evaluator.MetricScore) {
	metrics := evaluator.MetricScore{
		"business_relevance": relevanceScore(output),
		"actionability":      actionabilityScore(output),
		"structure_clarity":  structureScore(output),
		"specificity":        specificityScore(output),
		"professional_tone":  toneScore(output),
	}
	return weights.Score(metrics), metrics
}

var businessKeywords = []string{
	// strategy
	"strategy", "strategic", "planning", "roadmap", "vision", "mission",
	// finance
	"budget", "cost", "revenue", "profit", "investment", "roi", "financial",
	// operations
	"process", "workflow", "efficiency", "productivity", "optimization",
	// leadership
	"leadership", "management", "team", "collaboration", "decision",
	// technology
	"digital", "automation", "innovation", "technology", "system",
	// customer
	"customer", "client", "user", "experience", "satisfaction", "service",
	// market
	"market", "competition", "competitive", "industry", "trends",
	// risk
	"risk", "security", "compliance", "governance", "audit",
}

var businessConcepts = []string{
	"roi", "kpi", "metrics", "benchmark", "stakeholder",
	"quarterly", "annual", "budget", "forecast", "analysis",
	"implementation", "execution", "timeline", "milestone",
}

var quantityPattern = regexp.MustCompile(`\d+[%$MKB]?`)

func relevanceScore(output string) float64 {
	score := evaluator.KeywordOverlap(output, businessKeywords) * 0.4
	score += evaluator.Ratio(evaluator.CountAny(output, businessConcepts), len(businessConcepts)) * 0.3
	if evaluator.CountPattern(quantityPattern, output) >= 2 {
		score += 0.3
	}
	if score > 1 {
		score = 1
	}
	return score
}

var (
	actionWords = []string{
		"implement", "execute", "develop", "create", "establish",
		"build", "launch", "deploy", "initiate", "start",
		"recommend", "suggest", "propose", "plan", "strategy",
	}
	stepIndicators = []string{"first", "second", "third", "step", "phase", "stage"}
	timelineWords  = []string{"immediately", "short-term", "long-term", "within", "by", "timeline"}
)

func actionabilityScore(output string) float64 {
	score := evaluator.Ratio(evaluator.CountAny(output, actionWords), len(actionWords)) * 0.4
	score += evaluator.Ratio(evaluator.CountAny(output, stepIndicators), len(stepIndicators)) * 0.3
	score += evaluator.Ratio(evaluator.CountAny(output, timelineWords), len(timelineWords)) * 0.3
	if score > 1 {
		score = 1
	}
	return score
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

func structureScore(output string) float64 {
	score := 0.0

	nonEmpty := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}
	if nonEmpty >= 3 {
		score += 0.3
	}

	for _, marker := range []string{"•", "-", "*", "1.", "2.", "3."} {
		if strings.Contains(output, marker) {
			score += 0.3
			break
		}
	}

	paragraphs := 0
	for _, p := range strings.Split(output, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	if paragraphs >= 2 {
		score += 0.2
	}

	sentences := sentenceSplit.Split(output, -1)
	if len(sentences) > 0 {
		words := 0
		for _, s := range sentences {
			if strings.TrimSpace(s) != "" {
				words += evaluator.WordCount(s)
			}
		}
		avg := float64(words) / float64(len(sentences))
		if avg >= 10 && avg <= 25 {
			score += 0.2
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}

var (
	timeframes = []string{"days", "weeks", "months", "quarters", "years", "q1", "q2", "q3", "q4"}
	roleWords  = []string{"ceo", "cfo", "cto", "vp", "director", "manager", "team", "department"}
)

func specificityScore(output string) float64 {
	score := 0.0
	if evaluator.CountPattern(quantityPattern, output) >= 3 {
		score += 0.4
	}
	if evaluator.CountAny(output, timeframes) >= 2 {
		score += 0.3
	}
	if evaluator.CountAny(output, roleWords) >= 2 {
		score += 0.3
	}
	return score
}

var (
	professionalWords = []string{
		"recommend", "suggest", "propose", "consider", "evaluate",
		"analyze", "assess", "implement", "execute", "strategic",
		"tactical", "operational", "systematic", "comprehensive",
	}
	formalConnectives = []string{"furthermore", "moreover", "however", "therefore", "consequently"}
)

func toneScore(output string) float64 {
	score := evaluator.Ratio(evaluator.CountAny(output, professionalWords), len(professionalWords)) * 0.5
	score += evaluator.Ratio(evaluator.CountAny(output, formalConnectives), len(formalConnectives)) * 0.3
	if wc := evaluator.WordCount(output); wc >= 50 && wc <= 300 {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	return score
}
