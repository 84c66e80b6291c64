// Package entity evaluates entity recognition and extraction responses.
package entity

import (
	"regexp"
	"strings"

	"github.com/stellarlinkco/capeval/internal/evaluator"
)

var weights = evaluator.Weights{
	"extraction_accuracy": 0.50,
	"type_classification": 0.25,
	"completeness":        0.15,
	"format_consistency":  0.10,
}

// saturationCap bounds how many matches of one entity type count toward
// completeness. Repeating a value past the cap earns nothing extra.
const saturationCap = 5

// Evaluator scores entity extraction responses.
type Evaluator struct{}

// New returns the entity evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Name() string { return "entity" }

// Weights implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Weights() evaluator.Weights { return weights }

// Score implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Score(output string, hint *evaluator.Hint) (float64, evaluator.MetricScore) {
	var expected []string
	if hint != nil {
		expected = hint.Entities
	}
	metrics := evaluator.MetricScore{
		"extraction_accuracy": extractionAccuracy(output, expected),
		"type_classification": typeClassification(output, expected),
		"completeness":        completeness(output, expected),
		"format_consistency":  formatConsistency(output),
	}
	return weights.Score(metrics), metrics
}

var entityPatterns = map[string]*regexp.Regexp{
	"person":       regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
	"organization": regexp.MustCompile(`\b[A-Z][a-z]+ (Inc|Corp|LLC|Ltd|Company|Corporation|Group|Systems|Technologies|Solutions)\b`),
	"location":     regexp.MustCompile(`\b[A-Z][a-z]+( [A-Z][a-z]+)*,? ([A-Z]{2}|[A-Z][a-z]+)\b`),
	"email":        regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	"phone":        regexp.MustCompile(`\b(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
	"date":         regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4})\b`),
	"time":         regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(AM|PM|am|pm)?\b`),
	"currency":     regexp.MustCompile(`\$\d+(,\d{3})*(\.\d{2})?`),
	"percentage":   regexp.MustCompile(`\b\d+(\.\d+)?%`),
	"url":          regexp.MustCompile(`https?://\S+`),
	"product":      regexp.MustCompile(`\b[A-Z][a-z]+ (Pro|Plus|Max|Mini|Air|Studio|Enterprise|Standard|Premium)\b`),
	"job_title":    regexp.MustCompile(`\b(CEO|CFO|CTO|VP|Director|Manager|Senior|Junior|Lead|Principal|Staff|Engineer|Developer|Analyst|Consultant|Specialist)\b`),
	"industry":     regexp.MustCompile(`\b(Technology|Healthcare|Finance|Education|Retail|Manufacturing|Automotive|Aerospace|Pharmaceutical|Energy|Real Estate|Entertainment|Media|Telecommunications|Transportation|Logistics|Agriculture|Construction|Consulting|Legal|Government|Non-profit)\b`),
}

var entitySynonyms = map[string][]string{
	"person":       {"name", "individual", "people", "person"},
	"organization": {"company", "corporation", "business", "firm", "organization"},
	"location":     {"place", "city", "address", "location"},
	"email":        {"email", "e-mail", "mail"},
	"phone":        {"phone", "telephone", "number", "contact"},
	"date":         {"date", "day", "time"},
	"time":         {"time", "hour", "moment"},
	"currency":     {"money", "price", "cost", "amount", "dollar"},
	"percentage":   {"percent", "rate", "ratio"},
	"url":          {"website", "link", "url", "web"},
	"product":      {"product", "item", "device"},
	"job_title":    {"title", "position", "role", "job"},
	"industry":     {"sector", "field", "industry", "domain"},
}

// detectTypes returns the entity types an output appears to report,
// either by naming the type (or a synonym) or by containing a value
// matching the type's pattern.
func detectTypes(output string) map[string]bool {
	lower := strings.ToLower(output)
	detected := make(map[string]bool)
	for name, p := range entityPatterns {
		switch {
		case strings.Contains(lower, strings.ReplaceAll(name, "_", " ")):
			detected[name] = true
		case evaluator.ContainsAny(output, entitySynonyms[name]):
			detected[name] = true
		case p.MatchString(output):
			detected[name] = true
		}
	}
	return detected
}

// extractionAccuracy is the F1 over expected versus detected types.
func extractionAccuracy(output string, expected []string) float64 {
	if len(expected) == 0 {
		return 1.0
	}
	detected := detectTypes(output)
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

// typeClassification rewards the output for naming each expected type,
// with half credit for synonyms.
func typeClassification(output string, expected []string) float64 {
	if len(expected) == 0 {
		return 1.0
	}
	lower := strings.ToLower(output)
	score := 0.0
	for _, name := range expected {
		if strings.Contains(lower, strings.ReplaceAll(name, "_", " ")) {
			score += 1.0
		}
		if evaluator.ContainsAny(output, entitySynonyms[name]) {
			score += 0.5
		}
	}
	score /= float64(len(expected))
	if score > 1 {
		score = 1
	}
	return score
}

// completeness measures how much of each expected type the output
// covers. Naming the type is full credit; otherwise credit grows with
// the number of matching values up to saturationCap.
func completeness(output string, expected []string) float64 {
	if len(expected) == 0 {
		return 1.0
	}
	lower := strings.ToLower(output)
	total := 0.0
	for _, name := range expected {
		if strings.Contains(lower, strings.ReplaceAll(name, "_", " ")) {
			total += 1.0
			continue
		}
		if p, ok := entityPatterns[name]; ok {
			n := evaluator.CountPattern(p, output)
			if n > saturationCap {
				n = saturationCap
			}
			total += float64(n) / float64(saturationCap)
		}
	}
	return total / float64(len(expected))
}

func formatConsistency(output string) float64 {
	score := 0.0
	if strings.Contains(output, ":") && strings.Contains(output, "\n") {
		score += 0.3
	}

	labeled := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" && strings.Contains(line, ":") {
			labeled++
		}
	}
	if labeled >= 2 {
		score += 0.3
	}

	if strings.Contains(output, "{") && strings.Contains(output, "}") {
		score += 0.2
	}
	for _, marker := range []string{"•", "-", "*", "1.", "2.", "3."} {
		if strings.Contains(output, marker) {
			score += 0.2
			break
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}
