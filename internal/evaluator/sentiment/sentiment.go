// Package sentiment evaluates sentiment analysis responses: polarity
// classification, intensity, and emotion recognition.
package sentiment

import (
	"strings"

	"github.com/stellarlinkco/capeval/internal/evaluator"
)

var weights = evaluator.Weights{
	"sentiment_accuracy":    0.40,
	"intensity_accuracy":    0.25,
	"emotion_recognition":   0.20,
	"context_understanding": 0.15,
}

// Evaluator scores sentiment analysis responses.
type Evaluator struct{}

// New returns the sentiment evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Name() string { return "sentiment" }

// Weights implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Weights() evaluator.Weights { return weights }

// Score implements evaluator.CapabilityEvaluator.
func (e *Evaluator) Score(output string, hint *evaluator.Hint) (float64, evaluator.MetricScore) {
	if hint == nil {
		hint = &evaluator.Hint{}
	}
	metrics := evaluator.MetricScore{
		"sentiment_accuracy":    sentimentAccuracy(output, hint.Sentiment),
		"intensity_accuracy":    intensityAccuracy(output, hint.Intensity),
		"emotion_recognition":   emotionRecognition(output),
		"context_understanding": contextUnderstanding(hint.Text, output),
	}
	return weights.Score(metrics), metrics
}

var positiveWords = []string{
	"excellent", "amazing", "wonderful", "fantastic", "great", "good", "awesome",
	"brilliant", "outstanding", "perfect", "superb", "marvelous", "terrific",
	"love", "like", "enjoy", "pleased", "satisfied", "happy", "delighted",
	"impressed", "thrilled", "excited", "grateful", "thankful", "appreciate",
	"recommend", "best", "top", "quality", "reliable", "trustworthy", "professional",
}

var negativeWords = []string{
	"terrible", "awful", "horrible", "bad", "poor", "worst", "disappointing",
	"frustrated", "angry", "upset", "annoyed", "disgusted", "hate", "dislike",
	"unhappy", "dissatisfied", "displeased", "furious", "irritated", "outraged",
	"complaint", "problem", "issue", "error", "broken", "failed", "useless",
	"waste", "regret", "disappointed", "let down", "betrayed", "cheated",
}

var neutralWords = []string{
	"okay", "fine", "average", "normal", "standard", "typical", "regular",
	"acceptable", "adequate", "sufficient", "moderate", "reasonable",
}

var intensifiers = []string{
	"very", "extremely", "incredibly", "absolutely", "completely", "totally",
	"highly", "really", "quite", "rather", "somewhat", "slightly", "barely",
}

// polarityIndicators gives partial credit when the output names the
// polarity indirectly.
var polarityIndicators = map[string][]string{
	"positive": {"positive", "good", "favorable", "optimistic", "upbeat"},
	"negative": {"negative", "bad", "unfavorable", "pessimistic", "downbeat"},
	"neutral":  {"neutral", "balanced", "mixed", "moderate", "average"},
	"mixed":    {"mixed", "both", "combination", "varied", "conflicting"},
}

func sentimentAccuracy(output, expected string) float64 {
	if expected == "" {
		return 0.5
	}
	lower := strings.ToLower(output)
	if strings.Contains(lower, expected) {
		return 1.0
	}
	if evaluator.ContainsAny(output, polarityIndicators[expected]) {
		return 0.8
	}

	positives := evaluator.CountAny(output, positiveWords)
	negatives := evaluator.CountAny(output, negativeWords)
	neutrals := evaluator.CountAny(output, neutralWords)
	switch expected {
	case "positive":
		if positives > negatives {
			return 0.6
		}
	case "negative":
		if negatives > positives {
			return 0.6
		}
	case "neutral":
		if neutrals > 0 {
			return 0.6
		}
	case "mixed":
		if positives > 0 && negatives > 0 {
			return 0.6
		}
	}
	return 0.0
}

var intensityIndicators = map[string][]string{
	"high":   {"strong", "intense", "extreme", "very", "highly", "extremely"},
	"medium": {"moderate", "somewhat", "fairly", "reasonably", "quite"},
	"low":    {"mild", "slight", "barely", "minimal", "low"},
}

func intensityAccuracy(output, expected string) float64 {
	if expected == "" {
		return 0.5
	}
	lower := strings.ToLower(output)
	if strings.Contains(lower, expected) {
		return 1.0
	}
	if evaluator.ContainsAny(output, intensityIndicators[expected]) {
		return 0.8
	}

	count := evaluator.CountAny(output, intensifiers)
	switch {
	case expected == "high" && count >= 2:
		return 0.6
	case expected == "medium" && count == 1:
		return 0.6
	case expected == "low" && count == 0:
		return 0.6
	}
	return 0.0
}

var emotionWords = map[string][]string{
	"joy":      {"happy", "joyful", "cheerful", "delighted", "thrilled"},
	"anger":    {"angry", "furious", "irritated", "outraged", "mad"},
	"sadness":  {"sad", "depressed", "disappointed", "upset", "down"},
	"fear":     {"afraid", "scared", "worried", "anxious", "concerned"},
	"surprise": {"surprised", "shocked", "amazed", "astonished", "stunned"},
	"disgust":  {"disgusted", "revolted", "repulsed", "sickened", "appalled"},
}

var emotionalIntensifiers = []string{"very", "extremely", "incredibly", "absolutely", "completely"}

func emotionRecognition(output string) float64 {
	found := 0
	for _, words := range emotionWords {
		if evaluator.ContainsAny(output, words) {
			found++
		}
	}
	score := 0.0
	if found > 0 {
		score += evaluator.Ratio(found, len(emotionWords)) * 0.6
	}
	if n := evaluator.CountAny(output, emotionalIntensifiers); n > 0 {
		score += evaluator.Ratio(n, len(emotionalIntensifiers)) * 0.4
	}
	if score > 1 {
		score = 1
	}
	return score
}

// contextUnderstanding checks that the output engages with the text it
// was asked to analyze, using the source utterance from the hint.
func contextUnderstanding(source, output string) float64 {
	score := 0.0
	sourceLower := strings.ToLower(source)

	if strings.Contains(sourceLower, "analyze") || strings.Contains(sourceLower, "sentiment") {
		if evaluator.ContainsAny(output, []string{"analyze", "analysis", "sentiment", "feeling", "tone"}) {
			score += 0.4
		}
	}
	if strings.Contains(sourceLower, "this") || strings.Contains(sourceLower, "the following") {
		if evaluator.ContainsAny(output, []string{"text", "message", "review", "comment", "statement"}) {
			score += 0.3
		}
	}
	if wc := evaluator.WordCount(output); wc >= 20 && wc <= 150 {
		score += 0.2
	}
	if evaluator.ContainsAny(output, []string{"confident", "certain", "likely", "probably", "appears", "seems"}) {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}
	return score
}
