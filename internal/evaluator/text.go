package evaluator

import (
	"regexp"
	"strings"
)

// Text-matching primitives shared by the capability scorers. All
// matching is case-insensitive on the haystack side; callers pass
// lowercase terms.

// ContainsAny reports whether s contains at least one of terms.
func ContainsAny(s string, terms []string) bool {
	return CountAny(s, terms) > 0
}

// CountAny returns how many of terms occur in s. Each term counts at
// most once.
func CountAny(s string, terms []string) int {
	lower := strings.ToLower(s)
	n := 0
	for _, term := range terms {
		if term != "" && strings.Contains(lower, term) {
			n++
		}
	}
	return n
}

// KeywordOverlap returns the fraction of keywords present in s, or zero
// when keywords is empty.
func KeywordOverlap(s string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	return float64(CountAny(s, keywords)) / float64(len(keywords))
}

// CountPattern returns the number of non-overlapping matches of re in s.
func CountPattern(re *regexp.Regexp, s string) int {
	return len(re.FindAllStringIndex(s, -1))
}

// WordCount returns the number of whitespace-separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Ratio returns n/d capped at 1.0, or zero when d is not positive.
func Ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	v := float64(n) / float64(d)
	if v > 1 {
		return 1
	}
	return v
}
