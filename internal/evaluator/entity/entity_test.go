package entity

import (
	"fmt"
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	e := New()
	cases := e.TestCases()
	if len(cases) != 10 {
		t.Fatalf("catalog has %d cases, want 10", len(cases))
	}
	for _, tc := range cases {
		if tc.Expected == nil || len(tc.Expected.Entities) == 0 {
			t.Fatalf("case %q has no expected entities", tc.Name)
		}
		seen := make(map[string]bool)
		for _, name := range tc.Expected.Entities {
			if _, ok := entityPatterns[name]; !ok {
				t.Fatalf("case %q expects unknown entity type %q", tc.Name, name)
			}
			if seen[name] {
				t.Fatalf("case %q lists entity type %q twice", tc.Name, name)
			}
			seen[name] = true
		}
	}
	if err := e.Weights().Validate(); err != nil {
		t.Fatalf("weights: %v", err)
	}
}

func TestDetectTypes(t *testing.T) {
	t.Parallel()

	out := "Found email john@corp.com, phone 555-123-4567, and the price was $1,200."
	detected := detectTypes(out)
	for _, want := range []string{"email", "phone", "currency"} {
		if !detected[want] {
			t.Fatalf("type %q not detected in %q (got %v)", want, out, detected)
		}
	}
	if detected["url"] {
		t.Fatalf("url detected with no url present")
	}
}

func TestExtractionAccuracy(t *testing.T) {
	t.Parallel()

	if got := extractionAccuracy("anything", nil); got != 1.0 {
		t.Fatalf("no expected entities = %v, want 1.0", got)
	}
	if got := extractionAccuracy("plain prose", []string{"url"}); got != 0 {
		t.Fatalf("nothing detected = %v, want 0", got)
	}

	full := extractionAccuracy("The url is https://example.com", []string{"url"})
	if full != 1.0 {
		t.Fatalf("exact detection F1 = %v, want 1.0", full)
	}
}

func TestTypeClassification(t *testing.T) {
	t.Parallel()

	named := typeClassification("Percentage: 30%. Url: https://x.com", []string{"percentage", "url"})
	if named != 1.0 {
		t.Fatalf("named types = %v, want 1.0", named)
	}

	synonym := typeClassification("The rate rose sharply.", []string{"percentage"})
	if synonym != 0.5 {
		t.Fatalf("synonym credit = %v, want 0.5", synonym)
	}

	if got := typeClassification("anything", nil); got != 1.0 {
		t.Fatalf("no expected entities = %v, want 1.0", got)
	}
}

func TestCompletenessSaturation(t *testing.T) {
	t.Parallel()

	addr := func(n int) string {
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			parts = append(parts, fmt.Sprintf("user%d@data.io", i))
		}
		return strings.Join(parts, " ")
	}

	five := completeness(addr(5), []string{"email"})
	twenty := completeness(addr(20), []string{"email"})
	if five != twenty {
		t.Fatalf("completeness(5 values) = %v, completeness(20 values) = %v; repeats past the cap must not add credit", five, twenty)
	}
	if five != 1.0 {
		t.Fatalf("completeness at cap = %v, want 1.0", five)
	}

	two := completeness(addr(2), []string{"email"})
	if two >= five {
		t.Fatalf("completeness(2 values) = %v, want below %v", two, five)
	}

	// Naming the type is full credit regardless of values.
	if got := completeness("All email addresses were listed.", []string{"email"}); got != 1.0 {
		t.Fatalf("named type completeness = %v, want 1.0", got)
	}
}

func TestFormatConsistency(t *testing.T) {
	t.Parallel()

	structured := "person: Jane Doe\nemail: jane@x.com\n- note"
	flat := "jane doe jane at x dot com"
	if formatConsistency(structured) <= formatConsistency(flat) {
		t.Fatalf("structured output should outscore flat output")
	}
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	e := New()
	for _, tc := range e.TestCases() {
		score, metrics := e.Score("person: John Smith, email: john@x.com", tc.Expected)
		if score < 0 || score > 1 {
			t.Fatalf("case %q score %v out of range", tc.Name, score)
		}
		for name, v := range metrics {
			if v < 0 || v > 1 {
				t.Fatalf("case %q metric %q = %v out of range", tc.Name, name, v)
			}
		}
	}
}
