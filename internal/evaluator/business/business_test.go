package business

import (
	"strings"
	"testing"
)

const strongResponse = `I recommend a three-phase strategy to address this.

First, analyze the budget and cost structure: target a 10% reduction in Q1,
with quarterly milestones tracked against KPI benchmarks.
Second, implement process optimization across the team, with the CFO and
operations director owning the timeline.
Third, establish a long-term roadmap for digital transformation and customer
experience improvements, with an investment of $2M over 18 months.

However, execution risk remains: management should evaluate compliance and
governance implications before the board decision. Therefore, I propose a
comprehensive assessment within 3 months.`

func TestCatalog(t *testing.T) {
	t.Parallel()

	e := New()
	cases := e.TestCases()
	if len(cases) != 10 {
		t.Fatalf("catalog has %d cases, want 10", len(cases))
	}
	seen := make(map[string]bool)
	for _, tc := range cases {
		if tc.Name == "" || tc.Prompt == "" {
			t.Fatalf("case %+v missing name or prompt", tc)
		}
		if seen[tc.Name] {
			t.Fatalf("duplicate case name %q", tc.Name)
		}
		seen[tc.Name] = true
	}
	if err := e.Weights().Validate(); err != nil {
		t.Fatalf("weights: %v", err)
	}
}

func TestScoreStrongResponse(t *testing.T) {
	t.Parallel()

	score, metrics := New().Score(strongResponse, nil)
	if score < 0.5 {
		t.Fatalf("strong response scored %v, want >= 0.5 (metrics %v)", score, metrics)
	}
	for _, name := range []string{"business_relevance", "actionability", "structure_clarity", "specificity", "professional_tone"} {
		v, ok := metrics[name]
		if !ok {
			t.Fatalf("metric %q missing", name)
		}
		if v < 0 || v > 1 {
			t.Fatalf("metric %q = %v, out of range", name, v)
		}
	}
}

func TestScoreWeakResponse(t *testing.T) {
	t.Parallel()

	strong, _ := New().Score(strongResponse, nil)
	weak, _ := New().Score("idk lol", nil)
	if weak >= strong {
		t.Fatalf("weak response scored %v, strong %v", weak, strong)
	}
	if weak > 0.3 {
		t.Fatalf("weak response scored %v, want <= 0.3", weak)
	}
}

func TestStructureScore(t *testing.T) {
	t.Parallel()

	bulleted := "Plan:\n- cut costs\n- raise prices\n\nThen review quarterly."
	plain := strings.ReplaceAll(bulleted, "-", "")
	if structureScore(bulleted) <= structureScore(plain) {
		t.Fatalf("bulleted output should outscore plain output")
	}
}

func TestRelevanceQuantitative(t *testing.T) {
	t.Parallel()

	with := relevanceScore("Revenue grew 15% on a $50M budget.")
	without := relevanceScore("Revenue grew on a modest budget.")
	if with <= without {
		t.Fatalf("quantified output %v should outscore unquantified %v", with, without)
	}
}
