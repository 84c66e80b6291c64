package sentiment

import "testing"

func TestCatalog(t *testing.T) {
	t.Parallel()

	e := New()
	cases := e.TestCases()
	if len(cases) != 10 {
		t.Fatalf("catalog has %d cases, want 10", len(cases))
	}
	for _, tc := range cases {
		if tc.Expected == nil || tc.Expected.Sentiment == "" || tc.Expected.Intensity == "" {
			t.Fatalf("case %q missing sentiment or intensity hint", tc.Name)
		}
		switch tc.Expected.Sentiment {
		case "positive", "negative", "neutral", "mixed":
		default:
			t.Fatalf("case %q has unknown sentiment %q", tc.Name, tc.Expected.Sentiment)
		}
		switch tc.Expected.Intensity {
		case "high", "medium", "low":
		default:
			t.Fatalf("case %q has unknown intensity %q", tc.Name, tc.Expected.Intensity)
		}
	}
	if err := e.Weights().Validate(); err != nil {
		t.Fatalf("weights: %v", err)
	}
}

func TestSentimentAccuracy(t *testing.T) {
	t.Parallel()

	if got := sentimentAccuracy("The sentiment is positive.", "positive"); got != 1.0 {
		t.Fatalf("explicit label = %v, want 1.0", got)
	}
	if got := sentimentAccuracy("The tone is favorable overall.", "positive"); got != 0.8 {
		t.Fatalf("indicator credit = %v, want 0.8", got)
	}
	if got := sentimentAccuracy("Customers were delighted and impressed throughout.", "positive"); got != 0.6 {
		t.Fatalf("lexicon credit = %v, want 0.6", got)
	}
	if got := sentimentAccuracy("The text praises and complains: wonderful quality, terrible support.", "mixed"); got == 0 {
		t.Fatalf("mixed lexicon should earn credit")
	}
	if got := sentimentAccuracy("Totally unrelated.", "negative"); got != 0 {
		t.Fatalf("no signal = %v, want 0", got)
	}
	if got := sentimentAccuracy("anything", ""); got != 0.5 {
		t.Fatalf("no expected sentiment = %v, want 0.5", got)
	}
}

func TestIntensityAccuracy(t *testing.T) {
	t.Parallel()

	if got := intensityAccuracy("Intensity: high.", "high"); got != 1.0 {
		t.Fatalf("explicit label = %v, want 1.0", got)
	}
	if got := intensityAccuracy("The emotion is extreme and strong.", "high"); got != 0.8 {
		t.Fatalf("indicator credit = %v, want 0.8", got)
	}
	if got := intensityAccuracy("It is absolutely and completely so.", "high"); got != 0.6 {
		t.Fatalf("intensifier count credit = %v, want 0.6", got)
	}
	if got := intensityAccuracy("Flat statement with no modifiers.", "low"); got != 0.6 {
		t.Fatalf("absent intensifiers for low = %v, want 0.6", got)
	}
	if got := intensityAccuracy("anything", ""); got != 0.5 {
		t.Fatalf("no expected intensity = %v, want 0.5", got)
	}
}

func TestEmotionRecognition(t *testing.T) {
	t.Parallel()

	rich := emotionRecognition("The writer is angry and disappointed, absolutely furious.")
	flat := emotionRecognition("A description of a table.")
	if rich <= flat {
		t.Fatalf("emotion-rich output %v should outscore flat output %v", rich, flat)
	}
	if flat != 0 {
		t.Fatalf("flat output = %v, want 0", flat)
	}
}

func TestContextUnderstanding(t *testing.T) {
	t.Parallel()

	source := "Analyze the sentiment of this customer review: 'Great product.'"
	engaged := contextUnderstanding(source, "The sentiment analysis of this review shows a clearly positive tone. The text appears enthusiastic, and the statement is short but its feeling seems unambiguous overall here.")
	ignored := contextUnderstanding(source, "Ok.")
	if engaged <= ignored {
		t.Fatalf("engaged output %v should outscore ignored output %v", engaged, ignored)
	}
}
