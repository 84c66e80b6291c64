package evaluator

import "time"

// TestCase is a single prompt in a capability's catalog. Names are
// unique within a catalog.
type TestCase struct {
	Name     string `json:"name"`
	Prompt   string `json:"prompt"`
	Expected *Hint  `json:"expected,omitempty"`
}

// Hint carries ground truth for scoring. Only the fields a capability
// cares about are set; the rest stay zero.
type Hint struct {
	// Text is reference text the output is compared against, such as
	// the source utterance or a reference answer.
	Text string `json:"text,omitempty"`
	// Keywords are topical terms the output should touch on.
	Keywords []string `json:"keywords,omitempty"`
	// Intent is the expected intent label.
	Intent string `json:"intent,omitempty"`
	// Sentiment is the expected polarity: positive, negative, neutral
	// or mixed.
	Sentiment string `json:"sentiment,omitempty"`
	// Intensity is the expected sentiment strength: high, medium or low.
	Intensity string `json:"intensity,omitempty"`
	// Entities are the entity type names expected in the output.
	Entities []string `json:"entities,omitempty"`
}

// MetricScore maps metric names to values in [0, 1].
type MetricScore map[string]float64

// Result is the outcome of one test case.
type Result struct {
	TestName      string        `json:"test_name"`
	Prompt        string        `json:"prompt"`
	ActualOutput  string        `json:"actual_output"`
	Score         float64       `json:"score"`
	Metrics       MetricScore   `json:"metrics,omitempty"`
	ExecutionTime time.Duration `json:"execution_time"`
	Passed        bool          `json:"passed"`
	// Err is set when the backend call failed or scoring panicked. A
	// failed case scores zero and never passes.
	Err error `json:"-"`
}

// Summary aggregates the results of one evaluator run.
type Summary struct {
	Evaluator          string        `json:"evaluator"`
	ModelName          string        `json:"model_name"`
	Timestamp          time.Time     `json:"timestamp"`
	TotalTests         int           `json:"total_tests"`
	PassedTests        int           `json:"passed_tests"`
	FailedTests        int           `json:"failed_tests"`
	AverageScore       float64       `json:"average_score"`
	TotalExecutionTime time.Duration `json:"total_execution_time"`
	Results            []Result      `json:"results"`
}

// PassRate returns the fraction of tests that passed.
func (s *Summary) PassRate() float64 {
	if s == nil || s.TotalTests == 0 {
		return 0
	}
	return float64(s.PassedTests) / float64(s.TotalTests)
}
