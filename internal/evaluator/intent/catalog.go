package intent

import "github.com/stellarlinkco/capeval/internal/evaluator"

// TestCases implements evaluator.CapabilityEvaluator. Each hint carries
// the source utterance so relevance can be scored without re-reading
// the prompt.
func (e *Evaluator) TestCases() []evaluator.TestCase { return catalog }

func hint(intent string, entities ...string) *evaluator.Hint {
	return &evaluator.Hint{Intent: intent, Entities: entities}
}

var catalog = buildCatalog()

func buildCatalog() []evaluator.TestCase {
	cases := []evaluator.TestCase{
		{
			Name:     "information_seeking_basic",
			Prompt:   "What is the difference between machine learning and artificial intelligence?",
			Expected: hint("information_seeking"),
		},
		{
			Name:     "problem_solving_technical",
			Prompt:   "My computer keeps crashing when I run the new software. How can I fix this issue?",
			Expected: hint("problem_solving"),
		},
		{
			Name:     "decision_making_business",
			Prompt:   "Should I choose AWS or Google Cloud for our new project? We have a budget of $10,000 per month.",
			Expected: hint("decision_making", "currency"),
		},
		{
			Name:     "action_request_creation",
			Prompt:   "Can you create a presentation about our Q3 sales results? The meeting is on 12/15/2024 at 2:00 PM.",
			Expected: hint("action_request", "date", "time"),
		},
		{
			Name:     "confirmation_check",
			Prompt:   "Is this the correct email address for John Smith: john.smith@company.com?",
			Expected: hint("confirmation", "person", "email"),
		},
		{
			Name:     "complaint_service",
			Prompt:   "I'm very disappointed with the customer service. I've been waiting for 3 hours and no one has helped me.",
			Expected: hint("complaint"),
		},
		{
			Name:     "praise_positive",
			Prompt:   "Thank you so much! The solution you provided worked perfectly. You're amazing!",
			Expected: hint("praise"),
		},
		{
			Name:     "clarification_request",
			Prompt:   "Can you explain more about the pricing structure? I need specific details about the enterprise plan.",
			Expected: hint("clarification"),
		},
		{
			Name:     "complex_business_inquiry",
			Prompt:   "Hi, I'm Sarah Johnson from TechCorp Inc. We're interested in your enterprise solution. Can you send me a quote for 100 licenses? My email is sarah.johnson@techcorp.com and my phone is 555-123-4567.",
			Expected: hint("action_request", "person", "organization", "email", "phone"),
		},
		{
			// The primary intent wins when several are present.
			Name:     "multi_intent_mixed",
			Prompt:   "I have a problem with my iPhone Pro Max. The battery drains too fast. Should I get it repaired or buy a new one? The repair costs $200 and a new phone is $1,200.",
			Expected: hint("problem_solving", "product", "currency"),
		},
	}
	for i := range cases {
		cases[i].Expected.Text = cases[i].Prompt
	}
	return cases
}
