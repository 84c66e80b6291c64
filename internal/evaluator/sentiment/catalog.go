package sentiment

import "github.com/stellarlinkco/capeval/internal/evaluator"

// TestCases implements evaluator.CapabilityEvaluator.
func (e *Evaluator) TestCases() []evaluator.TestCase { return catalog }

func hint(sentiment, intensity string) *evaluator.Hint {
	return &evaluator.Hint{Sentiment: sentiment, Intensity: intensity}
}

var catalog = buildCatalog()

func buildCatalog() []evaluator.TestCase {
	cases := []evaluator.TestCase{
		{
			Name:     "positive_feedback",
			Prompt:   "Analyze the sentiment of this customer review: 'I absolutely love this product! The quality is outstanding and the customer service was excellent. I would definitely recommend it to anyone.'",
			Expected: hint("positive", "high"),
		},
		{
			Name:     "negative_complaint",
			Prompt:   "What is the sentiment of this message: 'This is the worst experience I've ever had. The product is completely broken and the support team was terrible. I'm extremely disappointed and will never buy from this company again.'",
			Expected: hint("negative", "high"),
		},
		{
			Name:     "neutral_feedback",
			Prompt:   "Determine the sentiment: 'The product is okay. It works as expected but nothing special. The delivery was fine and the price is reasonable.'",
			Expected: hint("neutral", "low"),
		},
		{
			Name:     "mixed_sentiment",
			Prompt:   "Analyze the sentiment of this review: 'The product quality is amazing and I love the design, but the customer service was horrible and the shipping took forever. Overall, I'm satisfied with the purchase but disappointed with the experience.'",
			Expected: hint("mixed", "medium"),
		},
		{
			Name:     "sarcasm_detection",
			Prompt:   "What is the sentiment of this comment: 'Oh great, another software update that breaks everything. Just what I needed today. Thanks for nothing!'",
			Expected: hint("negative", "high"),
		},
		{
			Name:     "business_email_positive",
			Prompt:   "Analyze the sentiment of this business email: 'Thank you for the excellent presentation yesterday. Your team did a fantastic job and we're very impressed with the results. We look forward to working with you on future projects.'",
			Expected: hint("positive", "high"),
		},
		{
			Name:     "business_email_negative",
			Prompt:   "What is the sentiment of this email: 'I'm writing to express my concern about the recent issues with our account. The service has been unreliable and we're experiencing significant problems. This is unacceptable for a business relationship.'",
			Expected: hint("negative", "high"),
		},
		{
			Name:     "social_media_positive",
			Prompt:   "Analyze this social media post: 'Just had the best coffee ever at @CoffeeShop! The barista was so friendly and the atmosphere is perfect for working. Highly recommend! ☕️❤️'",
			Expected: hint("positive", "high"),
		},
		{
			Name:     "social_media_negative",
			Prompt:   "What is the sentiment of this tweet: 'Ugh, stuck in traffic again. This commute is killing me. Why can't they fix these roads? #frustrated #traffic'",
			Expected: hint("negative", "medium"),
		},
		{
			Name:     "product_review_detailed",
			Prompt:   "Analyze the sentiment of this detailed product review: 'I've been using this product for 3 months now. The build quality is solid and it performs well for most tasks. However, the battery life is disappointing and the software could be more intuitive. It's a decent product but not worth the premium price. I'd give it 3 out of 5 stars.'",
			Expected: hint("neutral", "medium"),
		},
	}
	for i := range cases {
		cases[i].Expected.Text = cases[i].Prompt
	}
	return cases
}
