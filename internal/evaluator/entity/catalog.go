package entity

import "github.com/stellarlinkco/capeval/internal/evaluator"

// TestCases implements evaluator.CapabilityEvaluator. Expected entity
// lists are deduplicated; scoring is type-set based.
func (e *Evaluator) TestCases() []evaluator.TestCase { return catalog }

func hint(entities ...string) *evaluator.Hint {
	return &evaluator.Hint{Entities: entities}
}

var catalog = []evaluator.TestCase{
	{
		Name:     "business_card_extraction",
		Prompt:   "Extract all entities from this business card information: 'John Smith, CEO at TechCorp Inc, email: john.smith@techcorp.com, phone: (555) 123-4567, located in San Francisco, CA.'",
		Expected: hint("person", "organization", "email", "phone", "location", "job_title"),
	},
	{
		Name:     "meeting_invitation",
		Prompt:   "Identify entities in this meeting invitation: 'Meeting with Sarah Johnson from Microsoft Corp on Dec 15, 2024 at 2:30 PM. Budget discussion for $50,000 project. Contact: sarah.johnson@microsoft.com or call 555-987-6543.'",
		Expected: hint("person", "organization", "date", "time", "currency", "email", "phone"),
	},
	{
		Name:     "product_review",
		Prompt:   "Extract entities from this review: 'I bought the iPhone Pro Max for $1,200 from Apple Inc. The delivery to New York, NY was fast. Contact support at support@apple.com or 1-800-APL-CARE.'",
		Expected: hint("product", "currency", "organization", "location", "email", "phone"),
	},
	{
		Name:     "financial_report",
		Prompt:   "Find entities in this financial data: 'Q3 2024 revenue increased by 15% to $2.5M. Our CFO, Michael Brown, will present at the board meeting on 10/15/2024 at 9:00 AM. Visit our website at https://company.com for details.'",
		Expected: hint("date", "percentage", "currency", "person", "job_title", "time", "url"),
	},
	{
		Name:     "job_posting",
		Prompt:   "Extract entities from this job posting: 'Senior Software Engineer position at Google LLC in Mountain View, CA. Salary range $120,000-$180,000. Apply by 12/31/2024. Contact: careers@google.com or call (650) 253-0000.'",
		Expected: hint("job_title", "organization", "location", "currency", "date", "email", "phone"),
	},
	{
		Name:     "news_article",
		Prompt:   "Identify entities in this news snippet: 'Tesla Inc announced a 25% increase in sales for 2024. CEO Elon Musk will speak at the conference in Austin, TX on Jan 20, 2025 at 3:00 PM. Stock price rose to $250.50.'",
		Expected: hint("organization", "percentage", "date", "person", "job_title", "location", "time", "currency"),
	},
	{
		Name:     "customer_support",
		Prompt:   "Extract entities from this support ticket: 'Customer: Jane Doe, Account #12345, purchased MacBook Air for $999.99 on 11/15/2024. Issue reported on 11/20/2024 at 10:30 AM. Contact: jane.doe@email.com, phone: 555-555-0123.'",
		Expected: hint("person", "product", "currency", "date", "time", "email", "phone"),
	},
	{
		Name:     "contract_information",
		Prompt:   "Find entities in this contract excerpt: 'Agreement between ABC Corporation and XYZ Ltd, signed on March 1, 2024. Contract value: $100,000. Project completion by June 30, 2024. Contact: legal@abc.com, (212) 555-0199.'",
		Expected: hint("organization", "date", "currency", "email", "phone"),
	},
	{
		Name:     "social_media_post",
		Prompt:   "Extract entities from this social media post: 'Just had an amazing meeting with the team at Salesforce Inc in San Francisco, CA! Our VP of Marketing, Lisa Chen, presented our Q4 results showing 30% growth. #business #success'",
		Expected: hint("organization", "location", "person", "job_title", "percentage"),
	},
	{
		Name:     "complex_business_document",
		Prompt:   "Identify all entities in this business document: 'Amazon Web Services (AWS) partnership with IBM Corp announced on 09/15/2024. Project budget: $5M over 18 months. Key contacts: John Smith (john@aws.com, 206-266-1000) and Mary Johnson (mary@ibm.com, 914-499-1900). Implementation in Seattle, WA and Armonk, NY.'",
		Expected: hint("organization", "date", "currency", "person", "email", "phone", "location"),
	},
}
