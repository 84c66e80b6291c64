package business

import "github.com/stellarlinkco/capeval/internal/evaluator"

// TestCases implements evaluator.CapabilityEvaluator.
func (e *Evaluator) TestCases() []evaluator.TestCase { return catalog }

var catalog = []evaluator.TestCase{
	{
		Name:   "strategic_planning",
		Prompt: "As a CEO of a mid-size technology company, I need to develop a 3-year strategic plan to expand into the European market. Our current revenue is $50M annually, and we have 200 employees. What are the key strategic initiatives I should consider, and what resources will I need?",
	},
	{
		Name:   "financial_analysis",
		Prompt: "Our company's Q3 financial results show declining profit margins from 15% to 12% while revenue increased by 8%. Our main competitor just launched a similar product at 20% lower price. As CFO, what immediate actions should I recommend to the board?",
	},
	{
		Name:   "operational_efficiency",
		Prompt: "Our manufacturing plant has been experiencing 15% higher production costs due to supply chain disruptions and increased energy prices. We need to reduce costs by 10% while maintaining quality. What operational improvements would you recommend?",
	},
	{
		Name:   "digital_transformation",
		Prompt: "We're a traditional retail company with 500 stores nationwide. Our online sales represent only 15% of total revenue, but our competitors are at 40%. The board wants to accelerate digital transformation. What's your recommended approach and timeline?",
	},
	{
		Name:   "talent_management",
		Prompt: "Our software engineering team has 30% turnover rate, and we're struggling to hire senior developers. Our main competitor is offering 25% higher salaries. As VP of Engineering, what retention and recruitment strategies should I implement?",
	},
	{
		Name:   "customer_experience",
		Prompt: "Our customer satisfaction scores dropped from 4.2 to 3.8 in the last quarter. Complaints about response time and product quality have increased by 40%. As Head of Customer Experience, what immediate and long-term actions should I take?",
	},
	{
		Name:   "market_expansion",
		Prompt: "We're a B2B SaaS company with strong presence in North America. We want to expand to Asia-Pacific markets, specifically Singapore, Australia, and Japan. What market entry strategy would you recommend, and what are the key considerations?",
	},
	{
		Name:   "risk_management",
		Prompt: "Our company handles sensitive customer data and is subject to GDPR, CCPA, and SOX compliance. We're planning to migrate to cloud infrastructure. As Chief Risk Officer, what security and compliance measures should I prioritize?",
	},
	{
		Name:   "merger_acquisition",
		Prompt: "We're considering acquiring a smaller competitor for $25M. They have complementary technology and 50 employees. Our due diligence shows potential integration challenges and cultural differences. What factors should influence our decision?",
	},
	{
		Name:   "sustainability_initiative",
		Prompt: "Our board has committed to achieving net-zero emissions by 2030. We're a manufacturing company with 20 facilities worldwide. What sustainability initiatives should we prioritize, and how can we measure progress while maintaining profitability?",
	},
}
