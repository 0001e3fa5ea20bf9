package domain

// Term preferences understood by the term recommender.
const (
	PreferMinimizeInterest = "minimize_interest"
	PreferMinimizePayment  = "minimize_payment"
	PreferBalanced         = "balanced"
)

type TermRecommendationInput struct {
	Amount            float64 `json:"amount"`
	InterestRate      float64 `json:"interest_rate"`
	MinTermMonths     int     `json:"min_term_months"`
	MaxTermMonths     int     `json:"max_term_months"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment"`
	Preference        string  `json:"preference"`
}

type TermRecommendation struct {
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}
