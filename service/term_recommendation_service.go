package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"goal-planner/domain"
)

type TermRecommendationService struct {
	loanService *LoanService
	log         *slog.Logger
}

func NewTermRecommendationService(loanService *LoanService, log *slog.Logger) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		log:         log,
	}
}

// RecommendTerm evaluates every term in the requested range and ranks the ones
// whose installment fits MaxMonthlyPayment.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if input.Amount <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid amount")
	}
	if input.InterestRate < 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid interest rate")
	}
	if input.MinTermMonths <= 0 || input.MaxTermMonths <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid terms")
	}
	if input.MinTermMonths > input.MaxTermMonths {
		return domain.TermRecommendationResult{}, errors.New("minimum term is greater than maximum term")
	}
	if input.MaxTermMonths > MaxTermMonths {
		return domain.TermRecommendationResult{}, fmt.Errorf("maximum term exceeds the limit of %d months", MaxTermMonths)
	}
	if input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths {
		return domain.TermRecommendationResult{}, fmt.Errorf("term range exceeds %d months", MaxTermRangeMonths)
	}
	if input.MaxMonthlyPayment <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid maximum monthly payment")
	}

	preferences := map[string]bool{
		domain.PreferMinimizeInterest: true,
		domain.PreferMinimizePayment:  true,
		domain.PreferBalanced:         true,
	}
	if !preferences[input.Preference] {
		return domain.TermRecommendationResult{}, errors.New("invalid preference")
	}

	recommendations := []domain.TermRecommendation{}

	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		result, err := s.loanService.CalculateLoan(domain.LoanInput{
			Amount:       input.Amount,
			InterestRate: input.InterestRate,
			TermMonths:   term,
		})
		if err != nil {
			s.log.Warn("loan calculation failed", "term", term, "err", err)
			continue
		}

		if result.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Score:          s.calculateScore(result, input, term),
			Reason:         s.generateReason(input),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf(
			"%w: no term up to %d months keeps the installment under %.2f",
			domain.ErrUnreachableGoal, input.MaxTermMonths, input.MaxMonthlyPayment)
	}

	// Stable so that equal scores keep the shorter term first.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
	}, nil
}

func (s *TermRecommendationService) calculateScore(
	result domain.LoanResult,
	input domain.TermRecommendationInput,
	term int,
) float64 {
	var score float64

	// Each component is normalized to 0-10.
	maxPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MaxTermMonths) / 12
	minPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MinTermMonths) / 12

	interestRange := maxPossibleInterest - minPossibleInterest
	paymentRange := input.MaxMonthlyPayment - (input.Amount / float64(input.MaxTermMonths))

	interestScore := 0.0
	paymentScore := 0.0
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (result.TotalInterest-minPossibleInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (result.MonthlyPayment-input.Amount/float64(input.MaxTermMonths))/paymentRange)
	}
	if span := input.MaxTermMonths - input.MinTermMonths; span > 0 {
		termScore = 10.0 * (1.0 - float64(term-input.MinTermMonths)/float64(span))
	}

	switch input.Preference {
	case domain.PreferMinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case domain.PreferMinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case domain.PreferBalanced:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundTo2Decimals(score)
}

func (s *TermRecommendationService) generateReason(input domain.TermRecommendationInput) string {
	switch input.Preference {
	case domain.PreferMinimizeInterest:
		return "Term optimized to minimize total interest"
	case domain.PreferMinimizePayment:
		return "Term optimized to minimize the monthly payment"
	case domain.PreferBalanced:
		return "Balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}
