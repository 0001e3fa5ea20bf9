package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-planner/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTermService() *TermRecommendationService {
	return NewTermRecommendationService(NewLoanService(), discardLogger())
}

func TestRecommendTerm_OnlyAffordableTerms(t *testing.T) {
	result, err := newTermService().RecommendTerm(domain.TermRecommendationInput{
		Amount:            20000,
		InterestRate:      10,
		MinTermMonths:     12,
		MaxTermMonths:     60,
		MaxMonthlyPayment: 700,
		Preference:        domain.PreferMinimizeInterest,
	})

	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, result.Recommendations[0].TermMonths, result.RecommendedTerm)
	for _, r := range result.Recommendations {
		assert.LessOrEqual(t, r.MonthlyPayment, 700.0)
		assert.GreaterOrEqual(t, r.TermMonths, 12)
		assert.LessOrEqual(t, r.TermMonths, 60)
	}
	for i := 1; i < len(result.Recommendations); i++ {
		assert.GreaterOrEqual(t, result.Recommendations[i-1].Score, result.Recommendations[i].Score)
	}
}

func TestRecommendTerm_MinimizeInterestPrefersShorterTerms(t *testing.T) {
	input := domain.TermRecommendationInput{
		Amount:            20000,
		InterestRate:      10,
		MinTermMonths:     12,
		MaxTermMonths:     60,
		MaxMonthlyPayment: 5000,
	}

	input.Preference = domain.PreferMinimizeInterest
	interest, err := newTermService().RecommendTerm(input)
	require.NoError(t, err)

	input.Preference = domain.PreferMinimizePayment
	payment, err := newTermService().RecommendTerm(input)
	require.NoError(t, err)

	assert.Less(t, interest.RecommendedTerm, payment.RecommendedTerm)
}

func TestRecommendTerm_SingleTerm(t *testing.T) {
	result, err := newTermService().RecommendTerm(domain.TermRecommendationInput{
		Amount:            12000,
		InterestRate:      0,
		MinTermMonths:     12,
		MaxTermMonths:     12,
		MaxMonthlyPayment: 1000,
		Preference:        domain.PreferBalanced,
	})

	require.NoError(t, err)
	assert.Equal(t, 12, result.RecommendedTerm)
	assert.Len(t, result.Recommendations, 1)
}

func TestRecommendTerm_Unreachable(t *testing.T) {
	_, err := newTermService().RecommendTerm(domain.TermRecommendationInput{
		Amount:            50000,
		InterestRate:      10,
		MinTermMonths:     1,
		MaxTermMonths:     12,
		MaxMonthlyPayment: 100,
		Preference:        domain.PreferMinimizeInterest,
	})

	assert.True(t, errors.Is(err, domain.ErrUnreachableGoal))
}

func TestRecommendTerm_InvalidInput(t *testing.T) {
	valid := domain.TermRecommendationInput{
		Amount:            10000,
		InterestRate:      10,
		MinTermMonths:     12,
		MaxTermMonths:     24,
		MaxMonthlyPayment: 1000,
		Preference:        domain.PreferBalanced,
	}
	tests := map[string]func(*domain.TermRecommendationInput){
		"amount":     func(in *domain.TermRecommendationInput) { in.Amount = 0 },
		"rate":       func(in *domain.TermRecommendationInput) { in.InterestRate = -1 },
		"min term":   func(in *domain.TermRecommendationInput) { in.MinTermMonths = 0 },
		"inverted":   func(in *domain.TermRecommendationInput) { in.MinTermMonths = 30 },
		"too long":   func(in *domain.TermRecommendationInput) { in.MaxTermMonths = MaxTermMonths + 1 },
		"wide range": func(in *domain.TermRecommendationInput) { in.MinTermMonths, in.MaxTermMonths = 1, 200 },
		"payment":    func(in *domain.TermRecommendationInput) { in.MaxMonthlyPayment = 0 },
		"preference": func(in *domain.TermRecommendationInput) { in.Preference = "cheapest" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := newTermService().RecommendTerm(in)
			assert.Error(t, err)
			assert.False(t, errors.Is(err, domain.ErrUnreachableGoal))
		})
	}
}
