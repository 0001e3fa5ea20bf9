package service

import (
	"errors"
	"fmt"
	"math"

	"goal-planner/domain"
)

// roundTo2Decimals rounds to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// LoanService computes equated monthly installments.
type LoanService struct{}

// NewLoanService creates a new LoanService.
func NewLoanService() *LoanService {
	return &LoanService{}
}

// CalculateLoan calculates the installment, total payment and interest of an
// amortized loan.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if input.Amount <= 0 {
		return domain.LoanResult{}, errors.New("invalid amount")
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, fmt.Errorf("amount exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if input.InterestRate < 0 {
		return domain.LoanResult{}, errors.New("invalid interest rate")
	}
	if input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return domain.LoanResult{}, errors.New("invalid term")
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, fmt.Errorf("term exceeds the maximum of %d months", MaxTermMonths)
	}

	var installment float64

	if input.InterestRate == 0 {
		installment = input.Amount / float64(input.TermMonths)
	} else {
		monthlyRate := (input.InterestRate / 100) / 12
		n := float64(input.TermMonths)

		installment = input.Amount * (monthlyRate /
			(1 - math.Pow(1+monthlyRate, -n)))
	}

	total := installment * float64(input.TermMonths)
	interest := total - input.Amount

	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(installment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(interest),
	}, nil
}
