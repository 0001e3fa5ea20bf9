package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // % per year
	MaxTermMonths   = 600
	MinTermMonths   = 1

	// Widest span of terms evaluated for one recommendation.
	MaxTermRangeMonths = 120

	// Financing assumptions used when projecting a financed purchase.
	AnnualInterestRate      = 10.0  // %
	MonthlyDepreciationRate = 0.005 // 0.5% per month
	DownPaymentShare        = 0.20
	BufferMonths            = 2
	DefaultMonthlyExpense   = 5000.0

	// Projections that would need longer than this are rejected.
	MaxProjectionMonths = 600

	DefaultCacheTTL = 6 * time.Hour
)
