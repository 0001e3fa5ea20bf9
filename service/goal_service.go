package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"goal-planner/domain"
	"goal-planner/repository"
)

// Explainer turns a finished projection into a short summary.
type Explainer interface {
	ExplainGoal(ctx context.Context, req domain.GoalRequest, result domain.GoalResult) string
}

// GoalService projects when a vehicle purchase becomes affordable.
type GoalService struct {
	vehicles  repository.VehicleRepository
	cache     repository.CacheRepository
	terms     *TermRecommendationService
	explainer Explainer
	cacheTTL  time.Duration
	log       *slog.Logger
	now       func() time.Time

	// inflight collapses identical projections running at the same time.
	inflight singleflight.Group
}

// NewGoalService wires the projection dependencies. explainer may be nil.
func NewGoalService(
	vehicles repository.VehicleRepository,
	cache repository.CacheRepository,
	terms *TermRecommendationService,
	explainer Explainer,
	cacheTTL time.Duration,
	log *slog.Logger,
) *GoalService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &GoalService{
		vehicles:  vehicles,
		cache:     cache,
		terms:     terms,
		explainer: explainer,
		cacheTTL:  cacheTTL,
		log:       log,
		now:       time.Now,
	}
}

// SubmitGoal validates req, resolves the vehicle and returns the projection.
// Projections are cached per request and calendar day.
func (s *GoalService) SubmitGoal(ctx context.Context, req domain.GoalRequest) (domain.GoalResult, error) {
	if err := validateGoal(req); err != nil {
		return domain.GoalResult{}, err
	}

	today := truncateDay(s.now())
	key := goalCacheKey(req, today)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.GoalResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		s.log.Warn("discarding malformed cache entry", "key", key)
	}

	// The shared projection outlives any one caller; each caller stops
	// waiting on its own ctx.
	ch := s.inflight.DoChan(key, func() (any, error) {
		return s.project(context.WithoutCancel(ctx), req, today, key)
	})
	select {
	case <-ctx.Done():
		return domain.GoalResult{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return domain.GoalResult{}, r.Err
		}
		if r.Shared {
			s.log.Debug("goal projection shared", "key", key)
		}
		return r.Val.(domain.GoalResult), nil
	}
}

// project resolves the vehicle, runs the projection for the payment method
// and caches the result under key.
func (s *GoalService) project(ctx context.Context, req domain.GoalRequest, today time.Time, key string) (domain.GoalResult, error) {
	vehicle, err := s.vehicles.Find(ctx, domain.VehicleQuery{
		IsNew:      req.IsNew,
		Model:      req.Model,
		Year:       req.Year,
		MaxMileage: req.MaxMileage,
	})
	if err != nil {
		return domain.GoalResult{}, err
	}

	var result domain.GoalResult
	if req.Financing() {
		result, err = s.projectFinancing(req, vehicle, today)
	} else {
		result, err = projectCash(req, vehicle, today)
	}
	if err != nil {
		return domain.GoalResult{}, err
	}
	result.Promotion = vehicle.Promotion

	if s.explainer != nil {
		result.Explanation = s.explainer.ExplainGoal(ctx, req, result)
	}

	// Caching is best effort.
	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
			s.log.Warn("failed to cache goal result", "key", key, "err", err)
		}
	}

	return result, nil
}

// projectCash accumulates the down payment plus the monthly saving until the
// listing price is covered.
func projectCash(req domain.GoalRequest, vehicle domain.Vehicle, today time.Time) (domain.GoalResult, error) {
	remaining := vehicle.Price - req.DownPayment
	months := 0
	if remaining > 0 {
		months = int(math.Ceil(remaining / req.MonthlySaving))
	}
	if months > MaxProjectionMonths {
		return domain.GoalResult{}, fmt.Errorf("%w: saving %.2f a month needs %d months",
			domain.ErrUnreachableGoal, req.MonthlySaving, months)
	}

	chart := make([]domain.ChartPoint, 0, months+1)
	for i := 0; i <= months; i++ {
		chart = append(chart, domain.ChartPoint{
			Date:    today.AddDate(0, i, 0).Format(domain.DateLayout),
			Savings: roundTo2Decimals(req.DownPayment + float64(i)*req.MonthlySaving),
		})
	}

	return domain.GoalResult{
		EstimatedDate: today.AddDate(0, months, 0).Format(domain.DateLayout),
		DownPayment:   roundTo2Decimals(req.DownPayment),
		CarPrice:      roundTo2Decimals(vehicle.Price),
		TimeChart:     chart,
	}, nil
}

// projectFinancing saves until a 20% down payment plus an expense buffer is
// covered while the price depreciates monthly, then amortizes the rest over
// the recommended term.
func (s *GoalService) projectFinancing(req domain.GoalRequest, vehicle domain.Vehicle, today time.Time) (domain.GoalResult, error) {
	savings := req.DownPayment
	price := vehicle.Price
	buffer := BufferMonths * DefaultMonthlyExpense
	downPayment := DownPaymentShare * price

	months := 0
	for savings < downPayment+buffer {
		if months >= MaxProjectionMonths {
			return domain.GoalResult{}, fmt.Errorf("%w: down payment not reached within %d months",
				domain.ErrUnreachableGoal, MaxProjectionMonths)
		}
		months++
		savings += req.MonthlySaving
		price *= 1 - MonthlyDepreciationRate
		downPayment = DownPaymentShare * price
	}

	principal := price - downPayment
	minTerm := req.MaxTerm - MaxTermRangeMonths
	if minTerm < MinTermMonths {
		minTerm = MinTermMonths
	}
	rec, err := s.terms.RecommendTerm(domain.TermRecommendationInput{
		Amount:            roundTo2Decimals(principal),
		InterestRate:      AnnualInterestRate,
		MinTermMonths:     minTerm,
		MaxTermMonths:     req.MaxTerm,
		MaxMonthlyPayment: req.MaxEMI,
		Preference:        domain.PreferMinimizeInterest,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnreachableGoal) {
			return domain.GoalResult{}, err
		}
		return domain.GoalResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidGoal, err)
	}
	best := rec.Recommendations[0]
	term := best.TermMonths
	payment := best.MonthlyPayment

	chart := make([]domain.ChartPoint, 0, months+term+1)
	for i := 0; i <= months; i++ {
		chart = append(chart, domain.ChartPoint{
			Date:    today.AddDate(0, i, 0).Format(domain.DateLayout),
			Savings: roundTo2Decimals(req.DownPayment + float64(i)*req.MonthlySaving),
		})
	}
	afterPurchase := savings - downPayment
	for i := 1; i <= term; i++ {
		chart = append(chart, domain.ChartPoint{
			Date:    today.AddDate(0, months+i, 0).Format(domain.DateLayout),
			Savings: roundTo2Decimals(afterPurchase + float64(i)*(req.MonthlySaving-payment)),
		})
	}

	total := roundTo2Decimals(downPayment + payment*float64(term))
	return domain.GoalResult{
		EstimatedDate:  today.AddDate(0, months, 0).Format(domain.DateLayout),
		DownPayment:    roundTo2Decimals(downPayment),
		CarPrice:       roundTo2Decimals(price),
		MonthlyPayment: &payment,
		PaymentPeriod:  &term,
		TotalCost:      &total,
		TimeChart:      chart,
	}, nil
}

func validateGoal(req domain.GoalRequest) error {
	switch {
	case strings.TrimSpace(req.Model) == "":
		return fmt.Errorf("%w: model is required", domain.ErrInvalidGoal)
	case req.Year <= 0:
		return fmt.Errorf("%w: year must be positive", domain.ErrInvalidGoal)
	case req.MaxMileage < 0:
		return fmt.Errorf("%w: max_mileage must not be negative", domain.ErrInvalidGoal)
	case !req.PaymentMethod.Valid():
		return fmt.Errorf("%w: unknown payment_method %q", domain.ErrInvalidGoal, req.PaymentMethod)
	case req.DownPayment < 0:
		return fmt.Errorf("%w: down_payment must not be negative", domain.ErrInvalidGoal)
	case req.MonthlySaving <= 0:
		return fmt.Errorf("%w: monthly_saving must be positive", domain.ErrInvalidGoal)
	}
	if req.Financing() {
		if req.MaxEMI <= 0 {
			return fmt.Errorf("%w: max_emi must be positive for financing", domain.ErrInvalidGoal)
		}
		if req.MaxTerm < MinTermMonths || req.MaxTerm > MaxTermMonths {
			return fmt.Errorf("%w: max_term must be between %d and %d months",
				domain.ErrInvalidGoal, MinTermMonths, MaxTermMonths)
		}
	}
	return nil
}

// goalCacheKey hashes the fields that affect the projection. Financing
// fields are left out of cash keys since cash plans never read them.
func goalCacheKey(req domain.GoalRequest, day time.Time) string {
	if !req.Financing() {
		req.MaxEMI = 0
		req.MaxTerm = 0
	}
	req.Model = strings.ToLower(strings.TrimSpace(req.Model))
	data, _ := json.Marshal(req)

	h := xxhash.New()
	h.Write(data)
	h.WriteString(day.Format(domain.DateLayout))
	return "goal:" + hex.EncodeToString(h.Sum(nil))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
