package http

import (
	"log/slog"
	"net/http"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Goal *GoalHandler
	Plan *PlanHandler
	Loan *LoanHandler
	Term *TermRecommendationHandler
}

// RouterOptions configures the middleware around the routes.
type RouterOptions struct {
	CORSOrigin  string
	ServiceName string
	Limiter     *RateLimiter // nil disables rate limiting
}

// NewRouter mounts the API routes and wraps them with the standard chain.
func NewRouter(h Handlers, opts RouterOptions, log *slog.Logger) http.Handler {
	limit := func(next http.HandlerFunc) http.Handler {
		if opts.Limiter == nil {
			return next
		}
		return RateLimitMiddleware(opts.Limiter, next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", Health)
	mux.Handle("/submit_goal", limit(h.Goal.SubmitGoal))
	mux.Handle("/save_goal", limit(h.Plan.SaveGoal))
	mux.HandleFunc("/plans", h.Plan.ListPlans)
	mux.Handle("/loan/calculate", limit(h.Loan.CalculateLoan))
	mux.Handle("/loan/recommend-term", limit(h.Term.RecommendTerm))

	mw := []Middleware{Recover(log), Logger(log)}
	if opts.CORSOrigin != "" {
		mw = append(mw, CORS(opts.CORSOrigin))
	}
	if opts.ServiceName != "" {
		mw = append(mw, OTel(opts.ServiceName))
	}
	return Chain(mux, mw...)
}
