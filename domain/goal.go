package domain

import "time"

// PaymentMethod selects which constraint set of a GoalRequest is active.
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "cash"
	PaymentFinancing PaymentMethod = "financing"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentFinancing
}

// DateLayout is the wire format of every date in a GoalResult.
const DateLayout = "2006-01-02"

// dateLayouts are the date spellings accepted from a collaborator, DateLayout
// first.
var dateLayouts = []string{
	DateLayout,
	"January 02, 2006",
	time.RFC3339,
}

// ParseDate parses s in any accepted layout. The zero time and false are
// returned for malformed dates.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GoalRequest describes a target vehicle purchase and the buyer's constraints.
// MaxEMI and MaxTerm are transmitted for cash plans too but only read when
// PaymentMethod is PaymentFinancing.
type GoalRequest struct {
	IsNew         bool          `json:"is_new"`
	Model         string        `json:"model"`
	Year          int           `json:"year"`
	MaxMileage    int           `json:"max_mileage"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	MaxEMI        float64       `json:"max_emi"`
	MaxTerm       int           `json:"max_term"`
	DownPayment   float64       `json:"down_payment"`
	MonthlySaving float64       `json:"monthly_saving"`
}

// Financing reports whether the financing fields are the active set.
func (g GoalRequest) Financing() bool {
	return g.PaymentMethod == PaymentFinancing
}

// Condition returns "New" or "Used".
func (g GoalRequest) Condition() string {
	if g.IsNew {
		return "New"
	}
	return "Used"
}

// ChartPoint is one month of the savings trajectory.
type ChartPoint struct {
	Date    string  `json:"date"`
	Savings float64 `json:"savings"`
}

// Time parses the point date with ParseDate.
func (p ChartPoint) Time() (time.Time, bool) {
	return ParseDate(p.Date)
}

// GoalResult is the feasibility projection returned for a GoalRequest.
// MonthlyPayment and PaymentPeriod are only set for financing plans.
type GoalResult struct {
	EstimatedDate  string       `json:"estimated_date"`
	DownPayment    float64      `json:"down_payment"`
	CarPrice       float64      `json:"car_price"`
	MonthlyPayment *float64     `json:"monthly_payment,omitempty"`
	PaymentPeriod  *int         `json:"payment_period,omitempty"`
	TotalCost      *float64     `json:"total_cost,omitempty"`
	Promotion      bool         `json:"promotion"`
	TimeChart      []ChartPoint `json:"time_chart"`
	Explanation    string       `json:"explanation,omitempty"`
}

// ErrorResponse is the body sent with every non-success status.
type ErrorResponse struct {
	Error string `json:"error"`
}
