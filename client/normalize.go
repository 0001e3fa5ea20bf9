package client

import (
	"net/url"
	"strings"

	"goal-planner/domain"
)

// Fallbacks applied by Normalize.
const (
	DefaultModel         = "Mercedes S-Class"
	DefaultYear          = 2025
	DefaultMaxMileage    = 50000
	DefaultMaxEMI        = 1000.0
	DefaultMaxTerm       = 60
	DefaultDownPayment   = 20000.0
	DefaultMonthlySaving = 1000.0
)

// Form field names.
const (
	FieldIsNew           = "is_new"
	FieldModel           = "model"
	FieldYear            = "year"
	FieldMaxMileage      = "max_mileage"
	FieldPaymentMethod   = "payment_method"
	FieldMaxEMI          = "max_emi"
	FieldMaxTerm         = "max_term"
	FieldDownPayment     = "down_payment"
	FieldMonthlySaving   = "monthly_saving"
	FieldMonthlyIncome   = "monthly_income"
	FieldMonthlyExpenses = "monthly_expenses"
)

// Normalize turns raw form values into a GoalRequest. It never fails:
// missing, malformed, zero or negative numbers fall back to their defaults.
func Normalize(form url.Values) domain.GoalRequest {
	model := strings.TrimSpace(form.Get(FieldModel))
	if model == "" {
		model = DefaultModel
	}

	method := domain.PaymentMethod(strings.TrimSpace(form.Get(FieldPaymentMethod)))
	if !method.Valid() {
		method = domain.PaymentCash
	}

	return domain.GoalRequest{
		IsNew:         form.Get(FieldIsNew) == "true",
		Model:         model,
		Year:          intOr(form.Get(FieldYear), DefaultYear),
		MaxMileage:    intOr(form.Get(FieldMaxMileage), DefaultMaxMileage),
		PaymentMethod: method,
		MaxEMI:        floatOr(form.Get(FieldMaxEMI), DefaultMaxEMI),
		MaxTerm:       intOr(form.Get(FieldMaxTerm), DefaultMaxTerm),
		DownPayment:   floatOr(form.Get(FieldDownPayment), DefaultDownPayment),
		MonthlySaving: monthlySaving(form),
	}
}

// monthlySaving prefers an explicit saving, then income minus expenses, then
// the fixed default.
func monthlySaving(form url.Values) float64 {
	if v, ok := parseLeadingFloat(form.Get(FieldMonthlySaving)); ok && v > 0 {
		return v
	}
	income, okIncome := parseLeadingFloat(form.Get(FieldMonthlyIncome))
	expenses, okExpenses := parseLeadingFloat(form.Get(FieldMonthlyExpenses))
	if okIncome && okExpenses && income-expenses > 0 {
		return income - expenses
	}
	return DefaultMonthlySaving
}

func intOr(raw string, fallback int) int {
	v, ok := parseLeadingInt(raw)
	if !ok || v <= 0 {
		return fallback
	}
	return v
}

func floatOr(raw string, fallback float64) float64 {
	v, ok := parseLeadingFloat(raw)
	if !ok || v <= 0 {
		return fallback
	}
	return v
}

// parseLeadingInt reads an optionally signed run of digits at the start of s,
// ignoring anything after it, so "2025 model" reads as 2025.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// parseLeadingFloat is parseLeadingInt with an optional fractional part.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var v float64
	digits := 0
	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		v = v*10 + float64(s[i]-'0')
		digits++
	}
	if i < len(s) && s[i] == '.' {
		scale := 0.1
		for i++; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			v += float64(s[i]-'0') * scale
			scale /= 10
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
