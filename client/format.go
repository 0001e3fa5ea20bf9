package client

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// formatAmount groups thousands and drops the fraction: 20000 -> "20,000".
func formatAmount(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// formatMoney keeps cents: 1250.5 -> "1,250.50".
func formatMoney(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
