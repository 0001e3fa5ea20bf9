package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"goal-planner/client"
)

func TestPrintView(t *testing.T) {
	v := client.NewView()
	v.EstimatedDate = "2026-01-01"
	v.DownPayment = "20,000"
	v.CarPrice = "80,000"

	var buf bytes.Buffer
	printView(&buf, v)

	assert.Contains(t, buf.String(), "Estimated purchase date: 2026-01-01")
	assert.Contains(t, buf.String(), "Car price:               80,000")
	assert.NotContains(t, buf.String(), "Monthly payment")
	assert.NotContains(t, buf.String(), "Promotion")

	v.Financing = client.FinancingPanel{Visible: true, MonthlyPayment: "1,250.50", PaymentPeriod: "48"}
	v.PromotionVisible = true
	buf.Reset()
	printView(&buf, v)

	assert.Contains(t, buf.String(), "Monthly payment:         1,250.50")
	assert.Contains(t, buf.String(), "Payment period (months): 48")
	assert.Contains(t, buf.String(), "Promotion:               yes")
}
