package client

import (
	"fmt"
	"strconv"

	"goal-planner/domain"
)

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string)
}

// ChartDrawer is a mount-point addressable chart target. Draw replaces
// whatever the mount point showed before.
type ChartDrawer interface {
	Draw(mount string, c Chart) error
	Clear(mount string)
}

// Directives is everything a result changes on the page.
type Directives struct {
	EstimatedDate    string
	DownPayment      string
	CarPrice         string
	Financing        FinancingPanel
	PromotionVisible bool
	Notice           string // empty when nothing should be announced
	Explanation      string
	Chart            *Chart // nil when there is nothing to plot
}

// Render maps a result and the request that produced it to page directives.
func Render(req domain.GoalRequest, res domain.GoalResult) Directives {
	d := Directives{
		EstimatedDate:    res.EstimatedDate,
		DownPayment:      formatAmount(res.DownPayment),
		CarPrice:         formatAmount(res.CarPrice),
		PromotionVisible: res.Promotion,
		Explanation:      res.Explanation,
	}

	if res.MonthlyPayment != nil && res.PaymentPeriod != nil {
		d.Financing = FinancingPanel{
			Visible:        true,
			MonthlyPayment: formatMoney(*res.MonthlyPayment),
			PaymentPeriod:  strconv.Itoa(*res.PaymentPeriod),
		}
	}

	if res.Promotion {
		d.Notice = PromotionNotice(req)
	}

	if len(res.TimeChart) > 0 {
		c := BuildChart(res.TimeChart, res.EstimatedDate)
		if !c.Empty() {
			d.Chart = &c
		}
	}
	return d
}

// PromotionNotice names the vehicle that is on sale.
func PromotionNotice(req domain.GoalRequest) string {
	return fmt.Sprintf("The %s car %s %d is on sale this month!", req.Condition(), req.Model, req.Year)
}

// Apply writes d into v, announces the notice and redraws the chart. A chart
// that fails to draw is cleared and reported; the other fields still show.
func (v *View) Apply(d Directives, notifier Notifier, charts ChartDrawer) error {
	v.show(d)
	if d.Notice != "" && notifier != nil {
		notifier.Notify(d.Notice)
	}
	return drawChart(charts, v.ChartMount, d.Chart)
}

// show copies the text and panel state of d into v.
func (v *View) show(d Directives) {
	v.ResultsVisible = true
	v.Error = ""
	v.EstimatedDate = d.EstimatedDate
	v.DownPayment = d.DownPayment
	v.CarPrice = d.CarPrice
	v.Financing = d.Financing
	v.PromotionVisible = d.PromotionVisible
	v.Explanation = d.Explanation
}

// drawChart draws c on mount, or clears mount when c is nil.
func drawChart(charts ChartDrawer, mount string, c *Chart) error {
	if charts == nil {
		return nil
	}
	if c == nil {
		charts.Clear(mount)
		return nil
	}
	if err := charts.Draw(mount, *c); err != nil {
		charts.Clear(mount)
		return fmt.Errorf("draw chart: %w", err)
	}
	return nil
}
