package client

import (
	"time"

	"goal-planner/domain"
)

// PurchaseLabel marks the purchase point on the trajectory.
const PurchaseLabel = "Purchase"

// Annotation is a labeled point on the trajectory.
type Annotation struct {
	Index   int // position in Chart.X / Chart.Y
	Date    time.Time
	Savings float64
	Label   string
}

// Chart is a savings trajectory ready to be drawn as lines and markers.
type Chart struct {
	X        []time.Time
	Y        []float64
	Purchase *Annotation
}

// BuildChart projects points into parallel X/Y arrays and marks the first
// point dated on or after estimatedDate. Points with unparsable dates are
// left out. No purchase point is marked when estimatedDate is unparsable or
// every point precedes it. points is not modified.
func BuildChart(points []domain.ChartPoint, estimatedDate string) Chart {
	c := Chart{
		X: make([]time.Time, 0, len(points)),
		Y: make([]float64, 0, len(points)),
	}
	target, hasTarget := domain.ParseDate(estimatedDate)

	for _, p := range points {
		t, ok := p.Time()
		if !ok {
			continue
		}
		c.X = append(c.X, t)
		c.Y = append(c.Y, p.Savings)

		if hasTarget && c.Purchase == nil && !t.Before(target) {
			c.Purchase = &Annotation{
				Index:   len(c.X) - 1,
				Date:    t,
				Savings: p.Savings,
				Label:   PurchaseLabel,
			}
		}
	}
	return c
}

// Empty reports whether there is nothing to plot.
func (c Chart) Empty() bool {
	return len(c.X) == 0
}
