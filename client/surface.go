package client

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
)

// Drawing is what a mount point currently shows.
type Drawing struct {
	Chart Chart
	PNG   []byte
}

// ChartSurface renders charts to PNG and keeps the latest drawing per mount
// point.
type ChartSurface struct {
	mu     sync.Mutex
	mounts map[string]Drawing
	width  int
	height int
}

func NewChartSurface(width, height int) *ChartSurface {
	if width <= 0 {
		width = 960
	}
	if height <= 0 {
		height = 480
	}
	return &ChartSurface{
		mounts: make(map[string]Drawing),
		width:  width,
		height: height,
	}
}

// Draw renders c and replaces the previous drawing on mount.
func (s *ChartSurface) Draw(mount string, c Chart) error {
	if c.Empty() {
		return errors.New("chart has no points")
	}

	var buf bytes.Buffer
	if err := s.plot(c).Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s: %w", mount, err)
	}

	s.mu.Lock()
	s.mounts[mount] = Drawing{Chart: c, PNG: buf.Bytes()}
	s.mu.Unlock()
	return nil
}

// Clear removes whatever mount shows.
func (s *ChartSurface) Clear(mount string) {
	s.mu.Lock()
	delete(s.mounts, mount)
	s.mu.Unlock()
}

// Drawing returns the current drawing on mount.
func (s *ChartSurface) Drawing(mount string) (Drawing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.mounts[mount]
	return d, ok
}

// WritePNG copies the PNG on mount to w.
func (s *ChartSurface) WritePNG(mount string, w io.Writer) error {
	d, ok := s.Drawing(mount)
	if !ok {
		return fmt.Errorf("nothing drawn on %q", mount)
	}
	_, err := w.Write(d.PNG)
	return err
}

func (s *ChartSurface) plot(c Chart) chart.Chart {
	series := []chart.Series{
		chart.TimeSeries{
			Name: "Savings",
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorBlue,
				DotWidth:    3,
				DotColor:    chart.ColorBlue,
			},
			XValues: c.X,
			YValues: c.Y,
		},
	}
	if c.Purchase != nil {
		series = append(series, chart.AnnotationSeries{
			Name: c.Purchase.Label,
			Annotations: []chart.Value2{{
				XValue: chart.TimeToFloat64(c.Purchase.Date),
				YValue: c.Purchase.Savings,
				Label:  c.Purchase.Label,
			}},
		})
	}

	xMin, xMax := c.X[0], c.X[len(c.X)-1]
	if !xMax.After(xMin) {
		// A single instant has no width; pad it by a month each side.
		xMin, xMax = xMin.AddDate(0, -1, 0), xMax.AddDate(0, 1, 0)
	}
	yMin, yMax := c.Y[0], c.Y[0]
	for _, y := range c.Y {
		yMin = min(yMin, y)
		yMax = max(yMax, y)
	}
	if yMax == yMin {
		yMin, yMax = yMin-1, yMax+1
	}

	return chart.Chart{
		Title:  "Savings Progress",
		Width:  s.width,
		Height: s.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 60, Right: 40, Bottom: 60},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(xMin),
				Max: chart.TimeToFloat64(xMax),
			},
		},
		YAxis: chart.YAxis{
			Name: "Savings ($)",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return formatAmount(f)
				}
				return ""
			},
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}
}

var _ ChartDrawer = (*ChartSurface)(nil)
