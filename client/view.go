package client

// Control is the state of the submit button.
type Control struct {
	Disabled bool
	Label    string
}

// FinancingPanel shows the installment terms of a financed plan.
type FinancingPanel struct {
	Visible        bool
	MonthlyPayment string
	PaymentPeriod  string
}

// View is the presentation state of the goal page. Components write to it
// instead of to a concrete rendering surface.
type View struct {
	SubmitButton            Control
	FinancingOptionsVisible bool

	ResultsVisible   bool
	EstimatedDate    string
	DownPayment      string
	CarPrice         string
	Financing        FinancingPanel
	PromotionVisible bool
	Explanation      string
	Error            string

	// ChartMount addresses the chart on the ChartSurface.
	ChartMount string
}

// DefaultSubmitLabel and BusyLabel are the two submit button captions.
const (
	DefaultSubmitLabel = "Calculate"
	BusyLabel          = "Calculating..."
	DefaultChartMount  = "time-chart"
)

// NewView returns the initial page state.
func NewView() View {
	return View{
		SubmitButton: Control{Label: DefaultSubmitLabel},
		ChartMount:   DefaultChartMount,
	}
}
