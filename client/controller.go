package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"goal-planner/domain"
)

// Submitter sends a goal to the compute collaborator.
type Submitter interface {
	Submit(ctx context.Context, req domain.GoalRequest) (domain.GoalResult, error)
}

// State of a Controller.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures a Controller.
type Options struct {
	// Timeout bounds one submission. Zero waits for as long as ctx allows.
	Timeout time.Duration
	// OnControl is called with the submit button state every time it changes.
	OnControl func(Control)
	Saver     Saver
	Logger    *slog.Logger
}

// Controller runs at most one submission at a time and keeps the page View
// in sync with it.
type Controller struct {
	mu        sync.Mutex
	state     State
	view      View
	submitter Submitter
	notifier  Notifier
	charts    ChartDrawer
	saver     Saver
	timeout   time.Duration
	onControl func(Control)
	log       *slog.Logger
}

// NewController builds an idle controller. notifier and charts may be nil.
func NewController(submitter Submitter, notifier Notifier, charts ChartDrawer, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		view:      NewView(),
		submitter: submitter,
		notifier:  notifier,
		charts:    charts,
		saver:     opts.Saver,
		timeout:   opts.Timeout,
		onControl: opts.OnControl,
		log:       log,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a copy of the page state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Submit sends req and renders the outcome. It returns ErrSubmissionInFlight
// without side effects when a submission is already pending, and a
// *SubmitError when the submission failed. The submit button is disabled
// before the request is issued and re-enabled once it settles, on every path.
// Observers and the chart are called without the controller lock held, so
// they may read State and View.
func (c *Controller) Submit(ctx context.Context, req domain.GoalRequest) (err error) {
	label, ok := c.begin()
	if !ok {
		return ErrSubmissionInFlight
	}

	var result domain.GoalResult
	defer func() {
		if r := recover(); r != nil {
			err = &SubmitError{Kind: KindInternal, Err: fmt.Errorf("panic: %v", r)}
		}
		c.finish(label, req, result, err)
	}()
	c.emitControl(Control{Disabled: true, Label: BusyLabel})

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err = c.submitter.Submit(callCtx, req)
	if err != nil {
		se := asSubmitError(err)
		if errors.Is(err, context.DeadlineExceeded) && se.Kind == KindTransport {
			se.Kind = KindTimeout
		}
		return se
	}
	return nil
}

// begin moves to Submitting and disables the button in the view. The
// returned label is the caption to restore.
func (c *Controller) begin() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return "", false
	}
	c.state = StateSubmitting
	label := c.view.SubmitButton.Label
	c.view.SubmitButton = Control{Disabled: true, Label: BusyLabel}
	return label, true
}

// finish renders a successful result, then settles the state and re-enables
// the button. The state stays Submitting while the chart is drawn.
func (c *Controller) finish(label string, req domain.GoalRequest, result domain.GoalResult, err error) {
	var notice string
	if err == nil {
		var drawErr error
		notice, drawErr = c.render(req, result)
		if drawErr != nil {
			c.log.Warn("chart skipped", "err", drawErr)
		}
	}

	ctl, failure := c.settle(label, err)
	c.emitControl(ctl)

	if failure != "" {
		notice = "Error: " + failure
	}
	if notice != "" && c.notifier != nil {
		c.notifier.Notify(notice)
	}
}

// render shows the result fields under the lock and draws the chart after
// releasing it.
func (c *Controller) render(req domain.GoalRequest, result domain.GoalResult) (notice string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()

	d := Render(req, result)
	c.mu.Lock()
	c.view.show(d)
	mount := c.view.ChartMount
	c.mu.Unlock()

	return d.Notice, drawChart(c.charts, mount, d.Chart)
}

// settle records the outcome and re-enables the button in the view. It
// returns the control to announce and the user message of a failure.
func (c *Controller) settle(label string, err error) (Control, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctl := Control{Disabled: false, Label: label}
	c.view.SubmitButton = ctl

	if err != nil {
		se := asSubmitError(err)
		c.state = StateFailed
		c.view.Error = se.UserMessage()
		c.log.Warn("goal submission failed", "kind", se.Kind, "err", se)
		return ctl, se.UserMessage()
	}
	c.state = StateSucceeded
	return ctl, ""
}

// emitControl tells the observer about a button change. A panicking observer
// is logged and otherwise ignored.
func (c *Controller) emitControl(ctl Control) {
	if c.onControl == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("control observer panicked", "panic", r)
		}
	}()
	c.onControl(ctl)
}
