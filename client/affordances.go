package client

import (
	"context"
	"net/url"

	"goal-planner/domain"
)

// SaveAcknowledgement is shown after the save action.
const SaveAcknowledgement = "Data saved successfully!"

// Saver keeps a goal on the collaborator side.
type Saver interface {
	SaveGoal(ctx context.Context, req domain.GoalRequest) (string, error)
}

// SubmitForm normalizes form and submits it.
func (c *Controller) SubmitForm(ctx context.Context, form url.Values) error {
	return c.Submit(ctx, Normalize(form))
}

// SelectPaymentMethod shows the financing options only for financing.
func (c *Controller) SelectPaymentMethod(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.FinancingOptionsVisible = domain.PaymentMethod(method) == domain.PaymentFinancing
}

// Save acknowledges the save action. With a Saver configured the normalized
// goal is forwarded first; a failure there is reported instead of the
// acknowledgement.
func (c *Controller) Save(ctx context.Context, form url.Values) error {
	if c.saver != nil {
		if _, err := c.saver.SaveGoal(ctx, Normalize(form)); err != nil {
			se := asSubmitError(err)
			c.notify("Error: " + se.UserMessage())
			return se
		}
	}
	c.notify(SaveAcknowledgement)
	return nil
}

func (c *Controller) notify(msg string) {
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}
