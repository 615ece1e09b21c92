package orders

import (
	"context"
	"errors"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
)

// Processor routes storefront order events to the matcher and the
// lifecycle driver. Unknown statuses are acknowledged and dropped; a
// returned error means the broker should redeliver.
type Processor struct {
	dispatch  DispatchPort
	lifecycle LifecyclePort
	factory   *actionFactory
}

// NewProcessor creates a new orders.Processor
func NewProcessor(dispatch DispatchPort, lifecycle LifecyclePort) *Processor {
	p := &Processor{
		dispatch:  dispatch,
		lifecycle: lifecycle,
	}
	p.factory = newActionFactory(p.onCreated, p.onCancelled, p.onPaid)
	return p
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	err := p.dispatch.MaybeDispatch(ctx, e.OrderID)
	if errors.Is(err, apperr.NotFound) {
		// Event for a row that never appeared; redelivery will not help.
		return nil
	}
	return err
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	err := p.lifecycle.Cancel(ctx, e.OrderID)
	if errors.Is(err, apperr.NotFound) || errors.Is(err, apperr.Conflict) {
		return nil
	}
	return err
}

func (p *Processor) onPaid(ctx context.Context, e Event) error {
	_, err := p.lifecycle.ApplyAction(ctx, e.OrderID, domain.ActionToPaid)
	if errors.Is(err, apperr.NotFound) {
		return nil
	}
	return err
}
