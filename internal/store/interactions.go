package store

import (
	"context"
	"time"

	"aura-bijoux/internal/model"
	"aura-bijoux/internal/task"
)

// Delays are the simulated latencies of interactive operations.
type Delays struct {
	Checkout time.Duration
	Submit   time.Duration
}

// Interactions wraps store operations that a shopper triggers and waits for.
// A repeated trigger while the first is still pending joins it instead of
// running again. Once every waiting trigger has cancelled its ctx the
// operation is dropped and the store is left as it was.
type Interactions struct {
	store  *Store
	runner *task.Runner
	delays Delays
}

// NewInteractions creates the interaction layer over s.
func NewInteractions(s *Store, runner *task.Runner, delays Delays) *Interactions {
	return &Interactions{store: s, runner: runner, delays: delays}
}

// Checkout places the order after the processing delay.
func (i *Interactions) Checkout(ctx context.Context, req model.CheckoutRequest) (model.Order, error) {
	order, _, err := task.Run(ctx, i.runner, "checkout", i.delays.Checkout, func() (model.Order, error) {
		return i.store.PlaceOrder(req)
	})
	return order, err
}

// RequestRestock subscribes email to a product after the submitting delay.
func (i *Interactions) RequestRestock(ctx context.Context, productID, email string) (model.RestockRequest, error) {
	key := "restock:" + productID + ":" + normaliseEmail(email)
	req, _, err := task.Run(ctx, i.runner, key, i.delays.Submit, func() (model.RestockRequest, error) {
		r, _, err := i.store.SubscribeRestock(productID, email)
		return r, err
	})
	return req, err
}

// JoinNewsletter signs email up after the submitting delay.
func (i *Interactions) JoinNewsletter(ctx context.Context, email string) error {
	_, _, err := task.Run(ctx, i.runner, "newsletter:"+normaliseEmail(email), i.delays.Submit, func() (bool, error) {
		return i.store.SubscribeNewsletter(email)
	})
	return err
}
