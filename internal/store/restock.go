package store

import (
	"context"
	"fmt"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

// SubscribeRestock records a request to be told when the product is back in
// stock. A pending request for the same product and email is returned as is,
// with created set to false.
func (s *Store) SubscribeRestock(productID, email string) (req model.RestockRequest, created bool, err error) {
	if err := validateEmail(email); err != nil {
		return model.RestockRequest{}, false, err
	}
	email = normaliseEmail(email)

	err = s.update(func() error {
		if s.productLocked(productID) == nil {
			return model.ErrProductNotFound
		}
		for _, r := range s.restock {
			if r.ProductID == productID && r.Email == email && r.Status == model.RestockPending {
				req = copyRestock(*r)
				return nil
			}
		}
		r := &model.RestockRequest{
			ID:        s.ids.NewID("RST"),
			ProductID: productID,
			Email:     email,
			CreatedAt: s.now(),
			Status:    model.RestockPending,
		}
		s.restock = append(s.restock, r)
		req = copyRestock(*r)
		created = true
		return nil
	})
	if err != nil {
		return model.RestockRequest{}, false, err
	}

	if created {
		s.logger.Info().Str("product_id", productID).Str("request_id", req.ID).Msg("restock request recorded")
	}
	return req, created, nil
}

// RestockRequests lists every request in creation order.
func (s *Store) RestockRequests() []model.RestockRequest {
	var out []model.RestockRequest
	s.view(func() {
		for _, r := range s.restock {
			out = append(out, copyRestock(*r))
		}
	})
	return out
}

// MarkNotified flags a request as handled. Already notified requests are left alone.
func (s *Store) MarkNotified(id string) (model.RestockRequest, error) {
	var out model.RestockRequest
	err := s.update(func() error {
		var r *model.RestockRequest
		for _, candidate := range s.restock {
			if candidate.ID == id {
				r = candidate
				break
			}
		}
		if r == nil {
			return model.ErrRestockNotFound
		}
		if r.Status == model.RestockPending {
			now := s.now()
			r.Status = model.RestockNotified
			r.NotifiedAt = &now
			s.appendAuditLocked(model.TargetRestock,
				"Restock request marked as notified",
				fmt.Sprintf("Request: %s | Product: %s | Email: %s", r.ID, r.ProductID, r.Email))
		}
		out = copyRestock(*r)
		return nil
	})
	return out, err
}

// notifyRestockLocked flips every pending request of p to notified and queues
// the notice for delivery once the lock is released.
func (s *Store) notifyRestockLocked(p *model.Product) {
	var notified []model.RestockRequest
	now := s.now()
	for _, r := range s.restock {
		if r.ProductID != p.ID || r.Status != model.RestockPending {
			continue
		}
		r.Status = model.RestockNotified
		r.NotifiedAt = &now
		notified = append(notified, copyRestock(*r))
	}
	if len(notified) == 0 {
		return
	}
	s.pendingNotices = append(s.pendingNotices, restockNotice{product: p.Clone(), requests: notified})
}

func copyRestock(r model.RestockRequest) model.RestockRequest {
	if r.NotifiedAt != nil {
		t := *r.NotifiedAt
		r.NotifiedAt = &t
	}
	return r
}

// LogNotifier records restock notices in the log instead of sending them.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "restock-notifier").Logger()}
}

// NotifyRestock logs one line per request.
func (n *LogNotifier) NotifyRestock(_ context.Context, product model.Product, requests []model.RestockRequest) error {
	for _, r := range requests {
		n.logger.Info().
			Str("product_id", product.ID).
			Str("product", product.Name).
			Int("stock", product.Stock).
			Str("email", r.Email).
			Msg("back in stock notice")
	}
	return nil
}
