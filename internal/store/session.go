package store

import (
	"math"
	"strings"

	"aura-bijoux/internal/model"
)

const guestReviewer = "Visitante"

// AddReview attaches a review to a product and refreshes its rating to the
// mean of all reviews, rounded to one decimal.
func (s *Store) AddReview(productID string, input model.ReviewInput) (model.Review, error) {
	fields := make(map[string]string)
	if input.Rating < 1 || input.Rating > 5 {
		fields["rating"] = "rating must be between 1 and 5"
	}
	if strings.TrimSpace(input.Comment) == "" {
		fields["comment"] = "comment is required"
	}
	if len(fields) > 0 {
		return model.Review{}, model.NewValidationError(fields)
	}

	var review model.Review
	err := s.update(func() error {
		p := s.productLocked(productID)
		if p == nil {
			return model.ErrProductNotFound
		}

		review = model.Review{
			ID:        s.ids.NewID("REV"),
			ProductID: p.ID,
			UserName:  strings.TrimSpace(input.UserName),
			Rating:    input.Rating,
			Comment:   strings.TrimSpace(input.Comment),
			Date:      s.now(),
		}
		if u := s.sessionUserLocked(); u != nil {
			review.UserID = u.ID
			review.UserName = u.Name
		}
		if review.UserName == "" {
			review.UserName = guestReviewer
		}

		p.Reviews = append(p.Reviews, review)
		p.Rating = averageRating(p.Reviews)
		return nil
	})
	if err != nil {
		return model.Review{}, err
	}

	s.logger.Info().Str("product_id", productID).Int("rating", review.Rating).Msg("review added")
	return review, nil
}

func averageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return defaultRating
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

// ClaimPromoPopup reports whether the promotional popup may be shown. It
// returns true only the first time it is called on a store.
func (s *Store) ClaimPromoPopup() bool {
	var claimed bool
	_ = s.update(func() error {
		claimed = !s.promoShown
		s.promoShown = true
		return nil
	})
	return claimed
}

// SubscribeNewsletter adds email to the sign-up list. Signing up twice is
// harmless; added reports whether the address was new.
func (s *Store) SubscribeNewsletter(email string) (added bool, err error) {
	if err := validateEmail(email); err != nil {
		return false, err
	}
	email = normaliseEmail(email)

	err = s.update(func() error {
		if contains(s.newsletter, email) {
			return nil
		}
		s.newsletter = append(s.newsletter, email)
		added = true
		return nil
	})
	return added, err
}

// NewsletterSubscribers lists sign-ups in order.
func (s *Store) NewsletterSubscribers() []string {
	var out []string
	s.view(func() {
		out = append([]string{}, s.newsletter...)
	})
	return out
}
