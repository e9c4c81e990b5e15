package store

import "aura-bijoux/internal/model"

// Snapshot is an immutable copy of the whole store. Version increases with
// every applied mutation; a view that sees the same or an older version
// again can skip rendering.
type Snapshot struct {
	Version               uint64                 `json:"version"`
	Products              []model.Product        `json:"products"`
	CriticalProductIDs    []string               `json:"criticalProductIds"`
	Cart                  model.CartView         `json:"cart"`
	CurrentUser           *model.User            `json:"currentUser,omitempty"`
	Wishlist              []string               `json:"wishlist"`
	Users                 []model.User           `json:"users"`
	Orders                []model.Order          `json:"orders"`
	RestockRequests       []model.RestockRequest `json:"restockRequests"`
	Posts                 []model.SocialPost     `json:"posts"`
	Accounts              []model.SocialAccount  `json:"accounts"`
	AuditLog              []model.AdminLogEntry  `json:"auditLog"`
	Settings              model.SiteSettings     `json:"settings"`
	PromoPopupShown       bool                   `json:"promoPopupShown"`
	NewsletterSubscribers []string               `json:"newsletterSubscribers"`
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every applied mutation.
// fn runs on the mutating goroutine after the store lock is released, so it
// may call back into the store. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubscriber
	s.nextSubscriber++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:               s.version,
		Products:              make([]model.Product, 0, len(s.products)),
		CriticalProductIDs:    []string{},
		Cart:                  s.cartViewLocked(),
		Wishlist:              append([]string{}, s.wishlistLocked()...),
		Users:                 make([]model.User, 0, len(s.users)),
		Orders:                make([]model.Order, 0, len(s.orders)),
		RestockRequests:       make([]model.RestockRequest, 0, len(s.restock)),
		Posts:                 make([]model.SocialPost, 0, len(s.posts)),
		Accounts:              make([]model.SocialAccount, 0, len(s.accounts)),
		AuditLog:              s.auditLogLocked(),
		Settings:              s.settings,
		PromoPopupShown:       s.promoShown,
		NewsletterSubscribers: append([]string{}, s.newsletter...),
	}
	for _, p := range s.products {
		snap.Products = append(snap.Products, p.Clone())
		if IsCritical(*p, s.settings.StockAlertThreshold) {
			snap.CriticalProductIDs = append(snap.CriticalProductIDs, p.ID)
		}
	}
	if u := s.sessionUserLocked(); u != nil {
		c := u.Clone()
		snap.CurrentUser = &c
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, u.Clone())
	}
	for _, o := range s.orders {
		snap.Orders = append(snap.Orders, o.Clone())
	}
	for _, r := range s.restock {
		snap.RestockRequests = append(snap.RestockRequests, copyRestock(*r))
	}
	for _, p := range s.posts {
		snap.Posts = append(snap.Posts, p.Clone())
	}
	for _, a := range s.accounts {
		snap.Accounts = append(snap.Accounts, *a)
	}
	return snap
}
