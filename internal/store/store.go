package store

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// RestockNotifier delivers back-in-stock notices. Delivery is outside the store.
type RestockNotifier interface {
	NotifyRestock(ctx context.Context, product model.Product, requests []model.RestockRequest) error
}

// AuditSink receives every audit entry after the mutation that produced it
// has been applied.
type AuditSink interface {
	Record(ctx context.Context, entry model.AdminLogEntry) error
}

// AdminAccount is the fixed back-office login.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// Options configure a new Store.
type Options struct {
	// IDs assigns identifiers. Defaults to UUIDGenerator.
	IDs IDGenerator

	// Now is the store clock. Defaults to time.Now.
	Now func() time.Time

	// Admin is registered as the only administrator at start-up.
	Admin AdminAccount

	// Products seeds the catalogue.
	Products []model.Product

	// Notifier receives restock notices. Defaults to a logging notifier.
	Notifier RestockNotifier

	// AuditSink optionally mirrors audit entries.
	AuditSink AuditSink

	// PasswordCost is the bcrypt cost. Defaults to bcrypt.DefaultCost.
	PasswordCost int
}

// Store is the authoritative in-memory state of one storefront session.
// Every mutator validates first and either applies fully or not at all.
type Store struct {
	mu sync.Mutex

	ids          IDGenerator
	now          func() time.Time
	notifier     RestockNotifier
	auditSink    AuditSink
	passwordCost int
	logger       zerolog.Logger

	products       []*model.Product
	cart           []model.CartItem
	users          []*model.User
	sessionUserID  string
	guestWishlist  []string
	orders         []*model.Order
	restock        []*model.RestockRequest
	posts          []*model.SocialPost
	accounts       []*model.SocialAccount
	auditLog       []model.AdminLogEntry
	settings       model.SiteSettings
	promoShown     bool
	newsletter     []string
	version        uint64
	subscribers    map[int]func(Snapshot)
	nextSubscriber int
	pendingAudit   []model.AdminLogEntry
	pendingNotices []restockNotice
}

type restockNotice struct {
	product  model.Product
	requests []model.RestockRequest
}

// New creates a store seeded with the admin account and catalogue.
func New(opts Options, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		ids:          opts.IDs,
		now:          opts.Now,
		notifier:     opts.Notifier,
		auditSink:    opts.AuditSink,
		passwordCost: opts.PasswordCost,
		logger:       logger.With().Str("component", "store").Logger(),
		settings:     model.DefaultSiteSettings(),
		subscribers:  make(map[int]func(Snapshot)),
	}
	if s.ids == nil {
		s.ids = UUIDGenerator{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(logger)
	}
	if s.passwordCost == 0 {
		s.passwordCost = bcrypt.DefaultCost
	}

	if opts.Admin.Email != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.Admin.Password), s.passwordCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		name := opts.Admin.Name
		if name == "" {
			name = "Admin"
		}
		s.users = append(s.users, &model.User{
			ID:           s.ids.NewID("USR"),
			Name:         name,
			Email:        normaliseEmail(opts.Admin.Email),
			Role:         model.RoleAdmin,
			PasswordHash: hash,
			CreatedAt:    s.now(),
		})
	}

	seen := make(map[string]bool, len(opts.Products))
	for i := range opts.Products {
		p := opts.Products[i].Clone()
		if p.ID == "" {
			p.ID = s.ids.NewID("PRD")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %q in seed", p.ID)
		}
		seen[p.ID] = true
		if err := validateSeedProduct(p); err != nil {
			return nil, fmt.Errorf("invalid seed product %q: %w", p.ID, err)
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now()
		}
		s.products = append(s.products, &p)
	}

	s.logger.Info().
		Int("products", len(s.products)).
		Int("users", len(s.users)).
		Msg("store initialised")

	return s, nil
}

// update runs fn under the writer lock. When fn succeeds the version is bumped,
// subscribers receive the new snapshot, and queued audit entries and restock
// notices are dispatched outside the lock.
func (s *Store) update(fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.pendingAudit = nil
		s.pendingNotices = nil
		s.mu.Unlock()
		return err
	}
	s.version++
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	audit := s.pendingAudit
	notices := s.pendingNotices
	s.pendingAudit = nil
	s.pendingNotices = nil
	s.mu.Unlock()

	s.dispatch(audit, notices)
	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

func (s *Store) dispatch(audit []model.AdminLogEntry, notices []restockNotice) {
	ctx := context.Background()
	if s.auditSink != nil {
		for _, entry := range audit {
			if err := s.auditSink.Record(ctx, entry); err != nil {
				s.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to archive audit entry")
			}
		}
	}
	for _, n := range notices {
		if err := s.notifier.NotifyRestock(ctx, n.product, n.requests); err != nil {
			s.logger.Error().
				Err(err).
				Str("product_id", n.product.ID).
				Int("requests", len(n.requests)).
				Msg("failed to deliver restock notices")
		}
	}
}

// view runs fn under the lock without publishing.
func (s *Store) view(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// addClamped returns a+b, saturating at the int bounds instead of wrapping.
func addClamped(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
