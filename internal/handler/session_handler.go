package handler

import (
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

type SessionStore interface {
	Login(email, password string) (model.User, error)
	LoginWithProvider(provider, email string) (model.User, error)
	Register(name, email, password string) (model.User, error)
	Logout()
	CurrentUser() (model.User, bool)
	UpdateProfile(patch model.UserPatch) (model.User, error)
	Orders(filter model.OrderFilter) []model.Order
	ToggleWishlist(productID string) (bool, error)
	Wishlist() []string
}

// SessionHandler serves login, registration, the profile and the wishlist.
type SessionHandler struct {
	store  SessionStore
	logger zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(s SessionStore, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		store:  s,
		logger: logger.With().Str("handler", "session").Logger(),
	}
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Provider string `json:"provider,omitempty"`
}

type sessionResponse struct {
	User     *model.User `json:"user"`
	Wishlist []string    `json:"wishlist"`
}

func (h *SessionHandler) session() sessionResponse {
	resp := sessionResponse{Wishlist: h.store.Wishlist()}
	if u, ok := h.store.CurrentUser(); ok {
		resp.User = &u
	}
	if resp.Wishlist == nil {
		resp.Wishlist = []string{}
	}
	return resp
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session())
}

// Login handles POST /api/session/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	if _, err := h.store.Login(body.Email, body.Password); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.session())
}

// LoginWithProvider handles POST /api/session/provider.
func (h *SessionHandler) LoginWithProvider(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}
	if body.Provider == "" {
		body.Provider = "google"
	}

	if _, err := h.store.LoginWithProvider(body.Provider, body.Email); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.session())
}

// Register handles POST /api/session/register.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	if _, err := h.store.Register(body.Name, body.Email, body.Password); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, h.session())
}

// Logout handles POST /api/session/logout.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()
	writeJSON(w, http.StatusOK, h.session())
}

// UpdateProfile handles PATCH /api/session/profile.
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.UserPatch
	if !decodeJSON(w, r, &patch, h.logger) {
		return
	}

	user, err := h.store.UpdateProfile(patch)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Orders handles GET /api/session/orders, the session user's order history.
func (h *SessionHandler) Orders(w http.ResponseWriter, r *http.Request) {
	u, ok := h.store.CurrentUser()
	if !ok {
		writeDomainError(w, model.NewDomainError(model.KindUnauthorised, model.ErrCodeUnauthorised, "No active session"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(h.store.Orders(model.OrderFilter{UserID: u.ID})))
}

type wishlistResponse struct {
	ProductID string   `json:"productId"`
	InList    bool     `json:"inWishlist"`
	Wishlist  []string `json:"wishlist"`
}

// ToggleWishlist handles POST /api/session/wishlist/{id}.
func (h *SessionHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	member, err := h.store.ToggleWishlist(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlistResponse{ProductID: id, InList: member, Wishlist: h.store.Wishlist()})
}
