package handler

import (
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

// SocialStore is the social commerce registry.
type SocialStore interface {
	PublicFeed() []model.SocialPost
	ShopTheLook(postID string) ([]model.Product, error)
	AdminPosts() []model.SocialPost
	AddPost(input model.SocialPostInput) (model.SocialPost, error)
	UpdatePost(id string, patch model.SocialPostPatch) (model.SocialPost, error)
	DeletePost(id string) error
	Accounts() []model.SocialAccount
	AddAccount(input model.SocialAccountInput) (model.SocialAccount, error)
	DeleteAccount(id string) error
}

// SocialHandler serves the shoppable feed and its moderation.
type SocialHandler struct {
	store  SocialStore
	logger zerolog.Logger
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(s SocialStore, logger zerolog.Logger) *SocialHandler {
	return &SocialHandler{
		store:  s,
		logger: logger.With().Str("handler", "social").Logger(),
	}
}

// Feed handles GET /api/feed.
func (h *SocialHandler) Feed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.store.PublicFeed()))
}

// ShopTheLook handles GET /api/feed/{id}/products.
func (h *SocialHandler) ShopTheLook(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ShopTheLook(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Posts handles GET /api/admin/social/posts.
func (h *SocialHandler) Posts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.store.AdminPosts()))
}

// AddPost handles POST /api/admin/social/posts.
func (h *SocialHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	var input model.SocialPostInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	post, err := h.store.AddPost(input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PATCH /api/admin/social/posts/{id}.
func (h *SocialHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var patch model.SocialPostPatch
	if !decodeJSON(w, r, &patch, h.logger) {
		return
	}

	post, err := h.store.UpdatePost(r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/admin/social/posts/{id}.
func (h *SocialHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePost(r.PathValue("id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Accounts handles GET /api/admin/social/accounts.
func (h *SocialHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.store.Accounts()))
}

// AddAccount handles POST /api/admin/social/accounts.
func (h *SocialHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var input model.SocialAccountInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	account, err := h.store.AddAccount(input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// DeleteAccount handles DELETE /api/admin/social/accounts/{id}.
func (h *SocialHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAccount(r.PathValue("id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
