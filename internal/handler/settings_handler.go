package handler

import (
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

type SettingsStore interface {
	Settings() model.SiteSettings
	UpdateSettings(patch model.SettingsPatch) (model.SiteSettings, error)
	ToggleTheme() model.Theme
	ClaimPromoPopup() bool
}

// SettingsHandler serves site configuration and the storefront extras.
type SettingsHandler struct {
	store        SettingsStore
	interactions Interactor
	logger       zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(s SettingsStore, interactions Interactor, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:        s,
		interactions: interactions,
		logger:       logger.With().Str("handler", "settings").Logger(),
	}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

// Update handles PATCH /api/admin/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if !decodeJSON(w, r, &patch, h.logger) {
		return
	}

	settings, err := h.store.UpdateSettings(patch)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ToggleTheme handles POST /api/settings/theme.
func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.store.ToggleTheme()
	writeJSON(w, http.StatusOK, map[string]model.Theme{"theme": theme})
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// JoinNewsletter handles POST /api/newsletter.
func (h *SettingsHandler) JoinNewsletter(w http.ResponseWriter, r *http.Request) {
	var body newsletterRequest
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	if err := h.interactions.JoinNewsletter(r.Context(), body.Email); err != nil {
		writeInteractionError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"email": body.Email, "status": "subscribed"})
}

// ClaimPromo handles POST /api/promo/claim. Only the first call per store
// reports the popup as shown.
func (h *SettingsHandler) ClaimPromo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"show": h.store.ClaimPromoPopup()})
}
