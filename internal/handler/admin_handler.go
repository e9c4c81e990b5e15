package handler

import (
	"context"
	"net/http"
	"strconv"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

const defaultArchiveLimit = 50

// Archive reads back audit entries persisted outside the store.
type Archive interface {
	Recent(ctx context.Context, limit int) ([]model.AdminLogEntry, error)
}

// AdminStore is the back-office view of the store.
type AdminStore interface {
	Users() []model.User
	UpdateUser(id string, patch model.UserPatch) (model.User, error)
	DeleteUser(id string) error
	RestockRequests() []model.RestockRequest
	MarkNotified(id string) (model.RestockRequest, error)
	AuditLog() []model.AdminLogEntry
	ClearAuditHistory() error
}

// AdminHandler serves user management, the restock registry and the audit log.
type AdminHandler struct {
	store   AdminStore
	archive Archive
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler. archive may be nil when no
// archive database is configured.
func NewAdminHandler(s AdminStore, archive Archive, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		store:   s,
		archive: archive,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.store.Users()))
}

// UpdateUser handles PATCH /api/admin/users/{id}.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch model.UserPatch
	if !decodeJSON(w, r, &patch, h.logger) {
		return
	}

	user, err := h.store.UpdateUser(r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteUser(r.PathValue("id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestockRequests handles GET /api/admin/restock.
func (h *AdminHandler) RestockRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.store.RestockRequests()))
}

// MarkNotified handles POST /api/admin/restock/{id}/notify.
func (h *AdminHandler) MarkNotified(w http.ResponseWriter, r *http.Request) {
	req, err := h.store.MarkNotified(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// AuditLog handles GET /api/admin/audit.
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.AuditLog())
}

// ClearAuditHistory handles POST /api/admin/audit/clear.
func (h *AdminHandler) ClearAuditHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAuditHistory(); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.store.AuditLog())
}

// ArchivedAudit handles GET /api/admin/audit/archive?limit=.
func (h *AdminHandler) ArchivedAudit(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, http.StatusNotFound, "ARCHIVE_DISABLED", "audit archive is not configured", h.logger)
		return
	}

	limit := defaultArchiveLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid limit parameter", h.logger)
			return
		}
		limit = n
	}

	entries, err := h.archive.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "ARCHIVE_UNAVAILABLE", "failed to read audit archive", h.logger)
		return
	}
	if entries == nil {
		entries = []model.AdminLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
