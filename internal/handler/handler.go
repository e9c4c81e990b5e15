package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a store error to its HTTP status. Anything that is not
// a DomainError is reported as an internal error without details.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
		return
	}

	status := statusForKind(de.Kind)
	logger.Warn().Str("code", de.Code).Int("status", status).Msg(de.Message)
	writeJSON(w, status, model.ErrorResponse{
		Error:      de.Code,
		Message:    de.Message,
		Fields:     de.Fields,
		Shortfalls: de.Shortfalls,
	})
}

func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindStockExceeded, model.KindConflict:
		return http.StatusConflict
	case model.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case model.KindUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into v, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger zerolog.Logger) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// Interactor runs the shopper-facing operations that wait on a simulated delay.
type Interactor interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (model.Order, error)
	RequestRestock(ctx context.Context, productID, email string) (model.RestockRequest, error)
	JoinNewsletter(ctx context.Context, email string) error
}

// writeInteractionError drops responses for callers that went away and
// otherwise falls back to the domain mapping.
func writeInteractionError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Info().Err(err).Str("path", r.URL.Path).Msg("interaction abandoned")
		writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "REQUEST_CANCELLED",
			Message: "request was cancelled before completion",
		})
		return
	}
	writeDomainError(w, err, logger)
}

// orEmpty keeps empty listings encoded as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
