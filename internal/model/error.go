package model

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	Shortfalls []StockShortfall  `json:"shortfalls,omitempty"`
}

// ErrorKind classifies domain errors so surfaces can decide how to present them.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindStockExceeded     ErrorKind = "stock_exceeded"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindUnauthorised      ErrorKind = "unauthorised"
	KindConflict          ErrorKind = "conflict"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeCartItemNotFound  = "CART_ITEM_NOT_FOUND"
	ErrCodePostNotFound      = "POST_NOT_FOUND"
	ErrCodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	ErrCodeRestockNotFound   = "RESTOCK_REQUEST_NOT_FOUND"
	ErrCodeStockExceeded     = "STOCK_EXCEEDED"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidLogin      = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// StockShortfall describes a line whose quantity is above the live stock.
type StockShortfall struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// DomainError is returned by every store operation that rejects its input.
type DomainError struct {
	Kind       ErrorKind
	Code       string
	Message    string
	Fields     map[string]string
	Shortfalls []StockShortfall
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// Is matches on Code when the target carries one, otherwise on Kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Code != "" {
		return t.Code == e.Code
	}
	return t.Kind == e.Kind
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying per-field messages.
func NewValidationError(fields map[string]string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    ErrCodeValidation,
		Message: "Invalid input",
		Fields:  fields,
	}
}

// NewStockExceededError reports every line above the live stock.
func NewStockExceededError(shortfalls []StockShortfall) *DomainError {
	return &DomainError{
		Kind:       KindStockExceeded,
		Code:       ErrCodeStockExceeded,
		Message:    "Requested quantity exceeds available stock",
		Shortfalls: shortfalls,
	}
}

// Kind sentinels, usable with errors.Is.
var (
	ErrValidation        = &DomainError{Kind: KindValidation}
	ErrNotFound          = &DomainError{Kind: KindNotFound}
	ErrStockExceeded     = &DomainError{Kind: KindStockExceeded}
	ErrInvalidTransition = &DomainError{Kind: KindInvalidTransition}
	ErrUnauthorised      = &DomainError{Kind: KindUnauthorised}
	ErrConflict          = &DomainError{Kind: KindConflict}
)

// Common domain errors
var (
	ErrProductNotFound  = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrUserNotFound     = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found")
	ErrOrderNotFound    = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrCartItemNotFound = NewDomainError(KindNotFound, ErrCodeCartItemNotFound, "Product is not in the cart")
	ErrPostNotFound     = NewDomainError(KindNotFound, ErrCodePostNotFound, "Social post not found")
	ErrAccountNotFound  = NewDomainError(KindNotFound, ErrCodeAccountNotFound, "Social account not found")
	ErrRestockNotFound  = NewDomainError(KindNotFound, ErrCodeRestockNotFound, "Restock request not found")
	ErrEmptyCart        = NewDomainError(KindValidation, ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidLogin     = NewDomainError(KindUnauthorised, ErrCodeInvalidLogin, "Invalid credentials")
	ErrEmailTaken       = NewDomainError(KindConflict, ErrCodeEmailTaken, "Email is already registered")
)
