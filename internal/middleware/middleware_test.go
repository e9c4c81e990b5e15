package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		expectHandler  bool
	}{
		{name: "preflight", method: http.MethodOptions, expectedStatus: http.StatusNoContent, expectHandler: false},
		{name: "GET", method: http.MethodGet, expectedStatus: http.StatusOK, expectHandler: true},
		{name: "PATCH", method: http.MethodPatch, expectedStatus: http.StatusOK, expectHandler: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()

			CORS(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/products", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectHandler, called)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	const validAPIKey = "test-api-key-123"

	tests := []struct {
		name           string
		apiKey         string
		expectedStatus int
		expectHandler  bool
		expectedMsg    string
	}{
		{name: "valid key", apiKey: validAPIKey, expectedStatus: http.StatusOK, expectHandler: true},
		{name: "invalid key", apiKey: "invalid-key", expectedStatus: http.StatusUnauthorized, expectedMsg: "invalid API key"},
		{name: "key prefix only", apiKey: "test", expectedStatus: http.StatusUnauthorized, expectedMsg: "invalid API key"},
		{name: "missing key", apiKey: "", expectedStatus: http.StatusUnauthorized, expectedMsg: "missing API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			rec := httptest.NewRecorder()

			APIKeyAuth(validAPIKey, zerolog.Nop())(okHandler(&called)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectHandler, called)
			if tt.expectedMsg != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, model.ErrCodeUnauthorised, resp.Error)
				assert.Equal(t, tt.expectedMsg, resp.Message)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36, "a uuid is assigned")
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name          string
		handlerStatus int
		expectedLevel string
	}{
		{name: "success", handlerStatus: http.StatusOK, expectedLevel: "info"},
		{name: "client error", handlerStatus: http.StatusNotFound, expectedLevel: "info"},
		{name: "server error", handlerStatus: http.StatusInternalServerError, expectedLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)
			var ctxLoggerSet bool
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLoggerSet = zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte("hello"))
			})

			rec := httptest.NewRecorder()
			RequestID(Logging(logger)(testHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

			assert.Equal(t, tt.handlerStatus, rec.Code)
			assert.True(t, ctxLoggerSet)

			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.expectedLevel, line["level"])
			assert.Equal(t, "/api/cart", line["path"])
			assert.Equal(t, float64(tt.handlerStatus), line["status"])
			assert.Equal(t, float64(5), line["bytes"])
			assert.Equal(t, rec.Header().Get(RequestIDHeader), line["request_id"])
		})
	}
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name           string
		panicValue     interface{}
		expectedStatus int
	}{
		{name: "no panic", expectedStatus: http.StatusOK},
		{name: "panic with string", panicValue: "something went wrong", expectedStatus: http.StatusInternalServerError},
		{name: "panic with error", panicValue: assert.AnError, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.panicValue != nil {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			Recovery(zerolog.Nop())(testHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.panicValue != nil {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, model.ErrCodeInternalError, resp.Error)
			}
		})
	}
}
