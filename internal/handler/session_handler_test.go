package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSessionHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           credentials
		expectedStatus int
		expectedRole   model.Role
	}{
		{name: "admin", body: credentials{Email: "admin@aura.pt", Password: "admin123"}, expectedStatus: http.StatusOK, expectedRole: model.RoleAdmin},
		{name: "email is case insensitive", body: credentials{Email: "ADMIN@aura.pt", Password: "admin123"}, expectedStatus: http.StatusOK, expectedRole: model.RoleAdmin},
		{name: "wrong password", body: credentials{Email: "admin@aura.pt", Password: "nope"}, expectedStatus: http.StatusUnauthorized},
		{name: "unknown email", body: credentials{Email: "ghost@aura.pt", Password: "admin123"}, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandler(newTestStore(t), zerolog.Nop())
			rec := httptest.NewRecorder()

			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/session/login", jsonBody(t, tt.body)))

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				resp := decodeSession(t, rec)
				require.NotNil(t, resp.User)
				assert.Equal(t, tt.expectedRole, resp.User.Role)
			}
		})
	}
}

func TestSessionHandler_RegisterProfileAndLogout(t *testing.T) {
	s := newTestStore(t)
	h := NewSessionHandler(s, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/session/register",
		jsonBody(t, credentials{Name: "Ana", Email: "ana@example.pt", Password: "segredo1"})))
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeSession(t, rec)
	require.NotNil(t, resp.User)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/session/register",
		jsonBody(t, credentials{Name: "Ana", Email: "ana@example.pt", Password: "segredo1"})))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateProfile(rec, httptest.NewRequest(http.MethodPatch, "/api/session/profile",
		jsonBody(t, map[string]interface{}{"name": "Ana Sofia"})))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateProfile(rec, httptest.NewRequest(http.MethodPatch, "/api/session/profile",
		jsonBody(t, map[string]interface{}{"points": 5000})))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Orders(rec, httptest.NewRequest(http.MethodGet, "/api/session/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/session/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeSession(t, rec).User)

	rec = httptest.NewRecorder()
	h.Orders(rec, httptest.NewRequest(http.MethodGet, "/api/session/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionHandler_ProviderCannotReachAdmin(t *testing.T) {
	h := NewSessionHandler(newTestStore(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.LoginWithProvider(rec, httptest.NewRequest(http.MethodPost, "/api/session/provider",
		jsonBody(t, credentials{Email: "admin@aura.pt"})))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.LoginWithProvider(rec, httptest.NewRequest(http.MethodPost, "/api/session/provider",
		jsonBody(t, credentials{Email: "rita@example.pt", Provider: "google"})))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Rita", resp.User.Name)
}

func TestSessionHandler_ToggleWishlist(t *testing.T) {
	h := NewSessionHandler(newTestStore(t), zerolog.Nop())

	toggle := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/session/wishlist/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.ToggleWishlist(rec, req)
		return rec
	}

	rec := toggle("P1")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp wishlistResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.InList)
	assert.Equal(t, []string{"P1"}, resp.Wishlist)

	rec = toggle("P1")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.InList)
	assert.Empty(t, resp.Wishlist)

	assert.Equal(t, http.StatusNotFound, toggle("P404").Code)

	rec = httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	assert.JSONEq(t, `{"user":null,"wishlist":[]}`, rec.Body.String())
}
