package router

import (
	"net/http"

	"aura-bijoux/internal/handler"
	"aura-bijoux/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Session  *handler.SessionHandler
	Orders   *handler.OrderHandler
	Admin    *handler.AdminHandler
	Social   *handler.SocialHandler
	Settings *handler.SettingsHandler
}

// New creates the HTTP router. Storefront routes are public; everything under
// /api/admin/ requires the API key.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	// Storefront
	mux.HandleFunc("GET /api/products", h.Catalog.List)
	mux.HandleFunc("GET /api/products/{id}", h.Catalog.Get)
	mux.HandleFunc("POST /api/products/{id}/reviews", h.Catalog.AddReview)
	mux.HandleFunc("POST /api/products/{id}/restock", h.Catalog.RequestRestock)

	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("POST /api/cart", h.Cart.Add)
	mux.HandleFunc("DELETE /api/cart", h.Cart.Clear)
	mux.HandleFunc("PUT /api/cart/{productId}", h.Cart.Update)
	mux.HandleFunc("DELETE /api/cart/{productId}", h.Cart.Remove)

	mux.HandleFunc("GET /api/session", h.Session.Current)
	mux.HandleFunc("POST /api/session/login", h.Session.Login)
	mux.HandleFunc("POST /api/session/provider", h.Session.LoginWithProvider)
	mux.HandleFunc("POST /api/session/register", h.Session.Register)
	mux.HandleFunc("POST /api/session/logout", h.Session.Logout)
	mux.HandleFunc("PATCH /api/session/profile", h.Session.UpdateProfile)
	mux.HandleFunc("GET /api/session/orders", h.Session.Orders)
	mux.HandleFunc("POST /api/session/wishlist/{id}", h.Session.ToggleWishlist)

	mux.HandleFunc("POST /api/checkout", h.Orders.Checkout)

	mux.HandleFunc("GET /api/feed", h.Social.Feed)
	mux.HandleFunc("GET /api/feed/{id}/products", h.Social.ShopTheLook)

	mux.HandleFunc("GET /api/settings", h.Settings.Get)
	mux.HandleFunc("POST /api/settings/theme", h.Settings.ToggleTheme)
	mux.HandleFunc("POST /api/newsletter", h.Settings.JoinNewsletter)
	mux.HandleFunc("POST /api/promo/claim", h.Settings.ClaimPromo)

	// Back office
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/products/critical", h.Catalog.Critical)
	admin.HandleFunc("POST /api/admin/products", h.Catalog.Create)
	admin.HandleFunc("PUT /api/admin/products/{id}", h.Catalog.Update)
	admin.HandleFunc("DELETE /api/admin/products/{id}", h.Catalog.Delete)
	admin.HandleFunc("POST /api/admin/products/{id}/stock", h.Catalog.AdjustStock)

	admin.HandleFunc("GET /api/admin/orders", h.Orders.List)
	admin.HandleFunc("GET /api/admin/orders/{id}", h.Orders.Get)
	admin.HandleFunc("PUT /api/admin/orders/{id}/status", h.Orders.UpdateStatus)

	admin.HandleFunc("GET /api/admin/users", h.Admin.Users)
	admin.HandleFunc("PATCH /api/admin/users/{id}", h.Admin.UpdateUser)
	admin.HandleFunc("DELETE /api/admin/users/{id}", h.Admin.DeleteUser)

	admin.HandleFunc("GET /api/admin/restock", h.Admin.RestockRequests)
	admin.HandleFunc("POST /api/admin/restock/{id}/notify", h.Admin.MarkNotified)

	admin.HandleFunc("GET /api/admin/audit", h.Admin.AuditLog)
	admin.HandleFunc("POST /api/admin/audit/clear", h.Admin.ClearAuditHistory)
	admin.HandleFunc("GET /api/admin/audit/archive", h.Admin.ArchivedAudit)

	admin.HandleFunc("GET /api/admin/social/posts", h.Social.Posts)
	admin.HandleFunc("POST /api/admin/social/posts", h.Social.AddPost)
	admin.HandleFunc("PATCH /api/admin/social/posts/{id}", h.Social.UpdatePost)
	admin.HandleFunc("DELETE /api/admin/social/posts/{id}", h.Social.DeletePost)
	admin.HandleFunc("GET /api/admin/social/accounts", h.Social.Accounts)
	admin.HandleFunc("POST /api/admin/social/accounts", h.Social.AddAccount)
	admin.HandleFunc("DELETE /api/admin/social/accounts/{id}", h.Social.DeleteAccount)

	admin.HandleFunc("PATCH /api/admin/settings", h.Settings.Update)

	mux.Handle("/api/admin/", middleware.APIKeyAuth(apiKey, logger)(admin))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.RequestID(root)
	root = middleware.Recovery(logger)(root)

	return root
}
