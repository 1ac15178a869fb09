package handlers

import (
	"net/http"

	"github.com/savioss/FreeSupplierBuyer/web"
)

// NewRouter registers every route. limiter guards the form posts and may
// be nil; metrics is served on /metrics when non-nil.
func NewRouter(h *MarketHandler, limiter *RateLimiter, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	withWorkspace := WorkspaceMiddleware(h.Market, h.SessionStore)

	page := func(fn http.HandlerFunc) http.Handler {
		return withWorkspace(fn)
	}
	post := func(fn http.HandlerFunc) http.Handler {
		if limiter != nil {
			fn = limiter.Middleware(fn)
		}
		return withWorkspace(fn)
	}

	mux.Handle("GET /static/", http.FileServerFS(web.FS))
	mux.HandleFunc("GET /healthz", Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	mux.Handle("GET /{$}", page(h.Index))
	mux.Handle("GET /login", page(h.LoginGet))
	mux.Handle("POST /login", post(h.LoginPost))
	mux.Handle("POST /logout", page(h.Logout))

	mux.Handle("GET /buyer", page(h.BuyerDashboard))
	mux.Handle("POST /buyer/requirements", post(h.PostRequirement))
	mux.Handle("GET /supplier", page(h.SupplierDashboard))
	mux.Handle("POST /supplier/messages", post(h.SendMessage))
	return mux
}
