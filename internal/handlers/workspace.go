package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/savioss/FreeSupplierBuyer/internal/market"
)

const (
	sessionName  = "workspace"
	workspaceKey = "workspace_id"
)

type workspaceCtxKey struct{}

// WorkspaceID returns the workspace resolved by WorkspaceMiddleware.
func WorkspaceID(ctx context.Context) string {
	id, _ := ctx.Value(workspaceCtxKey{}).(string)
	return id
}

// WorkspaceMiddleware resolves the sandbox named by the session cookie,
// creating and seeding a new one when the cookie is missing or stale.
func WorkspaceMiddleware(m *market.Marketplace, store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A cookie that fails to decode yields a fresh session.
			session, _ := store.Get(r, sessionName)
			current, _ := session.Values[workspaceKey].(string)

			id, created, err := m.OpenWorkspace(r.Context(), current)
			if err != nil {
				slog.Error("Failed to open workspace", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if created {
				session.Values[workspaceKey] = id
				if err := session.Save(r, w); err != nil {
					slog.Error("Failed to save session", "error", err)
					http.Error(w, "Failed to save session", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), workspaceCtxKey{}, id)))
		})
	}
}
