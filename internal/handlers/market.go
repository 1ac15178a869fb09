package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// invalidRoleText is shown when the role radio was tampered with.
const invalidRoleText = "Please choose whether you are a Buyer or a Supplier."

type MarketHandler struct {
	Market       *market.Marketplace
	SessionStore sessions.Store
	Templates    *TemplateCache
}

func dashboardPath(role models.Role) string {
	if role == models.RoleSupplier {
		return "/supplier"
	}
	return "/buyer"
}

func (h *MarketHandler) session(r *http.Request) *sessions.Session {
	session, _ := h.SessionStore.Get(r, sessionName)
	return session
}

// redirectWithFlash saves msg into the session and redirects to url.
func (h *MarketHandler) redirectWithFlash(w http.ResponseWriter, r *http.Request, url string, msg FlashMessage) {
	session := h.session(r)
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// render adds the fields every page needs and consumes pending flashes.
func (h *MarketHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	session := h.session(r)
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = GetFlash(session)
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	if err := h.Templates.Render(w, status, name, data); err != nil {
		h.serverError(w, "Failed to render page", err)
	}
}

func (h *MarketHandler) serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// guard turns a session error into the matching redirect. It reports
// whether it handled err.
func (h *MarketHandler) guard(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case errors.Is(err, market.ErrMissingSession):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, market.ErrWrongRole):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		return false
	}
	return true
}

// Index sends visitors to the login page or their dashboard.
func (h *MarketHandler) Index(w http.ResponseWriter, r *http.Request) {
	u, err := h.Market.CurrentUser(r.Context(), WorkspaceID(r.Context()))
	if err != nil {
		h.serverError(w, "Failed to load session", err)
		return
	}
	if u == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, dashboardPath(u.Role), http.StatusSeeOther)
}

func (h *MarketHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.Market.CurrentUser(r.Context(), WorkspaceID(r.Context()))
	if err != nil {
		h.serverError(w, "Failed to load session", err)
		return
	}
	if u != nil {
		http.Redirect(w, r, dashboardPath(u.Role), http.StatusSeeOther)
		return
	}

	form := market.NewLoginForm()
	form.SwitchMethod(market.ParseLoginMethod(r.URL.Query().Get("method")))
	h.renderLogin(w, r, http.StatusOK, form)
}

func (h *MarketHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, form *market.LoginForm) {
	h.render(w, r, status, "login.html", map[string]any{
		"Form":    form,
		"Methods": market.LoginMethods,
	})
}

func (h *MarketHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := WorkspaceID(ctx)

	form := market.NewLoginForm()
	form.Method = market.ParseLoginMethod(r.FormValue("method"))
	form.Value = r.FormValue("value")
	role, err := models.ParseRole(r.FormValue("role"))
	if err != nil {
		form.Error = invalidRoleText
		h.renderLogin(w, r, http.StatusUnprocessableEntity, form)
		return
	}
	form.Role = role

	var user *models.User
	called, err := form.Submit(func(name string, role models.Role) error {
		u, err := h.Market.Login(ctx, ws, name, role)
		user = u
		return err
	})
	if !called {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, form)
		return
	}
	if err != nil {
		h.serverError(w, "Failed to log in", err)
		return
	}

	slog.Info("Login successful", "workspace", ws, "user_id", user.ID, "role", user.Role)
	h.redirectWithFlash(w, r, dashboardPath(user.Role), FlashMessage{Type: "success", Message: "Welcome, " + user.Username + "!"})
}

func (h *MarketHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Market.Logout(r.Context(), WorkspaceID(r.Context())); err != nil {
		h.serverError(w, "Failed to log out", err)
		return
	}
	h.redirectWithFlash(w, r, "/login", FlashMessage{Type: "success", Message: "Logged out successfully!"})
}

func (h *MarketHandler) BuyerDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.Market.BuyerDashboard(r.Context(), WorkspaceID(r.Context()), q.Get("q"))
	if h.guard(w, r, err) {
		return
	}
	if err != nil {
		h.serverError(w, "Failed to load buyer dashboard", err)
		return
	}
	h.render(w, r, http.StatusOK, "buyer.html", map[string]any{
		"User":      view.User,
		"View":      view,
		"ModalOpen": q.Get("modal") == "post",
		"Draft":     models.RequirementInput{},
	})
}

func (h *MarketHandler) PostRequirement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := WorkspaceID(ctx)
	in := models.RequirementInput{
		Product:     r.FormValue("product"),
		Description: r.FormValue("description"),
		Quantity:    r.FormValue("quantity"),
		Destination: r.FormValue("destination"),
	}

	req, err := h.Market.AddRequirement(ctx, ws, in)
	if h.guard(w, r, err) {
		return
	}
	if errors.Is(err, market.ErrEmptyField) {
		view, verr := h.Market.BuyerDashboard(ctx, ws, "")
		if verr != nil {
			h.serverError(w, "Failed to load buyer dashboard", verr)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, "buyer.html", map[string]any{
			"User":      view.User,
			"View":      view,
			"ModalOpen": true,
			"Draft":     in,
			"Alert":     market.RequirementAlertText,
		})
		return
	}
	if err != nil {
		h.serverError(w, "Failed to post requirement", err)
		return
	}
	h.redirectWithFlash(w, r, "/buyer", FlashMessage{Type: "success", Message: "Requirement for " + req.Product + " posted."})
}

func (h *MarketHandler) SupplierDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.Market.SupplierDashboard(r.Context(), WorkspaceID(r.Context()), q.Get("q"), q.Get("compose"))
	if h.guard(w, r, err) {
		return
	}
	if err != nil {
		h.serverError(w, "Failed to load supplier dashboard", err)
		return
	}
	h.render(w, r, http.StatusOK, "supplier.html", map[string]any{
		"User": view.User,
		"View": view,
	})
}

// SendMessage replies to a requirement. The receiver is always the
// requirement's buyer, looked up here rather than taken from the form.
func (h *MarketHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := WorkspaceID(ctx)
	in := models.MessageInput{
		RequirementID: r.FormValue("requirement_id"),
		Content:       r.FormValue("content"),
	}
	req, err := h.Market.Requirement(ctx, ws, in.RequirementID)
	switch {
	case err == nil:
		in.ReceiverID = req.BuyerID
	case !errors.Is(err, market.ErrRequirementNotFound):
		h.serverError(w, "Failed to load requirement", err)
		return
	}

	_, err = h.Market.AddMessage(ctx, ws, in)
	if h.guard(w, r, err) {
		return
	}
	switch {
	case err == nil:
		h.redirectWithFlash(w, r, "/supplier", FlashMessage{Type: "success", Message: "Message sent to " + req.BuyerName + "."})
	case errors.Is(err, market.ErrRequirementNotFound):
		h.redirectWithFlash(w, r, "/supplier", FlashMessage{Type: "error", Message: "That requirement is no longer available."})
	case errors.Is(err, market.ErrEmptyField):
		view, verr := h.Market.SupplierDashboard(ctx, ws, "", in.RequirementID)
		if verr != nil {
			h.serverError(w, "Failed to load supplier dashboard", verr)
			return
		}
		h.render(w, r, http.StatusUnprocessableEntity, "supplier.html", map[string]any{
			"User":  view.User,
			"View":  view,
			"Draft": in.Content,
			"Alert": market.MessageAlertText,
		})
	default:
		h.serverError(w, "Failed to send message", err)
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
