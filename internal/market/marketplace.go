// Package market holds the buyer/supplier marketplace rules: the composition
// root that owns the stores, the pure projections the dashboards are built
// from and the form state of the login page.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// Store is the state behind a Marketplace. Every call is scoped to one
// workspace and each write is atomic. TouchWorkspace returns
// ErrWorkspaceNotFound for unknown ids; Requirement returns
// ErrRequirementNotFound.
type Store interface {
	CreateWorkspace(ctx context.Context, id string, at time.Time, reqs []models.Requirement, msgs []models.Message) error
	TouchWorkspace(ctx context.Context, id string, at time.Time) error
	PurgeWorkspaces(ctx context.Context, idleSince time.Time) (int64, error)

	CurrentUser(ctx context.Context, workspaceID string) (*models.User, error)
	SetCurrentUser(ctx context.Context, workspaceID string, u *models.User) error

	PrependRequirement(ctx context.Context, workspaceID string, r models.Requirement) error
	Requirements(ctx context.Context, workspaceID string) ([]models.Requirement, error)
	Requirement(ctx context.Context, workspaceID, id string) (*models.Requirement, error)

	AppendMessage(ctx context.Context, workspaceID string, m models.Message) error
	Messages(ctx context.Context, workspaceID string) ([]models.Message, error)
}

// Observer receives domain events, e.g. for metrics.
type Observer interface {
	WorkspaceCreated()
	WorkspacesPurged(n int64)
	LoggedIn(role models.Role)
	RequirementPosted()
	MessageSent()
	Rejected(form string)
}

type Option func(*Marketplace)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Marketplace) { m.now = now }
}

// WithIDs replaces the uuid generator used for new ids.
func WithIDs(newID func() string) Option {
	return func(m *Marketplace) { m.newID = newID }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Marketplace) { m.log = l }
}

func WithObserver(o Observer) Option {
	return func(m *Marketplace) { m.obs = o }
}

// Marketplace is the only mutation surface of the application state.
type Marketplace struct {
	store Store
	now   func() time.Time
	newID func() string
	log   *slog.Logger
	obs   Observer
}

func New(store Store, opts ...Option) *Marketplace {
	m := &Marketplace{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		log:   slog.Default(),
		obs:   nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OpenWorkspace returns id when the workspace exists, refreshing its idle
// timer. Otherwise a new workspace seeded with the demo data is created and
// its id returned with created set.
func (m *Marketplace) OpenWorkspace(ctx context.Context, id string) (_ string, created bool, err error) {
	if id != "" {
		err := m.store.TouchWorkspace(ctx, id, m.now().UTC())
		if err == nil {
			return id, false, nil
		}
		if !errors.Is(err, ErrWorkspaceNotFound) {
			return "", false, fmt.Errorf("touch workspace: %w", err)
		}
	}

	id = m.newID()
	if err := m.store.CreateWorkspace(ctx, id, m.now().UTC(), SeedRequirements(), SeedMessages()); err != nil {
		return "", false, fmt.Errorf("create workspace: %w", err)
	}
	m.log.Info("Workspace created", "workspace", id)
	m.obs.WorkspaceCreated()
	return id, true, nil
}

// PurgeIdle drops workspaces not opened for longer than ttl.
func (m *Marketplace) PurgeIdle(ctx context.Context, ttl time.Duration) (int64, error) {
	n, err := m.store.PurgeWorkspaces(ctx, m.now().UTC().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("purge workspaces: %w", err)
	}
	if n > 0 {
		m.log.Info("Purged idle workspaces", "count", n, "ttl", ttl)
		m.obs.WorkspacesPurged(n)
	}
	return n, nil
}

// RunJanitor calls PurgeIdle every interval until ctx is done.
func (m *Marketplace) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.PurgeIdle(ctx, ttl); err != nil && ctx.Err() == nil {
				m.log.Error("Janitor failed to purge workspaces", "error", err)
			}
		}
	}
}

// Login starts a session for name and role. No credential is checked.
// Nothing changes when the name is blank or the role unknown.
func (m *Marketplace) Login(ctx context.Context, workspaceID, name string, role models.Role) (*models.User, error) {
	if blank(name) {
		m.obs.Rejected("login")
		return nil, &FieldError{Fields: []string{"name"}}
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	u := &models.User{
		ID:       "user-" + m.newID(),
		Username: strings.TrimSpace(name),
		Role:     role,
	}
	if err := m.store.SetCurrentUser(ctx, workspaceID, u); err != nil {
		return nil, fmt.Errorf("set current user: %w", err)
	}
	m.log.Info("User logged in", "workspace", workspaceID, "user_id", u.ID, "role", u.Role)
	m.obs.LoggedIn(role)
	return u, nil
}

// Logout clears the session, whether or not one exists.
func (m *Marketplace) Logout(ctx context.Context, workspaceID string) error {
	if err := m.store.SetCurrentUser(ctx, workspaceID, nil); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	m.log.Debug("User logged out", "workspace", workspaceID)
	return nil
}

// CurrentUser returns nil when nobody is logged in.
func (m *Marketplace) CurrentUser(ctx context.Context, workspaceID string) (*models.User, error) {
	return m.store.CurrentUser(ctx, workspaceID)
}

func (m *Marketplace) sessionAs(ctx context.Context, workspaceID string, role models.Role) (*models.User, error) {
	u, err := m.store.CurrentUser(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if u == nil {
		return nil, ErrMissingSession
	}
	if u.Role != role {
		return nil, ErrWrongRole
	}
	return u, nil
}

// AddRequirement posts a requirement for the logged-in buyer. It becomes the
// first requirement in read order.
func (m *Marketplace) AddRequirement(ctx context.Context, workspaceID string, in models.RequirementInput) (models.Requirement, error) {
	u, err := m.sessionAs(ctx, workspaceID, models.RoleBuyer)
	if err != nil {
		return models.Requirement{}, err
	}
	if err := ValidateRequirement(in); err != nil {
		m.obs.Rejected("requirement")
		return models.Requirement{}, err
	}

	r := models.Requirement{
		ID:          "req-" + m.newID(),
		BuyerID:     u.ID,
		BuyerName:   u.Username,
		Product:     in.Product,
		Description: in.Description,
		Quantity:    in.Quantity,
		Destination: in.Destination,
		Timestamp:   m.now().UTC(),
	}
	if err := m.store.PrependRequirement(ctx, workspaceID, r); err != nil {
		return models.Requirement{}, fmt.Errorf("prepend requirement: %w", err)
	}
	m.log.Info("Requirement posted", "workspace", workspaceID, "requirement_id", r.ID, "buyer_id", r.BuyerID)
	m.obs.RequirementPosted()
	return r, nil
}

// AddMessage sends a message from the logged-in supplier to the buyer of
// in.RequirementID. The message is appended after all existing ones.
func (m *Marketplace) AddMessage(ctx context.Context, workspaceID string, in models.MessageInput) (models.Message, error) {
	u, err := m.sessionAs(ctx, workspaceID, models.RoleSupplier)
	if err != nil {
		return models.Message{}, err
	}
	if err := ValidateMessage(in); err != nil {
		m.obs.Rejected("message")
		return models.Message{}, err
	}

	req, err := m.store.Requirement(ctx, workspaceID, in.RequirementID)
	if err != nil {
		return models.Message{}, err
	}
	if in.ReceiverID != req.BuyerID {
		return models.Message{}, ErrReceiverMismatch
	}

	msg := models.Message{
		ID:            "msg-" + m.newID(),
		RequirementID: req.ID,
		SenderID:      u.ID,
		SenderName:    u.Username,
		ReceiverID:    req.BuyerID,
		Content:       in.Content,
		Timestamp:     m.now().UTC(),
	}
	if err := m.store.AppendMessage(ctx, workspaceID, msg); err != nil {
		return models.Message{}, fmt.Errorf("append message: %w", err)
	}
	m.log.Info("Message sent", "workspace", workspaceID, "message_id", msg.ID, "requirement_id", msg.RequirementID)
	m.obs.MessageSent()
	return msg, nil
}

// Requirement looks up one requirement of the workspace.
func (m *Marketplace) Requirement(ctx context.Context, workspaceID, id string) (*models.Requirement, error) {
	return m.store.Requirement(ctx, workspaceID, id)
}

// Requirements returns every requirement of the workspace, newest first.
func (m *Marketplace) Requirements(ctx context.Context, workspaceID string) ([]models.Requirement, error) {
	return m.store.Requirements(ctx, workspaceID)
}

// Messages returns every message of the workspace, oldest first.
func (m *Marketplace) Messages(ctx context.Context, workspaceID string) ([]models.Message, error) {
	return m.store.Messages(ctx, workspaceID)
}

type nopObserver struct{}

func (nopObserver) WorkspaceCreated()      {}
func (nopObserver) WorkspacesPurged(int64) {}
func (nopObserver) LoggedIn(models.Role)   {}
func (nopObserver) RequirementPosted()     {}
func (nopObserver) MessageSent()           {}
func (nopObserver) Rejected(string)        {}
