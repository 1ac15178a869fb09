package store

import (
	"context"
	"testing"
	"time"

	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seededWorkspace(t *testing.T, s *Store, id string) {
	t.Helper()
	err := s.CreateWorkspace(context.Background(), id, time.Now(), market.SeedRequirements(), market.SeedMessages())
	require.NoError(t, err)
}

func requirementIDs(reqs []models.Requirement) []string {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate(context.Background(), migrationFiles, "migrations"))

	var n int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestCreateWorkspaceKeepsSeedOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-1")

	reqs, err := s.Requirements(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, market.SeedRequirements(), reqs)

	msgs, err := s.Messages(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, market.SeedMessages(), msgs)
}

func TestPrependRequirement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-1")

	r := models.Requirement{
		ID:          "req-new",
		BuyerID:     "user-1",
		BuyerName:   "Acme",
		Product:     "Steel Pipes",
		Description: "Seamless",
		Quantity:    "20 Tons",
		Destination: "Antwerp",
		Timestamp:   time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC),
	}
	require.NoError(t, s.PrependRequirement(ctx, "ws-1", r))

	reqs, err := s.Requirements(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"req-new", "req-1", "req-2", "req-3"}, requirementIDs(reqs))
	assert.Equal(t, r, reqs[0])
}

func TestAppendMessage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-1")

	m := models.Message{
		ID:            "msg-new",
		RequirementID: "req-3",
		SenderID:      "user-2",
		SenderName:    "Loom Co",
		ReceiverID:    "buyer-1",
		Content:       "Catalog attached",
		Timestamp:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, s.AppendMessage(ctx, "ws-1", m))

	msgs, err := s.Messages(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "msg-1", msgs[0].ID)
	assert.Equal(t, m, msgs[2])
}

func TestAppendMessageUnknownRequirement(t *testing.T) {
	s := newTestStore(t)
	seededWorkspace(t, s, "ws-1")

	err := s.AppendMessage(context.Background(), "ws-1", models.Message{ID: "msg-x", RequirementID: "req-missing"})
	require.Error(t, err)
}

func TestRequirementLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-1")

	r, err := s.Requirement(ctx, "ws-1", "req-2")
	require.NoError(t, err)
	assert.Equal(t, "TechParts Direct", r.BuyerName)

	_, err = s.Requirement(ctx, "ws-1", "req-9")
	require.ErrorIs(t, err, market.ErrRequirementNotFound)

	_, err = s.Requirement(ctx, "ws-other", "req-2")
	require.ErrorIs(t, err, market.ErrRequirementNotFound)
}

func TestWorkspacesAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-a")
	seededWorkspace(t, s, "ws-b")

	require.NoError(t, s.PrependRequirement(ctx, "ws-a", models.Requirement{ID: "req-a", BuyerID: "user-a"}))
	require.NoError(t, s.SetCurrentUser(ctx, "ws-a", &models.User{ID: "user-a", Username: "A", Role: models.RoleBuyer}))

	a, err := s.Requirements(ctx, "ws-a")
	require.NoError(t, err)
	b, err := s.Requirements(ctx, "ws-b")
	require.NoError(t, err)
	assert.Len(t, a, 4)
	assert.Equal(t, []string{"req-1", "req-2", "req-3"}, requirementIDs(b))

	u, err := s.CurrentUser(ctx, "ws-b")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-1")

	u, err := s.CurrentUser(ctx, "ws-1")
	require.NoError(t, err)
	assert.Nil(t, u)

	buyer := &models.User{ID: "user-1", Username: "Acme", Role: models.RoleBuyer}
	require.NoError(t, s.SetCurrentUser(ctx, "ws-1", buyer))
	u, err = s.CurrentUser(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, buyer, u)

	supplier := &models.User{ID: "user-2", Username: "Loom Co", Role: models.RoleSupplier}
	require.NoError(t, s.SetCurrentUser(ctx, "ws-1", supplier))
	u, err = s.CurrentUser(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, supplier, u)

	require.NoError(t, s.SetCurrentUser(ctx, "ws-1", nil))
	require.NoError(t, s.SetCurrentUser(ctx, "ws-1", nil))
	u, err = s.CurrentUser(ctx, "ws-1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestTouchWorkspace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-1")

	require.NoError(t, s.TouchWorkspace(ctx, "ws-1", time.Now()))
	require.ErrorIs(t, s.TouchWorkspace(ctx, "ws-missing", time.Now()), market.ErrWorkspaceNotFound)
}

func TestPurgeWorkspaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seededWorkspace(t, s, "ws-old")
	seededWorkspace(t, s, "ws-new")
	require.NoError(t, s.SetCurrentUser(ctx, "ws-old", &models.User{ID: "u", Username: "U", Role: models.RoleBuyer}))

	now := time.Now()
	require.NoError(t, s.TouchWorkspace(ctx, "ws-old", now.Add(-48*time.Hour)))
	require.NoError(t, s.TouchWorkspace(ctx, "ws-new", now))

	n, err := s.PurgeWorkspaces(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := s.CountWorkspaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	reqs, err := s.Requirements(ctx, "ws-old")
	require.NoError(t, err)
	assert.Empty(t, reqs)
	msgs, err := s.Messages(ctx, "ws-old")
	require.NoError(t, err)
	assert.Empty(t, msgs)
	u, err := s.CurrentUser(ctx, "ws-old")
	require.NoError(t, err)
	assert.Nil(t, u)

	reqs, err = s.Requirements(ctx, "ws-new")
	require.NoError(t, err)
	assert.Len(t, reqs, 3)
}
