package integration

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractdesk/go-contract-backend/internal/designer/canvas"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/sessions"
)

func setupSessionRepo(t *testing.T) (*sessions.Repo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return sessions.NewRepo(client, time.Hour), mr
}

func newSession(id string) *sessions.Session {
	return &sessions.Session{
		SessionID:   id,
		TemplateID:  "tpl-123",
		BaseVersion: 1,
		Document:    graph.NewDocument("tpl-123"),
		CreatedAt:   time.Now().UTC(),
	}
}

func TestSessionRepo_PutGetRoundTrip(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	sess := newSession("sess-1")
	sess.Selection = canvas.Selection{NodeID: "contactSingle-abc"}
	require.NoError(t, repo.Put(ctx, sess))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tpl-123", got.TemplateID)
	assert.Equal(t, 1, got.BaseVersion)
	assert.Equal(t, "contactSingle-abc", got.Selection.NodeID)
	assert.False(t, got.UpdatedAt.IsZero())

	// The session key carries a TTL so abandoned sessions age out.
	ttl := mr.TTL("designer:session:sess-1")
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionRepo_GetMissing(t *testing.T) {
	repo, _ := setupSessionRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestSessionRepo_DirtyIndex(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	clean := newSession("sess-clean")
	dirty := newSession("sess-dirty")
	dirty.Dirty = true

	require.NoError(t, repo.Put(ctx, clean))
	require.NoError(t, repo.Put(ctx, dirty))

	ids, err := repo.DirtySessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-dirty"}, ids)

	// Saving clears the flag and drops the session from the index.
	dirty.Dirty = false
	require.NoError(t, repo.Put(ctx, dirty))

	ids, err = repo.DirtySessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSessionRepo_DirtyIndexPrunesExpired(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	sess := newSession("sess-expired")
	sess.Dirty = true
	require.NoError(t, repo.Put(ctx, sess))

	// Let the session key expire while the dirty marker lingers.
	mr.FastForward(2 * time.Hour)

	ids, err := repo.DirtySessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// The stale marker was pruned, not just filtered.
	assert.False(t, mr.Exists("designer:dirty"))
}

func TestSessionRepo_Delete(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	sess := newSession("sess-del")
	sess.Dirty = true
	require.NoError(t, repo.Put(ctx, sess))
	require.NoError(t, repo.Delete(ctx, "sess-del"))

	_, err := repo.Get(ctx, "sess-del")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)

	ids, err := repo.DirtySessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
