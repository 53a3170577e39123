package repo_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskpad/taskpad/internal/model"
	appErr "github.com/taskpad/taskpad/internal/pkg/errors"
	"github.com/taskpad/taskpad/internal/pkg/timeutil"
	"github.com/taskpad/taskpad/internal/repo"
	"github.com/taskpad/taskpad/internal/testutil"
)

func newID(t *testing.T) string {
	t.Helper()
	buf := make([]byte, 16)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return hex.EncodeToString(buf)
}

func TestTodoRepoCRUD(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	todos := repo.NewTodoRepo(conn)
	ctx := context.Background()
	userID := newID(t)
	now := timeutil.NowUnix()

	todo := &model.Todo{
		ID:       newID(t),
		UserID:   userID,
		Text:     "write tests",
		Priority: model.PriorityHigh,
		Ctime:    now,
		Mtime:    now,
	}
	require.NoError(t, todos.Create(ctx, todo))

	listed, err := todos.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, todo.ID, listed[0].ID)
	require.False(t, listed[0].Complete)

	require.NoError(t, todos.SetComplete(ctx, userID, todo.ID, true, now+1))
	loaded, err := todos.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	require.True(t, loaded.Complete)

	require.NoError(t, todos.Delete(ctx, userID, todo.ID))
	_, err = todos.GetByID(ctx, todo.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestTodoRepoScopesWritesByOwner(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	todos := repo.NewTodoRepo(conn)
	ctx := context.Background()
	owner := newID(t)
	now := timeutil.NowUnix()

	todo := &model.Todo{ID: newID(t), UserID: owner, Text: "mine", Priority: 1, Ctime: now, Mtime: now}
	require.NoError(t, todos.Create(ctx, todo))

	require.ErrorIs(t, todos.SetComplete(ctx, newID(t), todo.ID, true, now), appErr.ErrNotFound)
	require.ErrorIs(t, todos.Delete(ctx, newID(t), todo.ID), appErr.ErrNotFound)
}

func TestRevokedTokenRepo(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	revoked := repo.NewRevokedTokenRepo(conn)
	ctx := context.Background()
	now := timeutil.NowUnix()

	jti := newID(t)
	require.NoError(t, revoked.Create(ctx, &model.RevokedToken{
		JTI:       jti,
		UserID:    newID(t),
		ExpiresAt: now - 10,
		Ctime:     now,
	}))

	exists, err := revoked.Exists(ctx, jti)
	require.NoError(t, err)
	require.True(t, exists)

	// second revocation of the same jti is a no-op
	require.NoError(t, revoked.Create(ctx, &model.RevokedToken{JTI: jti, UserID: newID(t), ExpiresAt: now, Ctime: now}))

	deleted, err := revoked.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.GreaterOrEqual(t, deleted, int64(1))

	exists, err = revoked.Exists(ctx, jti)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUserRepoConflictOnDuplicateEmail(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(conn)
	ctx := context.Background()
	now := timeutil.NowUnix()
	email := newID(t) + "@example.com"

	first := &model.User{ID: newID(t), Name: "a", Email: email, PasswordHash: "x", Ctime: now, Mtime: now}
	require.NoError(t, users.Create(ctx, first))

	second := &model.User{ID: newID(t), Name: "b", Email: email, PasswordHash: "y", Ctime: now, Mtime: now}
	require.ErrorIs(t, users.Create(ctx, second), appErr.ErrConflict)
}
