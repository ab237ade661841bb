package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tasksync/internal/server/storage"
)

func TestUserStorage_CreateAndGet(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()

	user := &storage.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UnixMilli(),
	}
	require.NoError(t, st.CreateUser(ctx, user))

	got, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Equal(t, user.CreatedAt, got.CreatedAt)
}

func TestUserStorage_Create_DuplicateUsername(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, &storage.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "hash-1",
		CreatedAt:    1000,
	}))

	err := st.CreateUser(ctx, &storage.User{
		ID:           "user-2",
		Username:     "alice",
		PasswordHash: "hash-2",
		CreatedAt:    2000,
	})
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_Get_NotFound(t *testing.T) {
	st := setupTestStorage(t)

	_, err := st.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
