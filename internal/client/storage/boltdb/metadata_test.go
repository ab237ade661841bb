package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tasksync/internal/client/storage"
)

func TestMetadata_LastServerVersion_DefaultZero(t *testing.T) {
	st, _ := setupTestStorage(t)

	version, err := st.GetLastServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestMetadata_LastServerVersion_SaveAndGet(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveLastServerVersion(ctx, 123456789))

	version, err := st.GetLastServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), version)
}

func TestMetadata_DeviceID_GeneratedOnce(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	first, err := st.DeviceID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Валидный UUID
	_, err = uuid.Parse(first)
	require.NoError(t, err)

	second, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMetadata_DeviceID_StableAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client.db")
	ctx := context.Background()

	st, err := New(ctx, dbPath)
	require.NoError(t, err)

	first, err := st.DeviceID(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		_ = st.Close()
	}()

	second, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMetadata_Auth_SaveGetClear(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	// До логина токена нет
	_, err := st.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	auth := &storage.AuthData{
		AccessToken: "jwt-token",
		UserID:      "user-1",
		Username:    "alice",
	}
	require.NoError(t, st.SaveAuth(ctx, auth))

	got, err := st.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", got.AccessToken)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alice", got.Username)

	// Logout удаляет сессию
	require.NoError(t, st.ClearAuth(ctx))
	_, err = st.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}
