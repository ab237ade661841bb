package boltdb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
)

func cachedTask(id string, version int64) *models.EntityRecord {
	return &models.EntityRecord{
		ID:         id,
		OwnerID:    "user-1",
		EntityType: models.EntityTask,
		Payload:    json.RawMessage(`{"title":"Cached task","status":"todo"}`),
		UpdatedAt:  version,
	}
}

func TestCache_SaveAndGet(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	rec := cachedTask("task-1", 1000)
	require.NoError(t, st.SaveRecord(ctx, rec))

	got, err := st.GetRecord(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.UpdatedAt, got.UpdatedAt)
	assert.JSONEq(t, string(rec.Payload), string(got.Payload))
}

func TestCache_Get_NotFound(t *testing.T) {
	st, _ := setupTestStorage(t)

	_, err := st.GetRecord(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestCache_Save_Overwrites(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-1", 1000)))
	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-1", 2000)))

	got, err := st.GetRecord(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.UpdatedAt)
}

func TestCache_ListRecords_FilterByType(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-1", 1000)))
	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-2", 1001)))
	require.NoError(t, st.SaveRecord(ctx, &models.EntityRecord{
		ID:         "proj-1",
		OwnerID:    "user-1",
		EntityType: models.EntityProject,
		Payload:    json.RawMessage(`{"name":"Home"}`),
		UpdatedAt:  1002,
	}))

	all, err := st.ListRecords(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tasks, err := st.ListRecords(ctx, models.EntityTask)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	projects, err := st.ListRecords(ctx, models.EntityProject)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestCache_Delete_Idempotent(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-1", 1000)))
	require.NoError(t, st.DeleteRecord(ctx, "task-1"))

	_, err := st.GetRecord(ctx, "task-1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	// Повторное удаление не ошибка
	assert.NoError(t, st.DeleteRecord(ctx, "task-1"))
}

func TestCache_Clear(t *testing.T) {
	st, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-1", 1000)))
	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-2", 1001)))

	require.NoError(t, st.Clear(ctx))

	all, err := st.ListRecords(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)

	// Bucket пересоздан, запись после Clear работает
	require.NoError(t, st.SaveRecord(ctx, cachedTask("task-3", 1002)))
}
