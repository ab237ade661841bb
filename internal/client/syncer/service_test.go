package syncer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/tasksync/internal/client/api"
	"github.com/iudanet/tasksync/internal/client/conflicts"
	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv собирает сервис на моках с одной партией операций в очереди
type testEnv struct {
	apiClient *httpClient.ClientAPIMock
	queue     *storage.QueueStorageMock
	cache     *storage.CacheStorageMock
	metadata  *storage.MetadataStorageMock
	conflicts *storage.ConflictStorageMock
	service   Service

	mu             sync.Mutex
	committed      [][]uint64
	requeued       [][]uint64
	saved          map[string]*models.EntityRecord
	deleted        []string
	conflictsSaved []*models.Conflict
}

func newTestEnv(t *testing.T, ops []*models.Operation) *testEnv {
	t.Helper()

	env := &testEnv{
		saved: make(map[string]*models.EntityRecord),
	}

	drained := false
	env.queue = &storage.QueueStorageMock{
		PeekBatchFunc: func(ctx context.Context, max int) ([]*models.Operation, error) {
			if drained {
				return nil, nil
			}
			drained = true
			return ops, nil
		},
		CommitFunc: func(ctx context.Context, seqs []uint64) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.committed = append(env.committed, seqs)
			return nil
		},
		RequeueFunc: func(ctx context.Context, seqs []uint64) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.requeued = append(env.requeued, seqs)
			return nil
		},
		LenFunc: func(ctx context.Context) (int, error) {
			return len(ops), nil
		},
	}

	env.cache = &storage.CacheStorageMock{
		SaveRecordFunc: func(ctx context.Context, rec *models.EntityRecord) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.saved[rec.ID] = rec
			return nil
		},
		DeleteRecordFunc: func(ctx context.Context, id string) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.deleted = append(env.deleted, id)
			return nil
		},
	}

	env.metadata = &storage.MetadataStorageMock{
		GetAuthFunc: func(ctx context.Context) (*storage.AuthData, error) {
			return &storage.AuthData{
				AccessToken: "token",
				UserID:      "user-1",
				Username:    "alice",
			}, nil
		},
		DeviceIDFunc: func(ctx context.Context) (string, error) {
			return "device-1", nil
		},
		SaveLastServerVersionFunc: func(ctx context.Context, version int64) error {
			return nil
		},
	}

	env.conflicts = &storage.ConflictStorageMock{
		SaveConflictFunc: func(ctx context.Context, c *models.Conflict) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.conflictsSaved = append(env.conflictsSaved, c)
			return nil
		},
		ListConflictsFunc: func(ctx context.Context) ([]*models.Conflict, error) {
			env.mu.Lock()
			defer env.mu.Unlock()
			return env.conflictsSaved, nil
		},
		DeleteConflictFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	env.apiClient = &httpClient.ClientAPIMock{}

	surface := conflicts.NewSurface(env.apiClient, env.conflicts, env.cache, env.metadata, testLogger())
	env.service = NewService(env.apiClient, env.queue, env.cache, env.metadata, surface, testLogger())

	return env
}

func queuedOp(seq uint64, entityID string, action models.Action) *models.Operation {
	op := &models.Operation{
		EnqueuedAt: time.Now(),
		EntityType: models.EntityTask,
		EntityID:   entityID,
		Action:     action,
		Seq:        seq,
	}
	if action != models.ActionDelete {
		op.Payload = json.RawMessage(`{"title":"Test"}`)
	}
	return op
}

func TestSyncNow_AppliedUpdatesCache(t *testing.T) {
	ops := []*models.Operation{queuedOp(1, "task-1", models.ActionCreate)}
	env := newTestEnv(t, ops)

	env.apiClient.SyncFunc = func(ctx context.Context, accessToken, deviceID string, req api.SyncRequest) (*api.SyncResponse, error) {
		assert.Equal(t, "token", accessToken)
		assert.Equal(t, "device-1", deviceID)
		require.Len(t, req.Ops, 1)

		return &api.SyncResponse{
			Applied: []api.Record{{
				ID:         "task-1",
				OwnerID:    "user-1",
				EntityType: "task",
				Payload:    json.RawMessage(`{"title":"Test","status":"todo"}`),
				UpdatedAt:  1000,
			}},
			ServerVersion: 1000,
		}, nil
	}

	result, err := env.service.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Conflicts)

	// Кэш обновлен серверной версией
	require.Contains(t, env.saved, "task-1")
	assert.Equal(t, int64(1000), env.saved["task-1"].UpdatedAt)
	assert.Equal(t, "user-1", env.saved["task-1"].OwnerID)

	// Батч закоммичен целиком
	require.Len(t, env.committed, 1)
	assert.Equal(t, []uint64{1}, env.committed[0])

	// Версия сервера сохранена
	calls := env.metadata.SaveLastServerVersionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(1000), calls[0].Version)
}

func TestSyncNow_ConflictRoutedToSurface(t *testing.T) {
	ops := []*models.Operation{queuedOp(1, "task-1", models.ActionUpdate)}
	env := newTestEnv(t, ops)

	env.apiClient.SyncFunc = func(ctx context.Context, accessToken, deviceID string, req api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{
			Conflicts: []api.ConflictInfo{{
				EntityType: "task",
				EntityID:   "task-1",
				Reason:     "stale_version",
				Local:      json.RawMessage(`{"title":"Test"}`),
				Remote: &api.Record{
					ID:        "task-1",
					Payload:   json.RawMessage(`{"title":"Server"}`),
					UpdatedAt: 5000,
				},
			}},
			ServerVersion: 5000,
		}, nil
	}

	result, err := env.service.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, result.Conflicts)

	// Конфликт записан в хранилище
	require.Len(t, env.conflictsSaved, 1)
	assert.Equal(t, "task-1", env.conflictsSaved[0].EntityID)
	assert.Equal(t, models.ReasonStaleVersion, env.conflictsSaved[0].Reason)
	assert.Equal(t, models.ConflictOpen, env.conflictsSaved[0].State)

	// Конфликтная операция тоже коммитится: её исход терминален
	require.Len(t, env.committed, 1)
	assert.Equal(t, []uint64{1}, env.committed[0])
}

func TestSyncNow_DeleteRemovesFromCache(t *testing.T) {
	ops := []*models.Operation{queuedOp(1, "task-1", models.ActionDelete)}
	env := newTestEnv(t, ops)

	env.apiClient.SyncFunc = func(ctx context.Context, accessToken, deviceID string, req api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{
			Applied: []api.Record{{
				ID:         "task-1",
				EntityType: "task",
				Payload:    json.RawMessage(`{}`),
				UpdatedAt:  1000,
			}},
			ServerVersion: 1000,
		}, nil
	}

	result, err := env.service.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Contains(t, env.deleted, "task-1")
	assert.NotContains(t, env.saved, "task-1")
}

func TestSyncNow_FatalErrorNotRetried(t *testing.T) {
	ops := []*models.Operation{queuedOp(1, "task-1", models.ActionCreate)}
	env := newTestEnv(t, ops)

	env.apiClient.SyncFunc = func(ctx context.Context, accessToken, deviceID string, req api.SyncRequest) (*api.SyncResponse, error) {
		return nil, &httpClient.ServerError{StatusCode: 400, Message: "validation failed"}
	}

	_, err := env.service.SyncNow(context.Background())
	require.Error(t, err)

	// 4xx фатален — ровно одна попытка
	assert.Len(t, env.apiClient.SyncCalls(), 1)

	// Батч остался в очереди
	require.Len(t, env.requeued, 1)
	assert.Empty(t, env.committed)

	status, err := env.service.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDegraded, status.State)
	assert.NotEmpty(t, status.LastError)
}

func TestSyncNow_TransientErrorRetried(t *testing.T) {
	ops := []*models.Operation{queuedOp(1, "task-1", models.ActionCreate)}
	env := newTestEnv(t, ops)

	attempt := 0
	env.apiClient.SyncFunc = func(ctx context.Context, accessToken, deviceID string, req api.SyncRequest) (*api.SyncResponse, error) {
		attempt++
		if attempt == 1 {
			return nil, &httpClient.ServerError{StatusCode: 503, Message: "unavailable"}
		}
		return &api.SyncResponse{
			Applied: []api.Record{{
				ID:         "task-1",
				EntityType: "task",
				Payload:    json.RawMessage(`{"title":"Test"}`),
				UpdatedAt:  1000,
			}},
			ServerVersion: 1000,
		}, nil
	}

	result, err := env.service.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 2, attempt)

	status, err := env.service.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, status.State)
}

func TestSyncNow_EmptyQueue(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.service.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 0, result.Conflicts)

	// Пустая очередь — запросов к серверу нет
	assert.Empty(t, env.apiClient.SyncCalls())
}

func TestStatus_ReportsPending(t *testing.T) {
	ops := []*models.Operation{
		queuedOp(1, "task-1", models.ActionCreate),
		queuedOp(2, "task-2", models.ActionCreate),
	}
	env := newTestEnv(t, ops)

	status, err := env.service.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, status.State)
	assert.Equal(t, 2, status.Pending)
}

func TestTriggerSync_Coalesces(t *testing.T) {
	env := newTestEnv(t, nil)

	// Повторные триггеры без запущенного цикла не блокируются
	env.service.TriggerSync()
	env.service.TriggerSync()
	env.service.TriggerSync()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		env.service.Run(ctx)
		close(done)
	}()

	// Даем циклу обработать склеенный триггер
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
