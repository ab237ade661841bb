package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/internal/realtime"
	"github.com/iudanet/tasksync/internal/server/storage"
	"github.com/iudanet/tasksync/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// newMemRecordStorage wires a RecordStorageMock to an in-memory map
func newMemRecordStorage() (*storage.RecordStorageMock, map[string]*models.EntityRecord) {
	records := make(map[string]*models.EntityRecord)
	var mu sync.Mutex

	mock := &storage.RecordStorageMock{
		GetRecordFunc: func(ctx context.Context, id string) (*models.EntityRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			rec, ok := records[id]
			if !ok {
				return nil, storage.ErrRecordNotFound
			}
			return rec.Clone(), nil
		},
		InsertRecordFunc: func(ctx context.Context, rec *models.EntityRecord) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := records[rec.ID]; ok {
				return storage.ErrRecordExists
			}
			records[rec.ID] = rec.Clone()
			return nil
		},
		UpdateRecordFunc: func(ctx context.Context, rec *models.EntityRecord) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := records[rec.ID]; !ok {
				return storage.ErrRecordNotFound
			}
			records[rec.ID] = rec.Clone()
			return nil
		},
		UpsertRecordFunc: func(ctx context.Context, rec *models.EntityRecord) error {
			mu.Lock()
			defer mu.Unlock()
			records[rec.ID] = rec.Clone()
			return nil
		},
		DeleteRecordFunc: func(ctx context.Context, id string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(records, id)
			return nil
		},
		ListRecordsByOwnerFunc: func(ctx context.Context, ownerID string, entityType models.EntityType) ([]*models.EntityRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			var out []*models.EntityRecord
			for _, rec := range records {
				if rec.OwnerID == ownerID && (entityType == "" || rec.EntityType == entityType) {
					out = append(out, rec.Clone())
				}
			}
			return out, nil
		},
		ListTasksByProjectFunc: func(ctx context.Context, ownerID, projectID string) ([]*models.EntityRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			var out []*models.EntityRecord
			for _, rec := range records {
				if rec.OwnerID != ownerID || rec.EntityType != models.EntityTask {
					continue
				}
				var task models.TaskPayload
				if err := json.Unmarshal(rec.Payload, &task); err == nil && task.ProjectID == projectID {
					out = append(out, rec.Clone())
				}
			}
			return out, nil
		},
	}

	return mock, records
}

// fakeBroadcaster записывает все рассылки для проверок
type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

type broadcastCall struct {
	userID  string
	msg     *realtime.Message
	exclude string
}

func (b *fakeBroadcaster) BroadcastToUser(userID string, msg *realtime.Message, excludeDeviceID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{userID: userID, msg: msg, exclude: excludeDeviceID})
}

// fakeScheduler записывает запланированные пересчеты
type fakeScheduler struct {
	mu       sync.Mutex
	projects []string
}

func (s *fakeScheduler) Schedule(ownerID, projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, projectID)
}

func doSync(t *testing.T, h *SyncHandler, userID, deviceID string, reqBody api.SyncRequest) *api.SyncResponse {
	t.Helper()

	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", bytes.NewReader(body))
	req.Header.Set(DeviceIDHeader, deviceID)
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	h.HandleSync(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestSyncHandler_HandleSync_MethodNotAllowed(t *testing.T) {
	mock, _ := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, "user123")
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	handler.HandleSync(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSyncHandler_HandleSync_Unauthorized(t *testing.T) {
	mock, _ := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	// No user_id in context

	w := httptest.NewRecorder()
	handler.HandleSync(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSyncHandler_Create_Success(t *testing.T) {
	mock, records := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	resp := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk","status":"todo"}`),
		}},
	})

	require.Len(t, resp.Applied, 1)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, "task-1", resp.Applied[0].ID)
	assert.Equal(t, "user123", resp.Applied[0].OwnerID)
	assert.Positive(t, resp.Applied[0].UpdatedAt)
	assert.Positive(t, resp.ServerVersion)

	require.Contains(t, records, "task-1")
	assert.Equal(t, models.EntityTask, records["task-1"].EntityType)
}

func TestSyncHandler_Create_Duplicate(t *testing.T) {
	mock, records := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	op := api.Operation{
		EntityType: "task",
		EntityID:   "task-1",
		Action:     "create",
		Payload:    json.RawMessage(`{"title":"Buy milk"}`),
	}

	first := doSync(t, handler, "user123", "device-a", api.SyncRequest{Ops: []api.Operation{op}})
	require.Len(t, first.Applied, 1)
	originalVersion := records["task-1"].UpdatedAt

	// Повторная доставка того же create — конфликт, запись не меняется
	second := doSync(t, handler, "user123", "device-a", api.SyncRequest{Ops: []api.Operation{op}})
	require.Len(t, second.Conflicts, 1)
	assert.Empty(t, second.Applied)
	assert.Equal(t, string(models.ReasonAlreadyExists), second.Conflicts[0].Reason)
	require.NotNil(t, second.Conflicts[0].Remote)
	assert.Equal(t, "task-1", second.Conflicts[0].Remote.ID)

	assert.Equal(t, originalVersion, records["task-1"].UpdatedAt)
}

func TestSyncHandler_Update_Success(t *testing.T) {
	mock, records := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	created := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk","status":"todo"}`),
		}},
	})
	base := created.Applied[0].UpdatedAt

	resp := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType:  "task",
			EntityID:    "task-1",
			Action:      "update",
			Payload:     json.RawMessage(`{"status":"done"}`),
			BaseVersion: &base,
		}},
	})

	require.Len(t, resp.Applied, 1)
	assert.Empty(t, resp.Conflicts)
	// Версия строго растет
	assert.Greater(t, resp.Applied[0].UpdatedAt, base)

	// Патч объединяется с сохраненным payload: title не потерян
	var task models.TaskPayload
	require.NoError(t, json.Unmarshal(records["task-1"].Payload, &task))
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.TaskStatusDone, task.Status)
}

func TestSyncHandler_Update_StaleVersion(t *testing.T) {
	mock, records := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	created := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk","status":"todo"}`),
		}},
	})
	base := created.Applied[0].UpdatedAt

	// Другое устройство обновляет запись
	doSync(t, handler, "user123", "device-b", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType:  "task",
			EntityID:    "task-1",
			Action:      "update",
			Payload:     json.RawMessage(`{"status":"doing"}`),
			BaseVersion: &base,
		}},
	})
	currentVersion := records["task-1"].UpdatedAt

	// Запоздавшее обновление со старой базовой версией отклоняется
	resp := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType:  "task",
			EntityID:    "task-1",
			Action:      "update",
			Payload:     json.RawMessage(`{"status":"done"}`),
			BaseVersion: &base,
		}},
	})

	require.Len(t, resp.Conflicts, 1)
	assert.Empty(t, resp.Applied)
	assert.Equal(t, string(models.ReasonStaleVersion), resp.Conflicts[0].Reason)
	require.NotNil(t, resp.Conflicts[0].Remote)

	// Запись не изменилась
	assert.Equal(t, currentVersion, records["task-1"].UpdatedAt)
	var task models.TaskPayload
	require.NoError(t, json.Unmarshal(records["task-1"].Payload, &task))
	assert.Equal(t, models.TaskStatusDoing, task.Status)
}

func TestSyncHandler_Update_NoBaseVersion_Forced(t *testing.T) {
	mock, _ := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk"}`),
		}},
	})

	// Без base_version проверка версии не выполняется
	resp := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "update",
			Payload:    json.RawMessage(`{"status":"done"}`),
		}},
	})

	require.Len(t, resp.Applied, 1)
	assert.Empty(t, resp.Conflicts)
}

func TestSyncHandler_Update_NotFound(t *testing.T) {
	mock, _ := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	resp := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "ghost",
			Action:     "update",
			Payload:    json.RawMessage(`{"status":"done"}`),
		}},
	})

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, string(models.ReasonNotFound), resp.Conflicts[0].Reason)
	assert.Nil(t, resp.Conflicts[0].Remote)
}

func TestSyncHandler_Update_OtherOwner(t *testing.T) {
	mock, _ := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	doSync(t, handler, "alice", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Private"}`),
		}},
	})

	// Чужая запись неотличима от отсутствующей
	resp := doSync(t, handler, "bob", "device-b", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "update",
			Payload:    json.RawMessage(`{"title":"Stolen"}`),
		}},
	})

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, string(models.ReasonNotFound), resp.Conflicts[0].Reason)
}

func TestSyncHandler_Delete_Idempotent(t *testing.T) {
	mock, records := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk"}`),
		}},
	})

	del := api.Operation{
		EntityType: "task",
		EntityID:   "task-1",
		Action:     "delete",
	}

	first := doSync(t, handler, "user123", "device-a", api.SyncRequest{Ops: []api.Operation{del}})
	require.Len(t, first.Applied, 1)
	assert.NotContains(t, records, "task-1")

	// Повторный delete — applied, а не конфликт
	second := doSync(t, handler, "user123", "device-a", api.SyncRequest{Ops: []api.Operation{del}})
	require.Len(t, second.Applied, 1)
	assert.Empty(t, second.Conflicts)
}

func TestSyncHandler_BatchIsolation(t *testing.T) {
	mock, records := newMemRecordStorage()
	handler := NewSyncHandler(setupTestLogger(), mock, nil, nil)

	// Плохая операция в середине батча не мешает соседям
	resp := doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{
			{
				EntityType: "task",
				EntityID:   "task-1",
				Action:     "create",
				Payload:    json.RawMessage(`{"title":"First"}`),
			},
			{
				EntityType: "task",
				EntityID:   "task-2",
				Action:     "explode", // неизвестное действие
				Payload:    json.RawMessage(`{}`),
			},
			{
				EntityType: "task",
				EntityID:   "task-3",
				Action:     "create",
				Payload:    json.RawMessage(`{"title":"Third"}`),
			},
		},
	})

	require.Len(t, resp.Applied, 2)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, string(models.ReasonProcessingError), resp.Conflicts[0].Reason)
	assert.Equal(t, "task-2", resp.Conflicts[0].EntityID)

	assert.Contains(t, records, "task-1")
	assert.Contains(t, records, "task-3")
}

func TestSyncHandler_BroadcastExcludesOrigin(t *testing.T) {
	mock, _ := newMemRecordStorage()
	broadcaster := &fakeBroadcaster{}
	handler := NewSyncHandler(setupTestLogger(), mock, broadcaster, nil)

	doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk"}`),
		}},
	})

	require.Len(t, broadcaster.calls, 1)
	call := broadcaster.calls[0]
	assert.Equal(t, "user123", call.userID)
	assert.Equal(t, "device-a", call.exclude)
	assert.Equal(t, realtime.TypeEntityUpdated, call.msg.Type)
	assert.Equal(t, "task-1", call.msg.EntityID)
}

func TestSyncHandler_SchedulesProgressRecompute(t *testing.T) {
	mock, _ := newMemRecordStorage()
	scheduler := &fakeScheduler{}
	handler := NewSyncHandler(setupTestLogger(), mock, nil, scheduler)

	doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Buy milk","project_id":"proj-1"}`),
		}},
	})

	require.Len(t, scheduler.projects, 1)
	assert.Equal(t, "proj-1", scheduler.projects[0])
}

func TestSyncHandler_TaskWithoutProject_NoRecompute(t *testing.T) {
	mock, _ := newMemRecordStorage()
	scheduler := &fakeScheduler{}
	handler := NewSyncHandler(setupTestLogger(), mock, nil, scheduler)

	doSync(t, handler, "user123", "device-a", api.SyncRequest{
		Ops: []api.Operation{{
			EntityType: "task",
			EntityID:   "task-1",
			Action:     "create",
			Payload:    json.RawMessage(`{"title":"Standalone"}`),
		}},
	})

	assert.Empty(t, scheduler.projects)
}
