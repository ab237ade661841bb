package derive

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

	"github.com/iudanet/tasksync/internal/models"
	rt "github.com/iudanet/tasksync/internal/realtime"
	"github.com/iudanet/tasksync/internal/server/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type broadcastCall struct {
	userID  string
	msg     *rt.Message
	exclude string
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *fakeBroadcaster) BroadcastToUser(userID string, msg *rt.Message, excludeDeviceID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{userID: userID, msg: msg, exclude: excludeDeviceID})
}

// memStorage собирает RecordStorageMock поверх map
func memStorage() (*storage.RecordStorageMock, map[string]*models.EntityRecord) {
	var mu sync.Mutex
	records := make(map[string]*models.EntityRecord)

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
		UpdateRecordFunc: func(ctx context.Context, rec *models.EntityRecord) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := records[rec.ID]; !ok {
				return storage.ErrRecordNotFound
			}
			records[rec.ID] = rec.Clone()
			return nil
		},
		ListTasksByProjectFunc: func(ctx context.Context, ownerID, projectID string) ([]*models.EntityRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			var tasks []*models.EntityRecord
			for _, rec := range records {
				if rec.OwnerID != ownerID || rec.EntityType != models.EntityTask {
					continue
				}
				var payload models.TaskPayload
				if err := json.Unmarshal(rec.Payload, &payload); err != nil {
					continue
				}
				if payload.ProjectID == projectID {
					tasks = append(tasks, rec.Clone())
				}
			}
			return tasks, nil
		},
	}

	return mock, records
}

func addTask(records map[string]*models.EntityRecord, id, owner, projectID, status string) {
	payload, _ := json.Marshal(models.TaskPayload{
		Title:     "Task " + id,
		Status:    status,
		ProjectID: projectID,
	})
	records[id] = &models.EntityRecord{
		ID:         id,
		OwnerID:    owner,
		EntityType: models.EntityTask,
		Payload:    payload,
		UpdatedAt:  1000,
	}
}

func addProject(records map[string]*models.EntityRecord, id, owner string, version int64) {
	payload, _ := json.Marshal(models.ProjectPayload{Name: "Project " + id})
	records[id] = &models.EntityRecord{
		ID:         id,
		OwnerID:    owner,
		EntityType: models.EntityProject,
		Payload:    payload,
		UpdatedAt:  version,
	}
}

func TestRecompute_CountsAndProgress(t *testing.T) {
	st, records := memStorage()
	addProject(records, "proj-1", "alice", 1000)
	addTask(records, "task-1", "alice", "proj-1", models.TaskStatusDone)
	addTask(records, "task-2", "alice", "proj-1", models.TaskStatusDone)
	addTask(records, "task-3", "alice", "proj-1", models.TaskStatusTodo)
	addTask(records, "task-4", "alice", "proj-2", models.TaskStatusDone)

	w := NewWorker(testLogger(), st, nil)
	w.recompute(job{ownerID: "alice", projectID: "proj-1"})

	var payload models.ProjectPayload
	require.NoError(t, json.Unmarshal(records["proj-1"].Payload, &payload))

	assert.Equal(t, 2, payload.DoneTasks)
	assert.Equal(t, 3, payload.TotalTasks)
	assert.Equal(t, 66, payload.Progress)

	// Имя проекта не затерто частичным патчем
	assert.Equal(t, "Project proj-1", payload.Name)

	// Версия выросла
	assert.Greater(t, records["proj-1"].UpdatedAt, int64(1000))
}

func TestRecompute_EmptyProject(t *testing.T) {
	st, records := memStorage()
	addProject(records, "proj-1", "alice", 1000)

	w := NewWorker(testLogger(), st, nil)
	w.recompute(job{ownerID: "alice", projectID: "proj-1"})

	var payload models.ProjectPayload
	require.NoError(t, json.Unmarshal(records["proj-1"].Payload, &payload))

	assert.Equal(t, 0, payload.DoneTasks)
	assert.Equal(t, 0, payload.TotalTasks)
	assert.Equal(t, 0, payload.Progress)
}

func TestRecompute_VersionClamp(t *testing.T) {
	st, records := memStorage()
	// Версия проекта в будущем: clamp обязан сохранить строгий рост
	future := time.Now().Add(time.Hour).UnixMilli()
	addProject(records, "proj-1", "alice", future)
	addTask(records, "task-1", "alice", "proj-1", models.TaskStatusDone)

	w := NewWorker(testLogger(), st, nil)
	w.recompute(job{ownerID: "alice", projectID: "proj-1"})

	assert.Equal(t, future+1, records["proj-1"].UpdatedAt)
}

func TestRecompute_MissingProject_NoOp(t *testing.T) {
	st, _ := memStorage()

	w := NewWorker(testLogger(), st, nil)
	w.recompute(job{ownerID: "alice", projectID: "ghost"})

	assert.Empty(t, st.UpdateRecordCalls())
}

func TestRecompute_WrongOwner_NoOp(t *testing.T) {
	st, records := memStorage()
	addProject(records, "proj-1", "alice", 1000)

	w := NewWorker(testLogger(), st, nil)
	w.recompute(job{ownerID: "bob", projectID: "proj-1"})

	assert.Empty(t, st.UpdateRecordCalls())
	assert.Equal(t, int64(1000), records["proj-1"].UpdatedAt)
}

func TestRecompute_Broadcasts(t *testing.T) {
	st, records := memStorage()
	addProject(records, "proj-1", "alice", 1000)
	addTask(records, "task-1", "alice", "proj-1", models.TaskStatusDone)

	broadcaster := &fakeBroadcaster{}
	w := NewWorker(testLogger(), st, broadcaster)
	w.recompute(job{ownerID: "alice", projectID: "proj-1"})

	require.Len(t, broadcaster.calls, 1)
	call := broadcaster.calls[0]
	assert.Equal(t, "alice", call.userID)
	assert.Equal(t, "proj-1", call.msg.EntityID)
	assert.Equal(t, rt.TypeEntityUpdated, call.msg.Type)
	// Пересчет не привязан к устройству — рассылка всем сессиям
	assert.Empty(t, call.exclude)
}

func TestScheduleAndRun(t *testing.T) {
	st, records := memStorage()
	addProject(records, "proj-1", "alice", 1000)
	addTask(records, "task-1", "alice", "proj-1", models.TaskStatusDone)

	w := NewWorker(testLogger(), st, nil)
	go w.Run()
	defer w.Stop()

	w.Schedule("alice", "proj-1")

	require.Eventually(t, func() bool {
		return len(st.UpdateRecordCalls()) == 1
	}, time.Second, 5*time.Millisecond)
}
