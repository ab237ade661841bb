// Package derive пересчитывает производный статус проекта (прогресс)
// после записей задач. Пересчет асинхронный: он не блокирует и не может
// провалить ответ reconciliation endpoint.
package derive

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/iudanet/tasksync/internal/models"
	rt "github.com/iudanet/tasksync/internal/realtime"
	"github.com/iudanet/tasksync/internal/server/storage"
)

// Broadcaster уведомляет активные сессии об изменении проекта
type Broadcaster interface {
	BroadcastToUser(userID string, msg *rt.Message, excludeDeviceID string)
}

type job struct {
	ownerID   string
	projectID string
}

// Worker последовательно выполняет задания пересчета прогресса
type Worker struct {
	logger    *slog.Logger
	storage   storage.RecordStorage
	broadcast Broadcaster
	jobs      chan job
	done      chan struct{}
}

// NewWorker creates a progress recompute worker.
// broadcast может быть nil.
func NewWorker(logger *slog.Logger, st storage.RecordStorage, broadcast Broadcaster) *Worker {
	return &Worker{
		logger:    logger,
		storage:   st,
		broadcast: broadcast,
		jobs:      make(chan job, 128),
		done:      make(chan struct{}),
	}
}

// Run обрабатывает задания до вызова Stop. Блокирует.
func (w *Worker) Run() {
	for {
		select {
		case j := <-w.jobs:
			w.recompute(j)
		case <-w.done:
			return
		}
	}
}

// Stop останавливает worker
func (w *Worker) Stop() {
	close(w.done)
}

// Schedule ставит пересчет в очередь. Никогда не блокирует:
// при переполненной очереди задание отбрасывается — следующая запись
// задачи в этот проект все равно запланирует свежий пересчет.
func (w *Worker) Schedule(ownerID, projectID string) {
	select {
	case w.jobs <- job{ownerID: ownerID, projectID: projectID}:
	default:
		w.logger.Warn("Progress queue full, dropping recompute",
			"owner_id", ownerID,
			"project_id", projectID)
	}
}

// recompute пересчитывает done/total счетчики и прогресс проекта
func (w *Worker) recompute(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := w.storage.GetRecord(ctx, j.projectID)
	if err != nil {
		if !errors.Is(err, storage.ErrRecordNotFound) {
			w.logger.Error("Failed to load project", "project_id", j.projectID, "error", err)
		}
		return
	}

	if project.OwnerID != j.ownerID || project.EntityType != models.EntityProject {
		return
	}

	tasks, err := w.storage.ListTasksByProject(ctx, j.ownerID, j.projectID)
	if err != nil {
		w.logger.Error("Failed to list project tasks", "project_id", j.projectID, "error", err)
		return
	}

	total := len(tasks)
	done := 0
	for _, t := range tasks {
		var payload models.TaskPayload
		if err := json.Unmarshal(t.Payload, &payload); err != nil {
			continue
		}
		if payload.Status == models.TaskStatusDone {
			done++
		}
	}

	progress := 0
	if total > 0 {
		progress = done * 100 / total
	}

	patch, err := json.Marshal(map[string]int{
		"progress":    progress,
		"done_tasks":  done,
		"total_tasks": total,
	})
	if err != nil {
		w.logger.Error("Failed to marshal progress patch", "error", err)
		return
	}

	rec := project.Clone()
	if err := rec.MergePayload(patch); err != nil {
		w.logger.Error("Failed to merge progress patch", "project_id", j.projectID, "error", err)
		return
	}

	// Версия назначается сервером; clamp сохраняет строгую монотонность per id
	now := time.Now().UnixMilli()
	if project.UpdatedAt >= now {
		now = project.UpdatedAt + 1
	}
	rec.UpdatedAt = now

	if err := w.storage.UpdateRecord(ctx, rec); err != nil {
		w.logger.Error("Failed to update project progress", "project_id", j.projectID, "error", err)
		return
	}

	w.logger.Debug("Project progress recomputed",
		"project_id", j.projectID,
		"done", done,
		"total", total,
		"progress", progress)

	if w.broadcast != nil {
		msg := rt.NewEntityUpdated(string(models.EntityProject), rec.ID, string(models.ActionUpdate), j.ownerID, "", rec.Payload, rec.UpdatedAt)
		w.broadcast.BroadcastToUser(j.ownerID, msg, "")
	}
}
