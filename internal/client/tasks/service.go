package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс клиентского сервиса задач и проектов.
// Каждая правка сначала попадает в долговечную очередь мутаций
// и оптимистично применяется к локальному кэшу: UI видит изменение
// сразу, сервер узнает о нем при следующей синхронизации.
type Service interface {
	CreateTask(ctx context.Context, payload *models.TaskPayload) (string, error)
	CreateProject(ctx context.Context, payload *models.ProjectPayload) (string, error)

	// Update enqueues a partial update. patch is a JSON object with
	// the fields to change.
	Update(ctx context.Context, id string, patch json.RawMessage) error

	// Delete enqueues a delete and removes the record from the cache
	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (*models.EntityRecord, error)
	List(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error)
}

// service handles client-side edits
type service struct {
	queue storage.QueueStorage
	cache storage.CacheStorage
}

// NewService creates a new tasks service
func NewService(queue storage.QueueStorage, cache storage.CacheStorage) Service {
	return &service{
		queue: queue,
		cache: cache,
	}
}

// CreateTask enqueues a task creation and returns the generated ID
func (s *service) CreateTask(ctx context.Context, payload *models.TaskPayload) (string, error) {
	if payload.Status == "" {
		payload.Status = models.TaskStatusTodo
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	return s.create(ctx, models.EntityTask, data)
}

// CreateProject enqueues a project creation and returns the generated ID
func (s *service) CreateProject(ctx context.Context, payload *models.ProjectPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal project: %w", err)
	}

	return s.create(ctx, models.EntityProject, data)
}

func (s *service) create(ctx context.Context, entityType models.EntityType, payload json.RawMessage) (string, error) {
	// ID генерирует клиент: повтор батча после обрыва связи
	// приведет к already_exists, а не к дублю сущности
	id := uuid.New().String()

	op := &models.Operation{
		EntityType: entityType,
		EntityID:   id,
		Action:     models.ActionCreate,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}
	if err := op.Validate(); err != nil {
		return "", err
	}

	if _, err := s.queue.Enqueue(ctx, op); err != nil {
		return "", fmt.Errorf("failed to enqueue create: %w", err)
	}

	// Оптимистичная запись: версия 0 означает "еще не подтверждена сервером"
	rec := &models.EntityRecord{
		ID:         id,
		EntityType: entityType,
		Payload:    payload,
		UpdatedAt:  0,
	}
	if err := s.cache.SaveRecord(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to cache record: %w", err)
	}

	return id, nil
}

// Update enqueues a partial update for an existing record
func (s *service) Update(ctx context.Context, id string, patch json.RawMessage) error {
	rec, err := s.cache.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	op := &models.Operation{
		EntityType: rec.EntityType,
		EntityID:   id,
		Action:     models.ActionUpdate,
		Payload:    patch,
		EnqueuedAt: time.Now(),
	}
	// BaseVersion — версия, которую клиент видел при правке.
	// Для еще не подтвержденных записей (версия 0) проверку
	// не запрашиваем: сервер присвоит версию при create.
	if rec.UpdatedAt > 0 {
		base := rec.UpdatedAt
		op.BaseVersion = &base
	}
	if err := op.Validate(); err != nil {
		return err
	}

	if _, err := s.queue.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("failed to enqueue update: %w", err)
	}

	// Оптимистично применяем патч к кэшу
	if err := rec.MergePayload(patch); err != nil {
		return fmt.Errorf("failed to merge payload: %w", err)
	}
	if err := s.cache.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("failed to cache record: %w", err)
	}

	return nil
}

// Delete enqueues a delete and removes the record from the cache
func (s *service) Delete(ctx context.Context, id string) error {
	rec, err := s.cache.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			// Удаление несуществующей записи — no-op, как и на сервере
			return nil
		}
		return err
	}

	op := &models.Operation{
		EntityType: rec.EntityType,
		EntityID:   id,
		Action:     models.ActionDelete,
		Payload:    json.RawMessage(`{}`),
		EnqueuedAt: time.Now(),
	}
	if err := op.Validate(); err != nil {
		return err
	}

	if _, err := s.queue.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("failed to enqueue delete: %w", err)
	}

	if err := s.cache.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cached record: %w", err)
	}

	return nil
}

// Get returns a cached record by ID
func (s *service) Get(ctx context.Context, id string) (*models.EntityRecord, error) {
	return s.cache.GetRecord(ctx, id)
}

// List returns cached records, optionally filtered by type
func (s *service) List(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error) {
	return s.cache.ListRecords(ctx, entityType)
}
