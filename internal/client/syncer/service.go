package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	httpClient "github.com/iudanet/tasksync/internal/client/api"
	"github.com/iudanet/tasksync/internal/client/conflicts"
	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/pkg/api"
)

const (
	// maxBatchSize ограничивает размер одного запроса синхронизации
	maxBatchSize = 100

	// maxAttempts — потолок попыток на один батч, после которого
	// синхронизация переходит в degraded до следующего триггера
	maxAttempts = 5

	// baseBackoff — начальная задержка экспоненциального backoff
	baseBackoff = 1 * time.Second

	// maxBackoff — верхняя граница задержки между попытками
	maxBackoff = 30 * time.Second
)

// State описывает текущее состояние синхронизации
type State string

const (
	StateIdle     State = "idle"
	StateSyncing  State = "syncing"
	StateDegraded State = "degraded"
)

// Status is a point-in-time snapshot of the sync manager
type Status struct {
	State      State
	Pending    int   // операций в очереди
	LastSyncAt int64 // unix millis последнего успешного цикла, 0 если не было
	LastError  string
}

// Result contains the outcome counts of a single drain
type Result struct {
	Applied   int
	Conflicts int
}

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс менеджера синхронизации
type Service interface {
	// Run запускает фоновый цикл, обрабатывающий триггеры.
	// Блокируется до отмены контекста.
	Run(ctx context.Context)

	// TriggerSync запрашивает цикл синхронизации. Если цикл уже идет,
	// запрос склеивается со следующим запуском.
	TriggerSync()

	// SyncNow выполняет один полный drain очереди синхронно
	SyncNow(ctx context.Context) (*Result, error)

	// Status возвращает снимок текущего состояния
	Status(ctx context.Context) (*Status, error)
}

// service handles draining the mutation queue to the server
type service struct {
	apiClient httpClient.ClientAPI
	queue     storage.QueueStorage
	cache     storage.CacheStorage
	metadata  storage.MetadataStorage
	surface   *conflicts.Surface
	logger    *slog.Logger

	// trigger буферизован на 1: триггер во время активного цикла
	// остается в буфере и цикл перезапускается сразу после текущего
	trigger chan struct{}

	mu         sync.Mutex
	state      State
	lastSyncAt int64
	lastError  string
}

// NewService creates a new sync manager
func NewService(
	apiClient httpClient.ClientAPI,
	queue storage.QueueStorage,
	cache storage.CacheStorage,
	metadata storage.MetadataStorage,
	surface *conflicts.Surface,
	logger *slog.Logger,
) Service {
	return &service{
		apiClient: apiClient,
		queue:     queue,
		cache:     cache,
		metadata:  metadata,
		surface:   surface,
		logger:    logger,
		trigger:   make(chan struct{}, 1),
		state:     StateIdle,
	}
}

// Run processes sync triggers until the context is cancelled
func (s *service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.trigger:
			if _, err := s.SyncNow(ctx); err != nil {
				s.logger.Warn("Sync cycle failed", "error", err)
			}
		}
	}
}

// TriggerSync requests a sync cycle, coalescing with any pending request
func (s *service) TriggerSync() {
	select {
	case s.trigger <- struct{}{}:
	default:
		// Триггер уже в очереди — склеиваем
	}
}

// SyncNow drains the whole queue in batches of maxBatchSize
func (s *service) SyncNow(ctx context.Context) (*Result, error) {
	s.setState(StateSyncing, "")

	auth, err := s.metadata.GetAuth(ctx)
	if err != nil {
		s.setState(StateIdle, "")
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	deviceID, err := s.metadata.DeviceID(ctx)
	if err != nil {
		s.setState(StateIdle, "")
		return nil, fmt.Errorf("failed to get device id: %w", err)
	}

	result := &Result{}

	for {
		ops, err := s.queue.PeekBatch(ctx, maxBatchSize)
		if err != nil {
			s.setState(StateDegraded, err.Error())
			return nil, fmt.Errorf("failed to peek queue: %w", err)
		}

		if len(ops) == 0 {
			break
		}

		if err := s.drainBatch(ctx, auth, deviceID, ops, result); err != nil {
			s.setState(StateDegraded, err.Error())
			return nil, err
		}
	}

	s.mu.Lock()
	s.state = StateIdle
	s.lastSyncAt = time.Now().UnixMilli()
	s.lastError = ""
	s.mu.Unlock()

	s.logger.Info("Sync completed",
		"applied", result.Applied,
		"conflicts", result.Conflicts,
	)

	return result, nil
}

// drainBatch отправляет один батч с ограниченным числом повторов.
// Временные ошибки (транспорт, 5xx) повторяются с экспоненциальным
// backoff; после maxAttempts попыток батч остается в очереди.
func (s *service) drainBatch(ctx context.Context, auth *storage.AuthData, deviceID string, ops []*models.Operation, result *Result) error {
	req := api.SyncRequest{
		Ops: make([]api.Operation, 0, len(ops)),
	}
	seqs := make([]uint64, 0, len(ops))
	for _, op := range ops {
		req.Ops = append(req.Ops, operationToAPI(op))
		seqs = append(seqs, op.Seq)
	}

	var resp *api.SyncResponse

	backoff := retry.NewExponential(baseBackoff)
	backoff = retry.WithCappedDuration(maxBackoff, backoff)
	backoff = retry.WithMaxRetries(maxAttempts-1, backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := s.apiClient.Sync(ctx, auth.AccessToken, deviceID, req)
		if err != nil {
			if httpClient.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		resp = r
		return nil
	})

	if err != nil {
		// Операции остаются в очереди до следующего триггера
		if reqErr := s.queue.Requeue(ctx, seqs); reqErr != nil {
			s.logger.Error("Failed to requeue batch", "error", reqErr)
		}
		return fmt.Errorf("sync batch failed: %w", err)
	}

	if err := s.routeOutcomes(ctx, auth.UserID, ops, resp, result); err != nil {
		return err
	}

	// Каждая операция батча получила терминальный исход — удаляем все
	if err := s.queue.Commit(ctx, seqs); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	if err := s.metadata.SaveLastServerVersion(ctx, resp.ServerVersion); err != nil {
		s.logger.Warn("Failed to save server version", "error", err)
	}

	return nil
}

// routeOutcomes раскладывает ответ сервера по операциям батча.
// Сервер изолирует операции, поэтому у каждой есть ровно один исход:
// applied (запись в кэш) или conflict (запись в список конфликтов).
func (s *service) routeOutcomes(ctx context.Context, userID string, ops []*models.Operation, resp *api.SyncResponse, result *Result) error {
	appliedByID := make(map[string]api.Record, len(resp.Applied))
	for _, rec := range resp.Applied {
		// При нескольких операциях над одной сущностью в батче
		// сервер возвращает записи в порядке применения — последняя
		// содержит итоговую версию
		appliedByID[rec.ID] = rec
	}

	conflictsByEntity := make(map[string][]api.ConflictInfo)
	for _, c := range resp.Conflicts {
		conflictsByEntity[c.EntityID] = append(conflictsByEntity[c.EntityID], c)
	}

	for _, op := range ops {
		if pending := conflictsByEntity[op.EntityID]; len(pending) > 0 {
			info := pending[0]
			conflictsByEntity[op.EntityID] = pending[1:]

			if err := s.surface.Add(ctx, info); err != nil {
				return fmt.Errorf("failed to record conflict: %w", err)
			}
			result.Conflicts++
			continue
		}

		result.Applied++

		if op.Action == models.ActionDelete {
			if err := s.cache.DeleteRecord(ctx, op.EntityID); err != nil {
				return fmt.Errorf("failed to delete cached record: %w", err)
			}
			continue
		}

		rec, ok := appliedByID[op.EntityID]
		if !ok {
			// Не должно происходить: сервер обязан вернуть исход
			s.logger.Warn("No outcome for applied operation", "entity_id", op.EntityID)
			continue
		}

		if err := s.cache.SaveRecord(ctx, &models.EntityRecord{
			ID:         rec.ID,
			OwnerID:    userID,
			EntityType: models.EntityType(rec.EntityType),
			Payload:    rec.Payload,
			UpdatedAt:  rec.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("failed to update cache: %w", err)
		}

		// Успешная операция закрывает устаревшие конфликты сущности
		if err := s.surface.Supersede(ctx, op.EntityID); err != nil {
			s.logger.Warn("Failed to supersede conflicts", "entity_id", op.EntityID, "error", err)
		}
	}

	return nil
}

// Status returns a snapshot of the sync manager state
func (s *service) Status(ctx context.Context) (*Status, error) {
	pending, err := s.queue.Len(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue length: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return &Status{
		State:      s.state,
		Pending:    pending,
		LastSyncAt: s.lastSyncAt,
		LastError:  s.lastError,
	}, nil
}

func (s *service) setState(state State, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.lastError = lastError
}

// operationToAPI конвертирует операцию очереди в API формат
func operationToAPI(op *models.Operation) api.Operation {
	return api.Operation{
		EntityType:  string(op.EntityType),
		EntityID:    op.EntityID,
		Action:      string(op.Action),
		Payload:     op.Payload,
		BaseVersion: op.BaseVersion,
	}
}
