package conflicts

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	httpClient "github.com/iudanet/tasksync/internal/client/api"
	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/pkg/api"
)

// Surface keeps the set of unresolved conflicts visible to the user.
// Конфликты не разрешаются автоматически: каждый ждет явного решения
// keep-local или keep-remote и переживает перезапуск клиента.
type Surface struct {
	apiClient httpClient.ClientAPI
	conflicts storage.ConflictStorage
	cache     storage.CacheStorage
	metadata  storage.MetadataStorage
	logger    *slog.Logger

	mu          sync.Mutex
	subscribers []chan struct{}
}

// NewSurface creates a new conflict surface
func NewSurface(
	apiClient httpClient.ClientAPI,
	conflicts storage.ConflictStorage,
	cache storage.CacheStorage,
	metadata storage.MetadataStorage,
	logger *slog.Logger,
) *Surface {
	return &Surface{
		apiClient: apiClient,
		conflicts: conflicts,
		cache:     cache,
		metadata:  metadata,
		logger:    logger,
	}
}

// Add registers a new conflict reported by the server
func (s *Surface) Add(ctx context.Context, info api.ConflictInfo) error {
	conflict := &models.Conflict{
		ID:         uuid.New().String(),
		EntityType: models.EntityType(info.EntityType),
		EntityID:   info.EntityID,
		Reason:     models.ConflictReason(info.Reason),
		State:      models.ConflictOpen,
		Local:      info.Local,
		DetectedAt: time.Now(),
	}

	if info.Remote != nil {
		conflict.Remote = &models.EntityRecord{
			ID:         info.Remote.ID,
			EntityType: models.EntityType(info.Remote.EntityType),
			Payload:    info.Remote.Payload,
			UpdatedAt:  info.Remote.UpdatedAt,
		}
	}

	if err := s.conflicts.SaveConflict(ctx, conflict); err != nil {
		return fmt.Errorf("failed to save conflict: %w", err)
	}

	s.logger.Info("Conflict detected",
		"conflict_id", conflict.ID,
		"entity_id", conflict.EntityID,
		"reason", conflict.Reason,
	)

	s.notify()
	return nil
}

// List returns all open conflicts
func (s *Surface) List(ctx context.Context) ([]*models.Conflict, error) {
	all, err := s.conflicts.ListConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	open := make([]*models.Conflict, 0, len(all))
	for _, c := range all {
		if c.State == models.ConflictOpen {
			open = append(open, c)
		}
	}
	return open, nil
}

// Get returns a conflict by ID
func (s *Surface) Get(ctx context.Context, id string) (*models.Conflict, error) {
	return s.conflicts.GetConflict(ctx, id)
}

// Resolve applies the user's decision for a conflict.
// keep-local — принудительная запись локальной версии на сервер;
// keep-remote — сервер уже прав, достаточно обновить локальный кэш.
func (s *Surface) Resolve(ctx context.Context, conflictID string, winner models.Winner) error {
	conflict, err := s.conflicts.GetConflict(ctx, conflictID)
	if err != nil {
		return err
	}

	if conflict.State != models.ConflictOpen {
		return fmt.Errorf("conflict %s is not open (state: %s)", conflictID, conflict.State)
	}

	// Переводим в resolving, чтобы параллельный вызов не продублировал запись
	conflict.State = models.ConflictResolving
	if err := s.conflicts.SaveConflict(ctx, conflict); err != nil {
		return fmt.Errorf("failed to mark conflict resolving: %w", err)
	}

	switch winner {
	case models.WinnerLocal:
		err = s.resolveKeepLocal(ctx, conflict)
	case models.WinnerRemote:
		err = s.resolveKeepRemote(ctx, conflict)
	default:
		err = fmt.Errorf("unknown winner: %s", winner)
	}

	if err != nil {
		// Возвращаем конфликт в open, решение не применилось
		conflict.State = models.ConflictOpen
		if saveErr := s.conflicts.SaveConflict(ctx, conflict); saveErr != nil {
			s.logger.Error("Failed to reopen conflict", "conflict_id", conflictID, "error", saveErr)
		}
		return err
	}

	// Разрешенный конфликт удаляем из хранилища
	if err := s.conflicts.DeleteConflict(ctx, conflictID); err != nil {
		return fmt.Errorf("failed to delete resolved conflict: %w", err)
	}

	s.logger.Info("Conflict resolved",
		"conflict_id", conflictID,
		"entity_id", conflict.EntityID,
		"winner", winner,
	)

	s.notify()
	return nil
}

// resolveKeepLocal форсирует локальную версию через /api/v1/resolve
func (s *Surface) resolveKeepLocal(ctx context.Context, conflict *models.Conflict) error {
	auth, err := s.metadata.GetAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	deviceID, err := s.metadata.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get device id: %w", err)
	}

	req := api.ResolveRequest{
		EntityType: string(conflict.EntityType),
		EntityID:   conflict.EntityID,
		Winner:     string(models.WinnerLocal),
		Local:      conflict.Local,
	}

	resp, err := s.apiClient.Resolve(ctx, auth.AccessToken, deviceID, req)
	if err != nil {
		return fmt.Errorf("resolve request failed: %w", err)
	}

	// Сервер вернул запись с новой версией — обновляем кэш
	rec := &models.EntityRecord{
		ID:         resp.Record.ID,
		OwnerID:    auth.UserID,
		EntityType: models.EntityType(resp.Record.EntityType),
		Payload:    resp.Record.Payload,
		UpdatedAt:  resp.Record.UpdatedAt,
	}
	if err := s.cache.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}

	return nil
}

// resolveKeepRemote принимает серверную версию: запись на сервер
// не нужна, обновляется только локальный кэш
func (s *Surface) resolveKeepRemote(ctx context.Context, conflict *models.Conflict) error {
	if conflict.Remote == nil {
		// Сервер не знает такой записи (конфликт not_found по update):
		// принятие удаленной версии означает удаление локальной копии
		if err := s.cache.DeleteRecord(ctx, conflict.EntityID); err != nil {
			return fmt.Errorf("failed to delete cached record: %w", err)
		}
		return nil
	}

	if err := s.cache.SaveRecord(ctx, conflict.Remote); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	return nil
}

// Supersede closes open conflicts for an entity after a later
// operation on it was applied cleanly
func (s *Surface) Supersede(ctx context.Context, entityID string) error {
	all, err := s.conflicts.ListConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}

	for _, c := range all {
		if c.EntityID != entityID || c.State != models.ConflictOpen {
			continue
		}
		if err := s.conflicts.DeleteConflict(ctx, c.ID); err != nil {
			return fmt.Errorf("failed to delete superseded conflict: %w", err)
		}
		s.logger.Info("Conflict superseded", "conflict_id", c.ID, "entity_id", entityID)
	}

	s.notify()
	return nil
}

// Subscribe returns a channel that receives a signal whenever the
// set of conflicts changes
func (s *Surface) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// notify будит подписчиков, не блокируясь на медленных
func (s *Surface) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
