package storage

import (
	"context"

	"github.com/iudanet/tasksync/internal/models"
)

//go:generate moq -out conflicts_mock.go . ConflictStorage

// ConflictStorage defines the interface for persisted conflicts.
// Неразрешенные конфликты переживают перезапуск процесса:
// пользователь обязан явно выбрать исход, автоматического
// разрешения нет.
type ConflictStorage interface {
	// SaveConflict stores or updates a conflict
	SaveConflict(ctx context.Context, c *models.Conflict) error

	// GetConflict retrieves a conflict by id.
	// Returns ErrConflictNotFound if it doesn't exist.
	GetConflict(ctx context.Context, id string) (*models.Conflict, error)

	// ListConflicts returns all stored conflicts
	ListConflicts(ctx context.Context) ([]*models.Conflict, error)

	// DeleteConflict removes a conflict. Idempotent.
	DeleteConflict(ctx context.Context, id string) error
}
