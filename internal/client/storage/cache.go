package storage

import (
	"context"

	"github.com/iudanet/tasksync/internal/models"
)

//go:generate moq -out cache_mock.go . CacheStorage

// CacheStorage defines the interface for the local entity cache.
// Кэш — копия серверных записей; он никогда не авторитетен.
// Версии записей приходят только с сервера.
type CacheStorage interface {
	// SaveRecord stores or overwrites a cached record
	SaveRecord(ctx context.Context, rec *models.EntityRecord) error

	// GetRecord retrieves a cached record by id.
	// Returns ErrRecordNotFound if the record isn't cached.
	GetRecord(ctx context.Context, id string) (*models.EntityRecord, error)

	// ListRecords returns cached records, optionally filtered by type
	// (empty string = all types).
	ListRecords(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error)

	// DeleteRecord removes a cached record. Idempotent.
	DeleteRecord(ctx context.Context, id string) error

	// Clear removes all cached records (logout / full re-sync)
	Clear(ctx context.Context) error
}
