package storage

import (
	"context"

	"github.com/iudanet/tasksync/internal/models"
)

//go:generate moq -out records_mock.go . RecordStorage

// RecordStorage defines the interface for the authoritative entity store.
// Каждая операция выполняется в отдельной транзакции БД; батч целиком
// транзакцией не оборачивается (см. модель конкурентности).
type RecordStorage interface {
	// InsertRecord creates a new record with the given version.
	// Returns ErrRecordExists if a record with this id is already present.
	InsertRecord(ctx context.Context, rec *models.EntityRecord) error

	// GetRecord retrieves a record by id.
	// Returns ErrRecordNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id string) (*models.EntityRecord, error)

	// UpdateRecord overwrites payload and version of an existing record.
	// Returns ErrRecordNotFound if the record doesn't exist.
	UpdateRecord(ctx context.Context, rec *models.EntityRecord) error

	// UpsertRecord inserts or overwrites a record unconditionally.
	// Используется форсированным разрешением конфликтов.
	UpsertRecord(ctx context.Context, rec *models.EntityRecord) error

	// DeleteRecord removes a record by id.
	// Deleting an absent record is not an error: delete is idempotent.
	DeleteRecord(ctx context.Context, id string) error

	// ListRecordsByOwner returns all records of the owner, optionally
	// filtered by entity type (empty string = all types).
	ListRecordsByOwner(ctx context.Context, ownerID string, entityType models.EntityType) ([]*models.EntityRecord, error)

	// ListTasksByProject returns all task records whose payload references
	// the given project. Нужен пересчету прогресса проекта.
	ListTasksByProject(ctx context.Context, ownerID, projectID string) ([]*models.EntityRecord, error)
}
