package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/internal/server/storage"
)

// InsertRecord creates a new entity record
// Returns ErrRecordExists if a record with this id is already present
func (s *Storage) InsertRecord(ctx context.Context, rec *models.EntityRecord) error {
	query := `
		INSERT INTO records (id, owner_id, entity_type, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.OwnerID,
		string(rec.EntityType),
		string(rec.Payload),
		rec.UpdatedAt,
	)

	if err != nil {
		// UNIQUE violation на PRIMARY KEY — запись уже существует
		if isUniqueViolation(err) {
			return storage.ErrRecordExists
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by id
// Returns ErrRecordNotFound if the record doesn't exist
func (s *Storage) GetRecord(ctx context.Context, id string) (*models.EntityRecord, error) {
	query := `
		SELECT id, owner_id, entity_type, payload, updated_at
		FROM records
		WHERE id = ?
	`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return rec, nil
}

// UpdateRecord overwrites payload and version of an existing record
// Returns ErrRecordNotFound if the record doesn't exist
func (s *Storage) UpdateRecord(ctx context.Context, rec *models.EntityRecord) error {
	query := `
		UPDATE records
		SET payload = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, string(rec.Payload), rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// UpsertRecord inserts or overwrites a record unconditionally
// Используется форсированным разрешением конфликтов
func (s *Storage) UpsertRecord(ctx context.Context, rec *models.EntityRecord) error {
	query := `
		INSERT INTO records (id, owner_id, entity_type, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.OwnerID,
		string(rec.EntityType),
		string(rec.Payload),
		rec.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	return nil
}

// DeleteRecord removes a record by id
// Удаление отсутствующей записи не ошибка: delete идемпотентен
func (s *Storage) DeleteRecord(ctx context.Context, id string) error {
	query := `DELETE FROM records WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}

// ListRecordsByOwner returns all records of the owner, optionally filtered by type
func (s *Storage) ListRecordsByOwner(ctx context.Context, ownerID string, entityType models.EntityType) ([]*models.EntityRecord, error) {
	query := `
		SELECT id, owner_id, entity_type, payload, updated_at
		FROM records
		WHERE owner_id = ?
	`
	args := []any{ownerID}

	if entityType != "" {
		query += ` AND entity_type = ?`
		args = append(args, string(entityType))
	}

	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// ListTasksByProject returns all task records whose payload references the project
func (s *Storage) ListTasksByProject(ctx context.Context, ownerID, projectID string) ([]*models.EntityRecord, error) {
	query := `
		SELECT id, owner_id, entity_type, payload, updated_at
		FROM records
		WHERE owner_id = ?
		  AND entity_type = 'task'
		  AND json_extract(payload, '$.project_id') = ?
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project tasks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.EntityRecord, error) {
	rec := &models.EntityRecord{}
	var entityType, payload string

	if err := row.Scan(&rec.ID, &rec.OwnerID, &entityType, &payload, &rec.UpdatedAt); err != nil {
		return nil, err
	}

	rec.EntityType = models.EntityType(entityType)
	rec.Payload = []byte(payload)

	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]*models.EntityRecord, error) {
	var records []*models.EntityRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
