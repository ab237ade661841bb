package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
)

// SaveRecord stores or overwrites a cached record
func (s *Storage) SaveRecord(ctx context.Context, rec *models.EntityRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if err := bucket.Put([]byte(rec.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})
}

// GetRecord retrieves a cached record by ID
func (s *Storage) GetRecord(ctx context.Context, id string) (*models.EntityRecord, error) {
	var rec *models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		rec = &models.EntityRecord{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListRecords returns cached records, optionally filtered by type
func (s *Storage) ListRecords(ctx context.Context, entityType models.EntityType) ([]*models.EntityRecord, error) {
	var records []*models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		// Итерируемся по всем записям
		return bucket.ForEach(func(k, v []byte) error {
			rec := &models.EntityRecord{}
			if err := json.Unmarshal(v, rec); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}

			// Фильтруем по типу (пустой тип = все)
			if entityType == "" || rec.EntityType == entityType {
				records = append(records, rec)
			}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteRecord removes a cached record. Idempotent.
func (s *Storage) DeleteRecord(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		return bucket.Delete([]byte(id))
	})
}

// Clear removes all cached records
func (s *Storage) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketCache); err != nil {
			return fmt.Errorf("failed to delete cache bucket: %w", err)
		}

		if _, err := tx.CreateBucket(bucketCache); err != nil {
			return fmt.Errorf("failed to recreate cache bucket: %w", err)
		}

		return nil
	})
}
