package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
)

// SaveConflict stores or updates a conflict
func (s *Storage) SaveConflict(ctx context.Context, c *models.Conflict) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal conflict: %w", err)
		}

		if err := bucket.Put([]byte(c.ID), data); err != nil {
			return fmt.Errorf("failed to save conflict: %w", err)
		}

		return nil
	})
}

// GetConflict retrieves a conflict by ID
func (s *Storage) GetConflict(ctx context.Context, id string) (*models.Conflict, error) {
	var conflict *models.Conflict

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrConflictNotFound
		}

		conflict = &models.Conflict{}
		if err := json.Unmarshal(data, conflict); err != nil {
			return fmt.Errorf("failed to unmarshal conflict: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return conflict, nil
}

// ListConflicts returns all stored conflicts
func (s *Storage) ListConflicts(ctx context.Context) ([]*models.Conflict, error) {
	var conflicts []*models.Conflict

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			conflict := &models.Conflict{}
			if err := json.Unmarshal(v, conflict); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}

			conflicts = append(conflicts, conflict)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return conflicts, nil
}

// DeleteConflict removes a conflict. Idempotent.
func (s *Storage) DeleteConflict(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		return bucket.Delete([]byte(id))
	})
}
