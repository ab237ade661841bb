package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tasksync/internal/models"
)

// seqKey кодирует порядковый номер в 8-байтовый big-endian ключ.
// BoltDB итерирует ключи в байтовом порядке, поэтому big-endian
// дает обход строго в порядке вставки.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Enqueue appends an operation to the tail of the durable queue
// and returns the assigned sequence number
func (s *Storage) Enqueue(ctx context.Context, op *models.Operation) (uint64, error) {
	var seq uint64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		// NextSequence монотонно растет и никогда не переиспользуется,
		// даже после удаления записей
		next, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		op.Seq = next

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		if err := bucket.Put(seqKey(next), data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		seq = next
		return nil
	})

	if err != nil {
		return 0, err
	}

	return seq, nil
}

// PeekBatch returns up to max operations in insertion order without
// removing them from the queue. Corrupt entries are deleted in place
// so a single bad record never blocks the rest of the queue.
func (s *Storage) PeekBatch(ctx context.Context, max int) ([]*models.Operation, error) {
	var ops []*models.Operation

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		cursor := bucket.Cursor()
		var corrupt [][]byte

		for k, v := cursor.First(); k != nil && len(ops) < max; k, v = cursor.Next() {
			op := &models.Operation{}
			if err := json.Unmarshal(v, op); err != nil {
				// Битую запись удаляем, а не возвращаем ошибку
				key := make([]byte, len(k))
				copy(key, k)
				corrupt = append(corrupt, key)
				continue
			}
			ops = append(ops, op)
		}

		for _, key := range corrupt {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete corrupt entry: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return ops, nil
}

// Commit removes operations with the given sequence numbers.
// Called after a terminal outcome (applied or conflict).
func (s *Storage) Commit(ctx context.Context, seqs []uint64) error {
	if len(seqs) == 0 {
		return nil
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		for _, seq := range seqs {
			if err := bucket.Delete(seqKey(seq)); err != nil {
				return fmt.Errorf("failed to delete operation %d: %w", seq, err)
			}
		}

		return nil
	})
}

// Requeue leaves operations in place after a failed attempt.
// PeekBatch недеструктивен, поэтому операции и так остаются в очереди;
// метод существует чтобы вызывающий код явно фиксировал исход батча.
func (s *Storage) Requeue(ctx context.Context, seqs []uint64) error {
	return nil
}

// Len returns the number of pending operations in the queue
func (s *Storage) Len(ctx context.Context) (int, error) {
	var n int

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		n = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, err
	}

	return n, nil
}
