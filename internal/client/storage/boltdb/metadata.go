package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/tasksync/internal/client/storage"
)

var (
	// Metadata bucket keys
	keyLastServerVersion = []byte("last_server_version")
	keyDeviceID          = []byte("device_id")

	// Auth bucket key
	keySession = []byte("session")
)

// SaveLastServerVersion saves the server version from the last successful sync
func (s *Storage) SaveLastServerVersion(ctx context.Context, version int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		value := []byte(strconv.FormatInt(version, 10))
		if err := bucket.Put(keyLastServerVersion, value); err != nil {
			return fmt.Errorf("failed to save last server version: %w", err)
		}

		return nil
	})
}

// GetLastServerVersion retrieves the last known server version.
// Returns 0 if no sync has been performed yet.
func (s *Storage) GetLastServerVersion(ctx context.Context) (int64, error) {
	var version int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get(keyLastServerVersion)
		if data == nil {
			return nil
		}

		v, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse last server version: %w", err)
		}

		version = v
		return nil
	})

	if err != nil {
		return 0, err
	}

	return version, nil
}

// DeviceID returns the stable device identifier, generating and
// persisting one on first call
func (s *Storage) DeviceID(ctx context.Context) (string, error) {
	var deviceID string

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get(keyDeviceID)
		if data != nil {
			deviceID = string(data)
			return nil
		}

		// Генерируем идентификатор при первом обращении
		deviceID = uuid.New().String()
		if err := bucket.Put(keyDeviceID, []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	return deviceID, nil
}

// SaveAuth stores the session auth data
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data, err := json.Marshal(auth)
		if err != nil {
			return fmt.Errorf("failed to marshal auth data: %w", err)
		}

		if err := bucket.Put(keySession, data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}

		return nil
	})
}

// GetAuth retrieves the session auth data
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth *storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get(keySession)
		if data == nil {
			return storage.ErrTokenNotFound
		}

		auth = &storage.AuthData{}
		if err := json.Unmarshal(data, auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return auth, nil
}

// ClearAuth removes the session auth data (logout)
func (s *Storage) ClearAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		return bucket.Delete(keySession)
	})
}
