package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// AuthData токен доступа текущей сессии
type AuthData struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
}

// MetadataStorage defines the interface for client metadata
type MetadataStorage interface {
	// SaveLastServerVersion saves the server version from the last
	// successful sync response.
	SaveLastServerVersion(ctx context.Context, version int64) error

	// GetLastServerVersion retrieves the last known server version.
	// Returns 0 if no sync has been performed yet.
	GetLastServerVersion(ctx context.Context) (int64, error)

	// DeviceID returns the stable device identifier, generating and
	// persisting one on first call.
	DeviceID(ctx context.Context) (string, error)

	// SaveAuth stores the session auth data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the session auth data.
	// Returns ErrTokenNotFound if not logged in.
	GetAuth(ctx context.Context) (*AuthData, error)

	// ClearAuth removes the session auth data (logout)
	ClearAuth(ctx context.Context) error
}
