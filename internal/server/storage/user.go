package storage

import "context"

// User представляет учетную запись пользователя на сервере
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	CreatedAt    int64  // unix миллисекунды
}

//go:generate moq -out user_mock.go . UserStorage

// UserStorage defines the interface for user account storage
type UserStorage interface {
	// CreateUser creates a new user account.
	// Returns ErrUserAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername retrieves a user by username.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
