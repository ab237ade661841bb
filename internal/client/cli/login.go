package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Logging in...")

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	// Сохраняем сессию в локальное хранилище
	if err := c.store.SaveAuth(ctx, &storage.AuthData{
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID,
		Username:    username,
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Login successful!")
	fmt.Printf("Username: %s\n", username)
	fmt.Println()
	fmt.Println("Local changes will be synchronized on 'tasksync sync'.")

	return nil
}
