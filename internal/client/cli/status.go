package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/tasksync/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Println("=== Sync Status ===")
	fmt.Println()

	// Проверяем наличие сохраненной сессии
	auth, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			fmt.Println("Status: Not authenticated")
			fmt.Println()
			fmt.Println("Run 'tasksync login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	fmt.Println("Status: Authenticated")
	fmt.Printf("Username: %s\n", auth.Username)

	status, err := c.syncService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	fmt.Printf("Sync state: %s\n", status.State)
	if status.LastSyncAt > 0 {
		fmt.Printf("Last sync: %s\n", time.UnixMilli(status.LastSyncAt).Format(time.RFC3339))
	} else {
		fmt.Println("Last sync: never")
	}
	if status.LastError != "" {
		fmt.Printf("Last error: %s\n", status.LastError)
	}

	fmt.Println()
	if status.Pending > 0 {
		fmt.Printf("⚠️  Pending sync: %d operation(s) waiting to be synchronized\n", status.Pending)
		fmt.Println("Run 'tasksync sync' to synchronize with server.")
	} else {
		fmt.Println("✓ All changes synchronized with server")
	}

	// Показываем неразрешенные конфликты
	open, err := c.surface.List(ctx)
	if err != nil {
		fmt.Printf("\nWarning: Failed to list conflicts: %v\n", err)
		return nil
	}

	if len(open) > 0 {
		fmt.Println()
		fmt.Printf("⚠️  Unresolved conflicts: %d\n", len(open))
		fmt.Println("Run 'tasksync conflicts' to review them.")
	}

	return nil
}
