package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	fmt.Println("Synchronizing with server...")

	result, err := c.syncService.SyncNow(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Sync completed.")
	fmt.Printf("Applied:   %d\n", result.Applied)
	fmt.Printf("Conflicts: %d\n", result.Conflicts)

	if result.Conflicts > 0 {
		fmt.Println()
		fmt.Println("⚠️  Run 'tasksync conflicts' to review and resolve them.")
	}

	return nil
}
