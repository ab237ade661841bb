package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: tasksync delete <id>")
	}

	if err := c.tasksSvc.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	fmt.Println("✓ Delete saved locally.")
	c.trySync(ctx)
	return nil
}
