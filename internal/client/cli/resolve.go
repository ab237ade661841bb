package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/tasksync/internal/models"
)

func (c *Cli) runResolve(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tasksync resolve <conflict-id> <local|remote>")
	}

	conflictID := args[0]

	var winner models.Winner
	switch args[1] {
	case "local":
		winner = models.WinnerLocal
	case "remote":
		winner = models.WinnerRemote
	default:
		return fmt.Errorf("unknown winner: %s. Use: local or remote", args[1])
	}

	if err := c.surface.Resolve(ctx, conflictID, winner); err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}

	fmt.Printf("✓ Conflict resolved, kept %s version.\n", args[1])
	return nil
}
