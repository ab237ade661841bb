package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runConflicts(ctx context.Context) error {
	fmt.Println("=== Unresolved Conflicts ===")
	fmt.Println()

	open, err := c.surface.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}

	if len(open) == 0 {
		fmt.Println("✓ No conflicts.")
		return nil
	}

	fmt.Printf("Found %d conflict(s):\n", len(open))
	fmt.Println()

	for i, conflict := range open {
		fmt.Printf("%d. %s %s\n", i+1, conflict.EntityType, conflict.EntityID)
		fmt.Printf("   Conflict ID: %s\n", conflict.ID)
		fmt.Printf("   Reason:      %s\n", conflict.Reason)
		fmt.Printf("   Detected:    %s\n", conflict.DetectedAt.Format(time.RFC3339))
		if len(conflict.Local) > 0 {
			fmt.Printf("   Your change: %s\n", string(conflict.Local))
		}
		if conflict.Remote != nil {
			fmt.Printf("   On server:   %s\n", string(conflict.Remote.Payload))
		} else {
			fmt.Println("   On server:   (record does not exist)")
		}
		fmt.Println()
	}

	fmt.Println("Use 'tasksync resolve <conflict-id> local' to keep your version,")
	fmt.Println("or  'tasksync resolve <conflict-id> remote' to accept the server's.")

	return nil
}
