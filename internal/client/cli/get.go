package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: tasksync get <id>")
	}

	rec, err := c.tasksSvc.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("ID:   %s\n", rec.ID)
	fmt.Printf("Type: %s\n", rec.EntityType)
	if rec.UpdatedAt > 0 {
		fmt.Printf("Updated: %s\n", time.UnixMilli(rec.UpdatedAt).Format(time.RFC3339))
	} else {
		fmt.Println("Updated: not yet synchronized")
	}

	// Красиво печатаем payload
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, rec.Payload, "", "  "); err != nil {
		fmt.Printf("Payload: %s\n", string(rec.Payload))
		return nil
	}
	fmt.Printf("Payload:\n%s\n", pretty.String())

	return nil
}
