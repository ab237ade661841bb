package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tasksync update <id> <field=value> [field=value ...]")
	}

	id := args[0]
	patch, err := parsePatch(args[1:])
	if err != nil {
		return err
	}

	if err := c.tasksSvc.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	fmt.Println("✓ Update saved locally.")
	c.trySync(ctx)
	return nil
}

// parsePatch собирает JSON патч из аргументов вида field=value.
// Числа и булевы значения распознаются, остальное — строки.
func parsePatch(pairs []string) (json.RawMessage, error) {
	fields := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field assignment: %q (expected field=value)", pair)
		}

		if n, err := strconv.Atoi(value); err == nil {
			fields[key] = n
		} else if b, err := strconv.ParseBool(value); err == nil {
			fields[key] = b
		} else {
			fields[key] = value
		}
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}
	return patch, nil
}
