package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	// Удаляем только сессию: очередь, кэш и конфликты остаются,
	// чтобы офлайн-правки не потерялись при повторном входе
	if err := c.store.ClearAuth(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Println("✓ Logged out.")
	fmt.Println("Local data is kept. Run 'tasksync login' to sync again.")

	return nil
}
