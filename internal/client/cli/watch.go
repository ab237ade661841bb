package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	rtclient "github.com/iudanet/tasksync/internal/client/realtime"
	"github.com/iudanet/tasksync/internal/client/storage"
	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/internal/realtime"
)

func (c *Cli) runWatch(ctx context.Context) error {
	auth, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return fmt.Errorf("not authenticated. Please run 'tasksync login' first")
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	deviceID, err := c.store.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get device id: %w", err)
	}

	fmt.Println("Watching for changes... (Ctrl+C to stop)")
	fmt.Println()

	// Фоновый цикл синхронизации: триггерится при переподключении
	// и после локальных изменений
	go c.syncService.Run(ctx)

	// Страховочный периодический триггер на случай пропущенных событий
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.syncService.TriggerSync()
			}
		}
	}()

	client := rtclient.NewClient(c.serverURL, auth.AccessToken, deviceID, c.logger)

	client.OnConnect = func() {
		fmt.Println("✓ Connected to realtime channel.")
		// После (пере)подключения догоняем пропущенное
		c.syncService.TriggerSync()
	}

	client.OnMessage = func(msg *realtime.Message) {
		if msg.Type != realtime.TypeEntityUpdated {
			return
		}
		if err := c.applyRemoteUpdate(ctx, auth.UserID, msg); err != nil {
			c.logger.Warn("Failed to apply remote update", "entity_id", msg.EntityID, "error", err)
			return
		}
		fmt.Printf("[%s] %s %s %s\n",
			time.Now().Format("15:04:05"),
			msg.Entity,
			msg.EntityID,
			msg.Action,
		)
	}

	err = client.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Println()
		fmt.Println("Stopped.")
		return nil
	}
	return err
}

// applyRemoteUpdate отражает серверное событие в локальном кэше
func (c *Cli) applyRemoteUpdate(ctx context.Context, userID string, msg *realtime.Message) error {
	if msg.Action == string(models.ActionDelete) {
		return c.store.DeleteRecord(ctx, msg.EntityID)
	}

	return c.store.SaveRecord(ctx, &models.EntityRecord{
		ID:         msg.EntityID,
		OwnerID:    userID,
		EntityType: models.EntityType(msg.Entity),
		Payload:    msg.Data,
		UpdatedAt:  msg.Version,
	})
}
