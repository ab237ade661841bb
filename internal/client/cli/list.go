package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/tasksync/internal/models"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	entityType := models.EntityType("")
	if len(args) > 0 {
		switch args[0] {
		case "tasks", "task":
			entityType = models.EntityTask
		case "projects", "project":
			entityType = models.EntityProject
		case "all":
		default:
			return fmt.Errorf("unknown entity type: %s. Use: tasks, projects, or all", args[0])
		}
	}

	records, err := c.tasksSvc.List(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("Nothing here yet.")
		fmt.Println()
		fmt.Println("Use 'tasksync add task' or 'tasksync add project' to get started.")
		return nil
	}

	fmt.Printf("Found %d record(s):\n", len(records))
	fmt.Println()

	for i, rec := range records {
		fmt.Printf("%d. %s\n", i+1, recordTitle(rec))
		fmt.Printf("   ID:   %s\n", rec.ID)
		fmt.Printf("   Type: %s\n", rec.EntityType)
		if rec.UpdatedAt == 0 {
			fmt.Println("   ⚠️  Not yet synchronized")
		}
		fmt.Println()
	}

	return nil
}

// recordTitle достает человекочитаемый заголовок из payload
func recordTitle(rec *models.EntityRecord) string {
	switch rec.EntityType {
	case models.EntityTask:
		var p models.TaskPayload
		if err := json.Unmarshal(rec.Payload, &p); err == nil && p.Title != "" {
			status := p.Status
			if status == "" {
				status = models.TaskStatusTodo
			}
			return fmt.Sprintf("[%s] %s", status, p.Title)
		}
	case models.EntityProject:
		var p models.ProjectPayload
		if err := json.Unmarshal(rec.Payload, &p); err == nil && p.Name != "" {
			return fmt.Sprintf("%s (%d%%)", p.Name, p.Progress)
		}
	}
	return "(untitled)"
}
