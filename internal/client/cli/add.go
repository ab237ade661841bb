package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/tasksync/internal/models"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entity type. Usage: tasksync add <task|project>")
	}

	switch args[0] {
	case "task":
		return c.runAddTask(ctx)
	case "project":
		return c.runAddProject(ctx)
	default:
		return fmt.Errorf("unknown entity type: %s. Use: task or project", args[0])
	}
}

func (c *Cli) runAddTask(ctx context.Context) error {
	fmt.Println("=== New Task ===")
	fmt.Println()

	title, err := readInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	notes, err := readInput("Notes (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read notes: %w", err)
	}

	projectID, err := readInput("Project ID (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}

	dueDate, err := readInput("Due date YYYY-MM-DD (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read due date: %w", err)
	}

	id, err := c.tasksSvc.CreateTask(ctx, &models.TaskPayload{
		Title:     title,
		Notes:     notes,
		Status:    models.TaskStatusTodo,
		ProjectID: projectID,
		DueDate:   dueDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Task saved locally.")
	fmt.Printf("ID: %s\n", id)

	c.trySync(ctx)
	return nil
}

func (c *Cli) runAddProject(ctx context.Context) error {
	fmt.Println("=== New Project ===")
	fmt.Println()

	name, err := readInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	color, err := readInput("Color (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read color: %w", err)
	}

	id, err := c.tasksSvc.CreateProject(ctx, &models.ProjectPayload{
		Name:  name,
		Color: color,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Project saved locally.")
	fmt.Printf("ID: %s\n", id)

	c.trySync(ctx)
	return nil
}

// trySync пытается сразу отправить изменения; офлайн — не ошибка,
// операция остается в очереди до следующей синхронизации
func (c *Cli) trySync(ctx context.Context) {
	result, err := c.syncService.SyncNow(ctx)
	if err != nil {
		fmt.Println("⚠️  Could not reach server, change will sync later.")
		return
	}
	if result.Conflicts > 0 {
		fmt.Printf("⚠️  Sync produced %d conflict(s). Run 'tasksync conflicts'.\n", result.Conflicts)
		return
	}
	fmt.Println("✓ Synchronized with server.")
}
