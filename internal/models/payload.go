package models

// TaskStatus статус задачи
const (
	TaskStatusTodo  = "todo"
	TaskStatusDoing = "doing"
	TaskStatusDone  = "done"
)

// TaskPayload типизированное представление payload задачи.
// На проводе и в хранилищах payload остается raw JSON — структура нужна
// клиентскому UI и серверному пересчету прогресса проекта.
type TaskPayload struct {
	Title     string `json:"title,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status,omitempty"` // todo | doing | done
	ProjectID string `json:"project_id,omitempty"`
	DueDate   string `json:"due_date,omitempty"` // YYYY-MM-DD, опционально
}

// ProjectPayload типизированное представление payload проекта.
// Progress, DoneTasks и TotalTasks — производные поля, пересчитываются
// сервером асинхронно после записей задач.
type ProjectPayload struct {
	Name       string `json:"name,omitempty"`
	Color      string `json:"color,omitempty"`
	Progress   int    `json:"progress,omitempty"` // 0..100
	DoneTasks  int    `json:"done_tasks,omitempty"`
	TotalTasks int    `json:"total_tasks,omitempty"`
}
