package workspace

import (
	"context"
	"fmt"

	"github.com/tekguyz/myplace/internal/gemini"
	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

// Tasks returns all tasks in board order.
func (w *Workspace) Tasks() []model.Task {
	return store.Load(w.store, store.KeyTasks, []model.Task{})
}

// AddTask appends a new card to the "To Do" column.
func (w *Workspace) AddTask(content string) (model.Task, error) {
	t := model.Task{
		ID:      model.NewID("task"),
		Content: content,
		Status:  model.StatusToDo,
	}
	tasks := append(w.Tasks(), t)
	return t, store.Put(w.store, store.KeyTasks, tasks)
}

// MoveTask transitions a card to a new column. Only the named task's status
// changes; every other task and field is untouched.
func (w *Workspace) MoveTask(id string, status model.KanbanStatus) (model.Task, error) {
	if !status.Valid() {
		return model.Task{}, fmt.Errorf("unknown kanban status %q", status)
	}

	tasks := w.Tasks()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Status = status
			return tasks[i], store.Put(w.store, store.KeyTasks, tasks)
		}
	}
	return model.Task{}, store.ErrNotFound
}

// DeleteTask removes a card from the board.
func (w *Workspace) DeleteTask(id string) error {
	tasks := w.Tasks()
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return store.ErrNotFound
	}
	return store.Put(w.store, store.KeyTasks, kept)
}

// ScheduleTaskWithAI parses a natural-language prompt into a task and adds
// it to the board. The parsed due date is returned for display; the card
// itself carries no due date.
func (w *Workspace) ScheduleTaskWithAI(ctx context.Context, prompt string) (*gemini.ScheduledTask, model.Task, error) {
	parsed, err := w.ai.ScheduleTask(ctx, prompt)
	if err != nil {
		return nil, model.Task{}, fmt.Errorf("parsing schedule prompt: %w", err)
	}

	t, err := w.AddTask(parsed.Task)
	if err != nil {
		return nil, model.Task{}, err
	}
	return parsed, t, nil
}
