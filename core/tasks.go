package core

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

type TaskService struct {
	lists ListStore
	tasks TaskStore
}

func NewTaskService(lists ListStore, tasks TaskStore) *TaskService {
	return &TaskService{lists: lists, tasks: tasks}
}

func (s *TaskService) requireList(ctx context.Context, listID uuid.UUID) error {
	_, ok, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return err
	}
	if !ok {
		return listNotFound(listID)
	}
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, listID uuid.UUID, in TaskCreate) (Task, error) {
	if err := s.requireList(ctx, listID); err != nil {
		return Task{}, err
	}
	t, err := s.tasks.CreateTask(ctx, listID, in)
	if errors.Is(err, ErrParentGone) {
		// list removed after the lookup above
		return Task{}, listNotFound(listID)
	}
	return t, err
}

// GetTask reports ErrTaskNotFound also when the task belongs to another list.
func (s *TaskService) GetTask(ctx context.Context, listID, taskID uuid.UUID) (Task, error) {
	t, ok, err := s.tasks.GetTask(ctx, listID, taskID)
	if err != nil {
		return Task{}, err
	}
	if !ok {
		return Task{}, taskNotFound(taskID)
	}
	return t, nil
}

// UpdateTask does not look the list up: a deleted list has no tasks left.
func (s *TaskService) UpdateTask(ctx context.Context, listID, taskID uuid.UUID, u TaskUpdate) (Task, error) {
	t, ok, err := s.tasks.UpdateTask(ctx, listID, taskID, u)
	if err != nil {
		return Task{}, err
	}
	if !ok {
		return Task{}, taskNotFound(taskID)
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, listID, taskID uuid.UUID) error {
	ok, err := s.tasks.DeleteTask(ctx, listID, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return taskNotFound(taskID)
	}
	return nil
}

// ChangeStatus is GetTask followed by a status-only UpdateTask.
func (s *TaskService) ChangeStatus(ctx context.Context, listID, taskID uuid.UUID, status TaskStatus) (Task, error) {
	if _, err := s.GetTask(ctx, listID, taskID); err != nil {
		return Task{}, err
	}
	return s.UpdateTask(ctx, listID, taskID, TaskUpdate{Status: &status})
}

func (s *TaskService) ListTasks(ctx context.Context, listID uuid.UUID, f ListTasksFilter) ([]Task, error) {
	if err := s.requireList(ctx, listID); err != nil {
		return nil, err
	}
	return s.tasks.ListTasks(ctx, listID, f)
}

// CompletionPercentage returns the share of completed tasks in percent,
// rounded half away from zero to two decimals. An empty list yields 0.
func (s *TaskService) CompletionPercentage(ctx context.Context, listID uuid.UUID) (float64, error) {
	items, err := s.ListTasks(ctx, listID, ListTasksFilter{})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	var done int
	for _, t := range items {
		if t.Status == StatusCompleted {
			done++
		}
	}

	pct := float64(done) * 100 / float64(len(items))
	return math.Round(pct*100) / 100, nil
}
