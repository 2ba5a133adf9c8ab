package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo-service/core"
)

var (
	_ core.ListStore = (*Storage)(nil)
	_ core.TaskStore = (*Storage)(nil)
	_ core.Pinger    = (*Storage)(nil)
)

// Storage keeps lists and tasks in maps guarded by one lock, so a list delete
// and the removal of its tasks are observed together.
type Storage struct {
	mu  sync.RWMutex
	now func() time.Time

	lists     map[uuid.UUID]core.ToDoList
	listOrder []uuid.UUID

	tasks     map[uuid.UUID]core.Task
	taskOrder []uuid.UUID
}

type Option func(*Storage)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

func New(opts ...Option) *Storage {
	s := &Storage{
		now:   time.Now,
		lists: make(map[uuid.UUID]core.ToDoList),
		tasks: make(map[uuid.UUID]core.Task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Ping(context.Context) error {
	return nil
}

func (s *Storage) timestamp() time.Time {
	return s.now().UTC()
}

// Lists

func (s *Storage) CreateList(_ context.Context, in core.ListCreate) (core.ToDoList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	l := core.ToDoList{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.lists[l.ID] = l
	s.listOrder = append(s.listOrder, l.ID)

	return l, nil
}

func (s *Storage) GetList(_ context.Context, id uuid.UUID) (core.ToDoList, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	return l, ok, nil
}

func (s *Storage) UpdateList(_ context.Context, id uuid.UUID, u core.ListUpdate) (core.ToDoList, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lists[id]
	if !ok {
		return core.ToDoList{}, false, nil
	}

	cur = u.Apply(cur)
	cur.UpdatedAt = s.later(cur.CreatedAt)
	s.lists[id] = cur

	return cur, true, nil
}

func (s *Storage) DeleteList(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return false, nil
	}

	delete(s.lists, id)
	s.listOrder = without(s.listOrder, func(x uuid.UUID) bool { return x == id })

	for taskID, t := range s.tasks {
		if t.ListID == id {
			delete(s.tasks, taskID)
		}
	}
	s.taskOrder = without(s.taskOrder, func(x uuid.UUID) bool {
		_, ok := s.tasks[x]
		return !ok
	})

	return true, nil
}

func (s *Storage) ListLists(context.Context) ([]core.ToDoList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.ToDoList, 0, len(s.listOrder))
	for _, id := range s.listOrder {
		out = append(out, s.lists[id])
	}
	return out, nil
}

// Tasks

func (s *Storage) CreateTask(_ context.Context, listID uuid.UUID, in core.TaskCreate) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[listID]; !ok {
		return core.Task{}, fmt.Errorf("create task in list %s: %w", listID, core.ErrParentGone)
	}

	in = in.WithDefaults()
	now := s.timestamp()
	t := core.Task{
		ID:          uuid.New(),
		ListID:      listID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[t.ID] = t
	s.taskOrder = append(s.taskOrder, t.ID)

	return t, nil
}

// lookupTask must be called with s.mu held.
func (s *Storage) lookupTask(listID, taskID uuid.UUID) (core.Task, bool) {
	t, ok := s.tasks[taskID]
	if !ok || t.ListID != listID {
		return core.Task{}, false
	}
	return t, true
}

func (s *Storage) GetTask(_ context.Context, listID, taskID uuid.UUID) (core.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.lookupTask(listID, taskID)
	return t, ok, nil
}

func (s *Storage) UpdateTask(_ context.Context, listID, taskID uuid.UUID, u core.TaskUpdate) (core.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lookupTask(listID, taskID)
	if !ok {
		return core.Task{}, false, nil
	}

	cur = u.Apply(cur)
	cur.UpdatedAt = s.later(cur.CreatedAt)
	s.tasks[taskID] = cur

	return cur, true, nil
}

func (s *Storage) DeleteTask(_ context.Context, listID, taskID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookupTask(listID, taskID); !ok {
		return false, nil
	}

	delete(s.tasks, taskID)
	s.taskOrder = without(s.taskOrder, func(x uuid.UUID) bool { return x == taskID })

	return true, nil
}

func (s *Storage) ListTasks(_ context.Context, listID uuid.UUID, f core.ListTasksFilter) ([]core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Task, 0)
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		if t.ListID != listID || !f.Match(t) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// later returns the current time, never earlier than created so that
// updated_at >= created_at holds even with a skewed clock.
func (s *Storage) later(created time.Time) time.Time {
	now := s.timestamp()
	if now.Before(created) {
		return created
	}
	return now
}

func without(ids []uuid.UUID, drop func(uuid.UUID) bool) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if !drop(id) {
			out = append(out, id)
		}
	}
	return out
}
