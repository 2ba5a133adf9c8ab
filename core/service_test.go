package core_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"todo-service/adapters/memory"
	"todo-service/core"
)

type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func newServices() (*memory.Storage, *core.ListService, *core.TaskService) {
	clock := &tickingClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	storage := memory.New(memory.WithClock(clock.Now))
	return storage, core.NewListService(storage), core.NewTaskService(storage, storage)
}

func mustCreateList(t *testing.T, svc *core.ListService, name string) core.ToDoList {
	t.Helper()

	l, err := svc.CreateList(context.Background(), core.ListCreate{Name: name})
	if err != nil {
		t.Fatalf("failed to prepare list: %v", err)
	}
	return l
}

func mustCreateTask(t *testing.T, svc *core.TaskService, listID uuid.UUID, in core.TaskCreate) core.Task {
	t.Helper()

	task, err := svc.CreateTask(context.Background(), listID, in)
	if err != nil {
		t.Fatalf("failed to prepare task: %v", err)
	}
	return task
}

func strPtr(v string) *string { return &v }

// Lists

func TestListService_CreateAndGet(t *testing.T) {
	t.Parallel()

	_, lists, _ := newServices()

	l, err := lists.CreateList(context.Background(), core.ListCreate{Name: "Groceries", Description: "weekly"})
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}
	if l.ID == uuid.Nil {
		t.Fatalf("expected id to be generated")
	}
	if !l.CreatedAt.Equal(l.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at, got %v and %v", l.CreatedAt, l.UpdatedAt)
	}

	got, err := lists.GetList(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("GetList returned error: %v", err)
	}
	if got != l {
		t.Fatalf("expected %+v, got %+v", l, got)
	}
}

func TestListService_NotFound(t *testing.T) {
	t.Parallel()

	_, lists, _ := newServices()
	missing := uuid.New()

	testCases := []struct {
		name string
		call func() error
	}{
		{name: "get", call: func() error {
			_, err := lists.GetList(context.Background(), missing)
			return err
		}},
		{name: "update", call: func() error {
			_, err := lists.UpdateList(context.Background(), missing, core.ListUpdate{Name: strPtr("x")})
			return err
		}},
		{name: "delete", call: func() error {
			return lists.DeleteList(context.Background(), missing)
		}},
	}

	for _, tc := range testCases {
		if err := tc.call(); !errors.Is(err, core.ErrListNotFound) {
			t.Fatalf("%s: expected ErrListNotFound, got %v", tc.name, err)
		}
	}
}

func TestListService_UpdateKeepsOmittedFields(t *testing.T) {
	t.Parallel()

	_, lists, _ := newServices()

	l, err := lists.CreateList(context.Background(), core.ListCreate{Name: "work", Description: "office stuff"})
	if err != nil {
		t.Fatalf("CreateList returned error: %v", err)
	}

	updated, err := lists.UpdateList(context.Background(), l.ID, core.ListUpdate{Name: strPtr("job")})
	if err != nil {
		t.Fatalf("UpdateList returned error: %v", err)
	}
	if updated.Name != "job" {
		t.Fatalf("expected name %q, got %q", "job", updated.Name)
	}
	if updated.Description != "office stuff" {
		t.Fatalf("expected description to stay, got %q", updated.Description)
	}
	if !updated.CreatedAt.Equal(l.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", l.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(l.UpdatedAt) {
		t.Fatalf("expected updated_at to advance, %v -> %v", l.UpdatedAt, updated.UpdatedAt)
	}
}

func TestListService_ListAll(t *testing.T) {
	t.Parallel()

	_, lists, _ := newServices()
	for _, name := range []string{"b", "a", "c"} {
		mustCreateList(t, lists, name)
	}

	all, err := lists.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}

	names := make([]string, 0, len(all))
	for _, l := range all {
		names = append(names, l.Name)
	}
	sort.Strings(names)

	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestListService_DeleteCascadesToTasks(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "doomed")
	other := mustCreateList(t, lists, "other")
	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "milk"})

	if err := lists.DeleteList(context.Background(), l.ID); err != nil {
		t.Fatalf("DeleteList returned error: %v", err)
	}

	if _, err := tasks.ListTasks(context.Background(), l.ID, core.ListTasksFilter{}); !errors.Is(err, core.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
	for _, listID := range []uuid.UUID{l.ID, other.ID} {
		if _, err := tasks.GetTask(context.Background(), listID, task.ID); !errors.Is(err, core.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound under %s, got %v", listID, err)
		}
	}
	if _, err := tasks.UpdateTask(context.Background(), l.ID, task.ID, core.TaskUpdate{Title: strPtr("x")}); !errors.Is(err, core.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after cascade, got %v", err)
	}
}

// Tasks

func TestTaskService_CreateTask_ListNotFound(t *testing.T) {
	t.Parallel()

	storage, _, tasks := newServices()
	missing := uuid.New()

	_, err := tasks.CreateTask(context.Background(), missing, core.TaskCreate{Title: "milk"})
	if !errors.Is(err, core.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}

	left, _ := storage.ListTasks(context.Background(), missing, core.ListTasksFilter{})
	if len(left) != 0 {
		t.Fatalf("expected no task to be stored, got %d", len(left))
	}
}

// vanishingLists reports every list as present, so the task store is the one
// that notices the list is gone.
type vanishingLists struct {
	core.ListStore
}

func (vanishingLists) GetList(_ context.Context, id uuid.UUID) (core.ToDoList, bool, error) {
	return core.ToDoList{ID: id, Name: "gone"}, true, nil
}

func TestTaskService_CreateTask_ListDeletedConcurrently(t *testing.T) {
	t.Parallel()

	storage, _, _ := newServices()
	tasks := core.NewTaskService(vanishingLists{storage}, storage)

	_, err := tasks.CreateTask(context.Background(), uuid.New(), core.TaskCreate{Title: "milk"})
	if !errors.Is(err, core.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
	if errors.Is(err, core.ErrParentGone) {
		t.Fatalf("storage error leaked to caller: %v", err)
	}
}

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")

	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "report"})

	if task.Status != core.StatusPending {
		t.Fatalf("expected default status %q, got %q", core.StatusPending, task.Status)
	}
	if task.Priority != core.PriorityMedium {
		t.Fatalf("expected default priority %q, got %q", core.PriorityMedium, task.Priority)
	}
	if task.ListID != l.ID {
		t.Fatalf("expected list id %s, got %s", l.ID, task.ListID)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at")
	}
}

func TestTaskService_IDsAreUnique(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")

	seen := map[uuid.UUID]bool{l.ID: true}
	for i := 0; i < 20; i++ {
		task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "t"})
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestTaskService_GetTask_OtherListIsNotFound(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")
	other := mustCreateList(t, lists, "home")
	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "report"})

	if _, err := tasks.GetTask(context.Background(), l.ID, task.ID); err != nil {
		t.Fatalf("GetTask returned error: %v", err)
	}

	for _, listID := range []uuid.UUID{other.ID, uuid.New()} {
		_, err := tasks.GetTask(context.Background(), listID, task.ID)
		if !errors.Is(err, core.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	}
}

func TestTaskService_UpdateTask_StatusOnlyKeepsOtherFields(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")
	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{
		Title:       "report",
		Description: "quarterly",
		Priority:    core.PriorityHigh,
	})

	done := core.StatusCompleted
	updated, err := tasks.UpdateTask(context.Background(), l.ID, task.ID, core.TaskUpdate{Status: &done})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}

	if updated.Status != core.StatusCompleted {
		t.Fatalf("expected status %q, got %q", core.StatusCompleted, updated.Status)
	}
	if updated.Title != task.Title || updated.Description != task.Description || updated.Priority != task.Priority {
		t.Fatalf("unexpected change of other fields: %+v -> %+v", task, updated)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("expected updated_at to advance")
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("created_at changed")
	}
}

func TestTaskService_MissingTask_NoStateChange(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")
	other := mustCreateList(t, lists, "home")
	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "report"})

	testCases := []struct {
		name   string
		listID uuid.UUID
		taskID uuid.UUID
	}{
		{name: "unknown_task", listID: l.ID, taskID: uuid.New()},
		{name: "foreign_list", listID: other.ID, taskID: task.ID},
		{name: "unknown_list", listID: uuid.New(), taskID: task.ID},
	}

	for _, tc := range testCases {
		ctx := context.Background()

		if _, err := tasks.UpdateTask(ctx, tc.listID, tc.taskID, core.TaskUpdate{Title: strPtr("changed")}); !errors.Is(err, core.ErrTaskNotFound) {
			t.Fatalf("%s: UpdateTask expected ErrTaskNotFound, got %v", tc.name, err)
		}
		if _, err := tasks.ChangeStatus(ctx, tc.listID, tc.taskID, core.StatusCompleted); !errors.Is(err, core.ErrTaskNotFound) {
			t.Fatalf("%s: ChangeStatus expected ErrTaskNotFound, got %v", tc.name, err)
		}
		if err := tasks.DeleteTask(ctx, tc.listID, tc.taskID); !errors.Is(err, core.ErrTaskNotFound) {
			t.Fatalf("%s: DeleteTask expected ErrTaskNotFound, got %v", tc.name, err)
		}
	}

	stored, err := tasks.GetTask(context.Background(), l.ID, task.ID)
	if err != nil {
		t.Fatalf("GetTask returned error: %v", err)
	}
	if stored != task {
		t.Fatalf("task changed: %+v -> %+v", task, stored)
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")
	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "report"})

	if err := tasks.DeleteTask(context.Background(), l.ID, task.ID); err != nil {
		t.Fatalf("DeleteTask returned error: %v", err)
	}
	if _, err := tasks.GetTask(context.Background(), l.ID, task.ID); !errors.Is(err, core.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_ChangeStatus_AnyTransition(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")
	task := mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "report", Priority: core.PriorityLow})

	for _, st := range []core.TaskStatus{core.StatusCompleted, core.StatusPending, core.StatusInProgress, core.StatusCompleted} {
		updated, err := tasks.ChangeStatus(context.Background(), l.ID, task.ID, st)
		if err != nil {
			t.Fatalf("ChangeStatus(%s) returned error: %v", st, err)
		}
		if updated.Status != st {
			t.Fatalf("expected status %q, got %q", st, updated.Status)
		}
		if updated.Title != "report" || updated.Priority != core.PriorityLow {
			t.Fatalf("other fields changed: %+v", updated)
		}
	}
}

func TestTaskService_ListTasks_Filters(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	l := mustCreateList(t, lists, "work")

	mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "a", Status: core.StatusPending, Priority: core.PriorityHigh})
	mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "b", Status: core.StatusCompleted, Priority: core.PriorityHigh})
	mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "c", Status: core.StatusCompleted, Priority: core.PriorityLow})

	completed := core.StatusCompleted
	high := core.PriorityHigh

	testCases := []struct {
		name   string
		filter core.ListTasksFilter
		want   []string
	}{
		{name: "none", want: []string{"a", "b", "c"}},
		{name: "status", filter: core.ListTasksFilter{Status: &completed}, want: []string{"b", "c"}},
		{name: "priority", filter: core.ListTasksFilter{Priority: &high}, want: []string{"a", "b"}},
		{name: "both", filter: core.ListTasksFilter{Status: &completed, Priority: &high}, want: []string{"b"}},
	}

	for _, tc := range testCases {
		items, err := tasks.ListTasks(context.Background(), l.ID, tc.filter)
		if err != nil {
			t.Fatalf("%s: ListTasks returned error: %v", tc.name, err)
		}

		got := make([]string, 0, len(items))
		for _, it := range items {
			got = append(got, it.Title)
		}
		sort.Strings(got)

		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
			}
		}
	}
}

func TestTaskService_ListTasks_ListNotFound(t *testing.T) {
	t.Parallel()

	_, _, tasks := newServices()

	if _, err := tasks.ListTasks(context.Background(), uuid.New(), core.ListTasksFilter{}); !errors.Is(err, core.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestTaskService_CompletionPercentage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		statuses []core.TaskStatus
		want     float64
	}{
		{name: "empty", want: 0},
		{name: "two_of_three", statuses: []core.TaskStatus{core.StatusCompleted, core.StatusCompleted, core.StatusPending}, want: 66.67},
		{name: "one_of_three", statuses: []core.TaskStatus{core.StatusCompleted, core.StatusInProgress, core.StatusPending}, want: 33.33},
		{name: "all", statuses: []core.TaskStatus{core.StatusCompleted, core.StatusCompleted}, want: 100},
		{name: "none", statuses: []core.TaskStatus{core.StatusPending, core.StatusInProgress}, want: 0},
		{name: "one_of_eight", statuses: []core.TaskStatus{
			core.StatusCompleted, core.StatusPending, core.StatusPending, core.StatusPending,
			core.StatusPending, core.StatusPending, core.StatusPending, core.StatusPending,
		}, want: 12.5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, lists, tasks := newServices()
			l := mustCreateList(t, lists, "work")
			for _, st := range tc.statuses {
				mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "t", Status: st})
			}

			got, err := tasks.CompletionPercentage(context.Background(), l.ID)
			if err != nil {
				t.Fatalf("CompletionPercentage returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTaskService_CompletionPercentage_ListNotFound(t *testing.T) {
	t.Parallel()

	_, _, tasks := newServices()

	if _, err := tasks.CompletionPercentage(context.Background(), uuid.New()); !errors.Is(err, core.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestGroceriesScenario(t *testing.T) {
	t.Parallel()

	_, lists, tasks := newServices()
	ctx := context.Background()

	l := mustCreateList(t, lists, "Groceries")
	mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "Milk", Status: core.StatusPending, Priority: core.PriorityLow})
	mustCreateTask(t, tasks, l.ID, core.TaskCreate{Title: "Bread", Status: core.StatusCompleted, Priority: core.PriorityHigh})

	completed := core.StatusCompleted
	items, err := tasks.ListTasks(ctx, l.ID, core.ListTasksFilter{Status: &completed})
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Bread" {
		t.Fatalf("expected [Bread], got %+v", items)
	}

	pct, err := tasks.CompletionPercentage(ctx, l.ID)
	if err != nil {
		t.Fatalf("CompletionPercentage returned error: %v", err)
	}
	if pct != 50 {
		t.Fatalf("expected 50, got %v", pct)
	}
}
