// Package storetest holds the behavioural contract every core.ListStore and
// core.TaskStore implementation has to satisfy.
package storetest

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/core"
)

// Stores is a pair of stores sharing one backend.
type Stores struct {
	Lists core.ListStore
	Tasks core.TaskStore
}

// Factory returns empty stores; it is called once per subtest.
type Factory func(t *testing.T) Stores

func Run(t *testing.T, newStores Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s Stores)
	}{
		{"create_list_assigns_id_and_timestamps", testCreateList},
		{"get_list_missing", testGetListMissing},
		{"update_list_partial", testUpdateListPartial},
		{"update_list_missing_creates_nothing", testUpdateListMissing},
		{"delete_list_cascades", testDeleteListCascades},
		{"delete_list_missing", testDeleteListMissing},
		{"list_lists_deterministic", testListListsDeterministic},
		{"task_scoped_by_list", testTaskScopedByList},
		{"update_task_partial", testUpdateTaskPartial},
		{"update_task_wrong_list", testUpdateTaskWrongList},
		{"delete_task", testDeleteTask},
		{"list_tasks_filters", testListTasksFilters},
		{"create_task_defaults", testCreateTaskDefaults},
		{"create_task_missing_list", testCreateTaskMissingList},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStores(t))
		})
	}
}

func strPtr(v string) *string { return &v }

func mustCreateList(t *testing.T, s Stores, name string) core.ToDoList {
	t.Helper()

	l, err := s.Lists.CreateList(context.Background(), core.ListCreate{Name: name, Description: name + " description"})
	require.NoError(t, err, "prepare list")
	return l
}

func mustCreateTask(t *testing.T, s Stores, listID uuid.UUID, title string, st core.TaskStatus, p core.TaskPriority) core.Task {
	t.Helper()

	task, err := s.Tasks.CreateTask(context.Background(), listID, core.TaskCreate{
		Title:       title,
		Description: title + " description",
		Status:      st,
		Priority:    p,
	})
	require.NoError(t, err, "prepare task")
	return task
}

func titles(items []core.Task) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	sort.Strings(out)
	return out
}

func testCreateList(t *testing.T, s Stores) {
	ctx := context.Background()

	a, err := s.Lists.CreateList(ctx, core.ListCreate{Name: "work"})
	require.NoError(t, err)
	b, err := s.Lists.CreateList(ctx, core.ListCreate{Name: "home", Description: "chores"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.CreatedAt.Equal(a.UpdatedAt), "created_at %v != updated_at %v", a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, "", a.Description)
	assert.Equal(t, "chores", b.Description)

	got, ok, err := s.Lists.GetList(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.Name, got.Name)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
}

func testGetListMissing(t *testing.T, s Stores) {
	_, ok, err := s.Lists.GetList(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func testUpdateListPartial(t *testing.T, s Stores) {
	ctx := context.Background()
	l := mustCreateList(t, s, "work")

	updated, ok, err := s.Lists.UpdateList(ctx, l.ID, core.ListUpdate{Name: strPtr("office")})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "office", updated.Name)
	assert.Equal(t, l.Description, updated.Description)
	assert.True(t, l.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	cleared, ok, err := s.Lists.UpdateList(ctx, l.ID, core.ListUpdate{Description: strPtr("")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "office", cleared.Name)
	assert.Equal(t, "", cleared.Description)
}

func testUpdateListMissing(t *testing.T, s Stores) {
	ctx := context.Background()

	_, ok, err := s.Lists.UpdateList(ctx, uuid.New(), core.ListUpdate{Name: strPtr("ghost")})
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.Lists.ListLists(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testDeleteListCascades(t *testing.T, s Stores) {
	ctx := context.Background()
	doomed := mustCreateList(t, s, "doomed")
	kept := mustCreateList(t, s, "kept")

	t1 := mustCreateTask(t, s, doomed.ID, "a", core.StatusPending, core.PriorityLow)
	t2 := mustCreateTask(t, s, doomed.ID, "b", core.StatusCompleted, core.PriorityHigh)
	other := mustCreateTask(t, s, kept.ID, "c", core.StatusPending, core.PriorityMedium)

	ok, err := s.Lists.DeleteList(ctx, doomed.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.Lists.GetList(ctx, doomed.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, task := range []core.Task{t1, t2} {
		for _, listID := range []uuid.UUID{doomed.ID, kept.ID} {
			_, ok, err := s.Tasks.GetTask(ctx, listID, task.ID)
			require.NoError(t, err)
			assert.False(t, ok, "task %s survived under list %s", task.Title, listID)
		}
	}

	left, err := s.Tasks.ListTasks(ctx, doomed.ID, core.ListTasksFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)

	_, ok, err = s.Tasks.GetTask(ctx, kept.ID, other.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func testDeleteListMissing(t *testing.T, s Stores) {
	ok, err := s.Lists.DeleteList(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func testListListsDeterministic(t *testing.T, s Stores) {
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		mustCreateList(t, s, name)
	}

	first, err := s.Lists.ListLists(ctx)
	require.NoError(t, err)
	second, err := s.Lists.ListLists(ctx)
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	names := []string{first[0].Name, first[1].Name, first[2].Name}
	sort.Strings(names)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func testTaskScopedByList(t *testing.T, s Stores) {
	ctx := context.Background()
	l := mustCreateList(t, s, "work")
	other := mustCreateList(t, s, "other")

	task := mustCreateTask(t, s, l.ID, "report", core.StatusInProgress, core.PriorityHigh)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, l.ID, task.ListID)
	assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))

	got, ok, err := s.Tasks.GetTask(ctx, l.ID, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "report", got.Title)
	assert.Equal(t, "report description", got.Description)
	assert.Equal(t, core.StatusInProgress, got.Status)
	assert.Equal(t, core.PriorityHigh, got.Priority)

	_, ok, err = s.Tasks.GetTask(ctx, other.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testUpdateTaskPartial(t *testing.T, s Stores) {
	ctx := context.Background()
	l := mustCreateList(t, s, "work")
	task := mustCreateTask(t, s, l.ID, "report", core.StatusPending, core.PriorityLow)

	done := core.StatusCompleted
	updated, ok, err := s.Tasks.UpdateTask(ctx, l.ID, task.ID, core.TaskUpdate{Status: &done})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, core.StatusCompleted, updated.Status)
	assert.Equal(t, task.Title, updated.Title)
	assert.Equal(t, task.Description, updated.Description)
	assert.Equal(t, task.Priority, updated.Priority)
	assert.True(t, task.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))

	stored, ok, err := s.Tasks.GetTask(ctx, l.ID, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.StatusCompleted, stored.Status)
}

func testUpdateTaskWrongList(t *testing.T, s Stores) {
	ctx := context.Background()
	l := mustCreateList(t, s, "work")
	other := mustCreateList(t, s, "other")
	task := mustCreateTask(t, s, l.ID, "report", core.StatusPending, core.PriorityLow)

	_, ok, err := s.Tasks.UpdateTask(ctx, other.ID, task.ID, core.TaskUpdate{Title: strPtr("hijacked")})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Tasks.UpdateTask(ctx, l.ID, uuid.New(), core.TaskUpdate{Title: strPtr("ghost")})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, ok, err := s.Tasks.GetTask(ctx, l.ID, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "report", stored.Title)
	assert.True(t, task.UpdatedAt.Equal(stored.UpdatedAt))

	all, err := s.Tasks.ListTasks(ctx, l.ID, core.ListTasksFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testDeleteTask(t *testing.T, s Stores) {
	ctx := context.Background()
	l := mustCreateList(t, s, "work")
	other := mustCreateList(t, s, "other")
	task := mustCreateTask(t, s, l.ID, "report", core.StatusPending, core.PriorityLow)

	ok, err := s.Tasks.DeleteTask(ctx, other.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Tasks.DeleteTask(ctx, l.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Tasks.DeleteTask(ctx, l.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testListTasksFilters(t *testing.T, s Stores) {
	ctx := context.Background()
	l := mustCreateList(t, s, "work")
	other := mustCreateList(t, s, "other")

	mustCreateTask(t, s, l.ID, "a", core.StatusPending, core.PriorityLow)
	mustCreateTask(t, s, l.ID, "b", core.StatusCompleted, core.PriorityHigh)
	mustCreateTask(t, s, l.ID, "c", core.StatusCompleted, core.PriorityLow)
	mustCreateTask(t, s, l.ID, "d", core.StatusInProgress, core.PriorityHigh)
	mustCreateTask(t, s, other.ID, "x", core.StatusCompleted, core.PriorityLow)

	completed := core.StatusCompleted
	low := core.PriorityLow

	testCases := []struct {
		name   string
		filter core.ListTasksFilter
		want   []string
	}{
		{name: "no_filters", filter: core.ListTasksFilter{}, want: []string{"a", "b", "c", "d"}},
		{name: "status", filter: core.ListTasksFilter{Status: &completed}, want: []string{"b", "c"}},
		{name: "priority", filter: core.ListTasksFilter{Priority: &low}, want: []string{"a", "c"}},
		{name: "status_and_priority", filter: core.ListTasksFilter{Status: &completed, Priority: &low}, want: []string{"c"}},
	}

	for _, tc := range testCases {
		got, err := s.Tasks.ListTasks(ctx, l.ID, tc.filter)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, titles(got), tc.name)
	}

	empty, err := s.Tasks.ListTasks(ctx, uuid.New(), core.ListTasksFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testCreateTaskDefaults(t *testing.T, s Stores) {
	l := mustCreateList(t, s, "work")

	task, err := s.Tasks.CreateTask(context.Background(), l.ID, core.TaskCreate{Title: "report"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusPending, task.Status)
	assert.Equal(t, core.PriorityMedium, task.Priority)

	got, ok, err := s.Tasks.GetTask(context.Background(), l.ID, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.StatusPending, got.Status)
	assert.Equal(t, core.PriorityMedium, got.Priority)
}

func testCreateTaskMissingList(t *testing.T, s Stores) {
	missing := uuid.New()

	_, err := s.Tasks.CreateTask(context.Background(), missing, core.TaskCreate{Title: "report"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrParentGone), "got %v", err)

	left, err := s.Tasks.ListTasks(context.Background(), missing, core.ListTasksFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)
}
