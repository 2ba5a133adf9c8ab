package core

// Payloads are checked with Validate at the input boundary; services assume they are valid.

type ListCreate struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// ListUpdate changes only the non-nil fields.
type ListUpdate struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description" validate:"omitnil,max=500"` // "" очищает описание
}

type TaskCreate struct {
	Title       string       `json:"title" validate:"required,min=1,max=100"`
	Description string       `json:"description" validate:"max=500"`
	Status      TaskStatus   `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// WithDefaults fills status and priority when the caller left them out.
// Every TaskStore applies it on create.
func (in TaskCreate) WithDefaults() TaskCreate {
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	return in
}

// TaskUpdate changes only the non-nil fields.
type TaskUpdate struct {
	Title       *string       `json:"title" validate:"omitnil,min=1,max=100"`
	Description *string       `json:"description" validate:"omitnil,max=500"`
	Status      *TaskStatus   `json:"status" validate:"omitnil,oneof=pending in_progress completed"`
	Priority    *TaskPriority `json:"priority" validate:"omitnil,oneof=low medium high"`
}

func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil
}

// Apply merges the set fields into t.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	return t
}

// Apply merges the set fields into l.
func (u ListUpdate) Apply(l ToDoList) ToDoList {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	return l
}

type ListTasksFilter struct {
	Status   *TaskStatus
	Priority *TaskPriority
}

// Match reports whether t passes every set filter.
func (f ListTasksFilter) Match(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}
