package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Task is only mutated through its methods; every mutation refreshes updatedAt.
type Task struct {
	id          uuid.UUID
	title       string
	description *string
	isCompleted bool
	dueDate     *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// TaskChanges lists the fields an update supplies. Nil fields are left alone.
type TaskChanges struct {
	Title       *string
	Description *string
	IsCompleted *bool
	DueDate     *time.Time
}

// TaskRecord is the storage shape of a Task.
type TaskRecord struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func NewTask(title string, description *string, dueDate *time.Time) (*Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if err := validateDescription(description); err != nil {
		return nil, err
	}

	createdAt := now()

	return &Task{
		id:          uuid.New(),
		title:       title,
		description: cloneString(description),
		isCompleted: false,
		dueDate:     normalizeTime(dueDate),
		createdAt:   createdAt,
		updatedAt:   createdAt,
	}, nil
}

// RestoreTask rebuilds a Task loaded from storage without re-running validation.
func RestoreTask(r TaskRecord) *Task {
	return &Task{
		id:          r.ID,
		title:       r.Title,
		description: cloneString(r.Description),
		isCompleted: r.IsCompleted,
		dueDate:     normalizeTime(r.DueDate),
		createdAt:   r.CreatedAt.UTC(),
		updatedAt:   r.UpdatedAt.UTC(),
	}
}

func (t *Task) ID() uuid.UUID { return t.id }
func (t *Task) Title() string { return t.title }
func (t *Task) Description() *string { return cloneString(t.description) }
func (t *Task) IsCompleted() bool { return t.isCompleted }
func (t *Task) DueDate() *time.Time { return normalizeTime(t.dueDate) }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

func (t *Task) Record() TaskRecord {
	return TaskRecord{
		ID:          t.id,
		Title:       t.title,
		Description: cloneString(t.description),
		IsCompleted: t.isCompleted,
		DueDate:     normalizeTime(t.dueDate),
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}

func (t *Task) SetTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	t.title = title
	t.touch()

	return nil
}

func (t *Task) SetDescription(description *string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	t.description = cloneString(description)
	t.touch()

	return nil
}

func (t *Task) SetDueDate(dueDate *time.Time) {
	t.dueDate = normalizeTime(dueDate)
	t.touch()
}

func (t *Task) MarkCompleted() {
	t.isCompleted = true
	t.touch()
}

func (t *Task) MarkIncomplete() {
	t.isCompleted = false
	t.touch()
}

// Update applies the supplied fields only. A blank title is skipped rather
// than rejected.
func (t *Task) Update(changes TaskChanges) error {
	if changes.Title != nil && strings.TrimSpace(*changes.Title) != "" {
		if err := t.SetTitle(*changes.Title); err != nil {
			return err
		}
	}

	if changes.Description != nil {
		if err := t.SetDescription(changes.Description); err != nil {
			return err
		}
	}

	if changes.IsCompleted != nil {
		if *changes.IsCompleted {
			t.MarkCompleted()
		} else {
			t.MarkIncomplete()
		}
	}

	if changes.DueDate != nil {
		t.SetDueDate(changes.DueDate)
	}

	return nil
}

func (t *Task) touch() {
	updatedAt := now()

	if updatedAt.Before(t.createdAt) {
		updatedAt = t.createdAt
	}

	t.updatedAt = updatedAt
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "title cannot be empty")
	}

	if utf8.RuneCountInString(title) > TitleMaxLength {
		return NewValidationError("title", "title must be at most 200 characters")
	}

	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > DescriptionMaxLength {
		return NewValidationError("description", "description must be at most 1000 characters")
	}

	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s
	return &v
}

func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := t.UTC()
	return &v
}
