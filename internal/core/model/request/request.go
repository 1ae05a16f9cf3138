package request

import "time"

type SignUpRequest struct {
	Username string `json:"username,omitempty" validate:"required,min=3,max=50"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Username string `json:"username,omitempty" validate:"required,max=50"`
	Password string `json:"password,omitempty" validate:"required,max=100"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest backs both PUT and PATCH; absent fields stay untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type TaskListParams struct {
	IsCompleted *bool  `form:"isCompleted"`
	DueDate     string `form:"dueDate"`
}
