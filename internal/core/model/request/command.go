package request

import (
	"time"

	"github.com/google/uuid"
)

const (
	RegisterName    = "auth.register"
	LoginName       = "auth.login"
	CreateTaskName  = "task.create"
	GetTaskByIDName = "task.get_by_id"
	GetAllTasksName = "task.get_all"
	UpdateTaskName  = "task.update"
	DeleteTaskName  = "task.delete"
)

type RegisterCommand struct {
	Username string
	Password string
}

func (RegisterCommand) RequestName() string { return RegisterName }

type LoginCommand struct {
	Username string
	Password string
}

func (LoginCommand) RequestName() string { return LoginName }

type CreateTaskCommand struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

func (CreateTaskCommand) RequestName() string { return CreateTaskName }

type GetTaskByIDQuery struct {
	ID uuid.UUID
}

func (GetTaskByIDQuery) RequestName() string { return GetTaskByIDName }

type GetAllTasksQuery struct {
	IsCompleted *bool
	DueDate     *time.Time
}

func (GetAllTasksQuery) RequestName() string { return GetAllTasksName }

// UpdateTaskCommand carries only the fields the caller supplied.
type UpdateTaskCommand struct {
	ID          uuid.UUID
	Title       *string
	Description *string
	IsCompleted *bool
	DueDate     *time.Time
}

func (UpdateTaskCommand) RequestName() string { return UpdateTaskName }

type DeleteTaskCommand struct {
	ID uuid.UUID
}

func (DeleteTaskCommand) RequestName() string { return DeleteTaskName }
