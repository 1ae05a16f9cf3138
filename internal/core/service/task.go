package service

import (
	"context"
	"fmt"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/model/request"
	"taskapi/internal/core/model/response"
	"taskapi/internal/core/port"
	tel "taskapi/internal/core/telemetry"
)

type TaskService struct {
	repo      port.TaskRepository
	telemetry port.Telemetry
}

func NewTaskService(repo port.TaskRepository, telemetry port.Telemetry) *TaskService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TaskService{repo: repo, telemetry: telemetry}
}

func (ts *TaskService) Create(ctx context.Context, cmd request.CreateTaskCommand) (response.TaskResponse, error) {
	task, err := domain.NewTask(cmd.Title, cmd.Description, cmd.DueDate)

	if err != nil {
		return response.TaskResponse{}, err
	}

	saved, err := ts.repo.Add(ctx, task)

	if err != nil {
		return response.TaskResponse{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "created", "task", saved.ID().String(), nil)

	return response.NewTaskResponse(saved), nil
}

// GetByID returns nil when the task does not exist; absence is not an error here.
func (ts *TaskService) GetByID(ctx context.Context, query request.GetTaskByIDQuery) (*response.TaskResponse, error) {
	task, err := ts.repo.Get(ctx, query.ID)

	if err != nil || task == nil {
		return nil, err
	}

	projection := response.NewTaskResponse(task)

	return &projection, nil
}

func (ts *TaskService) GetAll(ctx context.Context, query request.GetAllTasksQuery) ([]response.TaskResponse, error) {
	tasks, err := ts.repo.List(ctx, domain.TaskFilter{
		IsCompleted: query.IsCompleted,
		DueDate:     query.DueDate,
	})

	if err != nil {
		return nil, err
	}

	data := make([]response.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		data = append(data, response.NewTaskResponse(task))
	}

	return data, nil
}

// Update serves both full and partial updates: only supplied fields change.
func (ts *TaskService) Update(ctx context.Context, cmd request.UpdateTaskCommand) (response.TaskResponse, error) {
	task, err := ts.repo.Get(ctx, cmd.ID)

	if err != nil {
		return response.TaskResponse{}, err
	}

	if task == nil {
		return response.TaskResponse{}, notFound(cmd.ID)
	}

	err = task.Update(domain.TaskChanges{
		Title:       cmd.Title,
		Description: cmd.Description,
		IsCompleted: cmd.IsCompleted,
		DueDate:     cmd.DueDate,
	})

	if err != nil {
		return response.TaskResponse{}, err
	}

	if err := ts.repo.Update(ctx, task); err != nil {
		return response.TaskResponse{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "updated", "task", task.ID().String(), nil)

	return response.NewTaskResponse(task), nil
}

func (ts *TaskService) Delete(ctx context.Context, cmd request.DeleteTaskCommand) (struct{}, error) {
	found, err := ts.repo.Exists(ctx, cmd.ID)

	if err != nil {
		return struct{}{}, err
	}

	if !found {
		return struct{}{}, notFound(cmd.ID)
	}

	if err := ts.repo.Delete(ctx, cmd.ID); err != nil {
		return struct{}{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "deleted", "task", cmd.ID.String(), nil)

	return struct{}{}, nil
}

func notFound(id fmt.Stringer) error {
	return domain.NewNotFoundError(fmt.Sprintf("Task with ID %s not found", id))
}
