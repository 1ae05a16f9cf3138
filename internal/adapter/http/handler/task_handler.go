package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	. "taskapi/internal/adapter/http/helper"
	"taskapi/internal/core/dispatch"
	"taskapi/internal/core/model/request"
	"taskapi/internal/core/model/response"
	"taskapi/pkg/auth"
	"taskapi/pkg/tracing"
)

const dateLayout = "2006-01-02"

type TaskHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewTaskHandler(dispatcher *dispatch.Dispatcher) *TaskHandler {
	return &TaskHandler{
		dispatcher: dispatcher,
	}
}

func (t *TaskHandler) GetAllTasks(c *gin.Context) {
	ctx, span := tracing.StartSpan(c.Request.Context(), "handler.task.GetAllTasks",
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	)
	defer span.End()

	var params request.TaskListParams

	if err := c.ShouldBindQuery(&params); err != nil {
		SendBadRequestError(c, "isCompleted", "isCompleted must be true or false")
		return
	}

	query := request.GetAllTasksQuery{IsCompleted: params.IsCompleted}

	if params.DueDate != "" {
		dueDate, err := parseDate(params.DueDate)

		if err != nil {
			SendBadRequestError(c, "dueDate", "dueDate must be YYYY-MM-DD or RFC3339")
			return
		}

		query.DueDate = &dueDate
	}

	data, err := dispatch.Send[[]response.TaskResponse](ctx, t.dispatcher, query)

	if err != nil {
		tracing.AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("task.count", len(data)))

	SendSuccess(c, http.StatusOK, response.TaskListResponse{Size: len(data), Data: data})
}

func (t *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskID(c)

	if !ok {
		return
	}

	task, err := dispatch.Send[*response.TaskResponse](c.Request.Context(), t.dispatcher, request.GetTaskByIDQuery{ID: id})

	if err != nil {
		SendDomainError(c, err)
		return
	}

	if task == nil {
		SendNotFoundError(c, fmt.Sprintf("Task with ID %s not found", id))
		return
	}

	SendSuccess(c, http.StatusOK, task)
}

func (t *TaskHandler) CreateTask(c *gin.Context) {
	params, ok := BindBody[request.CreateTaskRequest](c)

	if !ok {
		return
	}

	if identity, found := auth.IdentityFrom(c); found {
		slog.InfoContext(c.Request.Context(), "Task#create", "user_id", identity.SubjectID)
	}

	task, err := dispatch.Send[response.TaskResponse](c.Request.Context(), t.dispatcher, request.CreateTaskCommand{
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
	})

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, task)
}

// UpdateTask serves both PUT and PATCH; absent fields are left unchanged.
func (t *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)

	if !ok {
		return
	}

	params, ok := BindBody[request.UpdateTaskRequest](c)

	if !ok {
		return
	}

	task, err := dispatch.Send[response.TaskResponse](c.Request.Context(), t.dispatcher, request.UpdateTaskCommand{
		ID:          id,
		Title:       params.Title,
		Description: params.Description,
		IsCompleted: params.IsCompleted,
		DueDate:     params.DueDate,
	})

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, task)
}

func (t *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)

	if !ok {
		return
	}

	if _, err := dispatch.Send[struct{}](c.Request.Context(), t.dispatcher, request.DeleteTaskCommand{ID: id}); err != nil {
		SendDomainError(c, err)
		return
	}

	SendNoContent(c)
}

func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "id must be a valid UUID")
		return uuid.Nil, false
	}

	return id, true
}

func parseDate(value string) (time.Time, error) {
	if date, err := time.Parse(dateLayout, value); err == nil {
		return date, nil
	}

	return time.Parse(time.RFC3339, value)
}
