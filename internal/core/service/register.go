package service

import (
	"errors"

	"taskapi/internal/core/dispatch"
	"taskapi/internal/core/model/request"
)

// Requests is every command and query the application serves.
func Requests() []dispatch.Request {
	return []dispatch.Request{
		request.RegisterCommand{},
		request.LoginCommand{},
		request.CreateTaskCommand{},
		request.GetTaskByIDQuery{},
		request.GetAllTasksQuery{},
		request.UpdateTaskCommand{},
		request.DeleteTaskCommand{},
	}
}

// Register binds every handler to d and checks that none is missing.
func Register(d *dispatch.Dispatcher, auth *AuthService, tasks *TaskService) error {
	err := errors.Join(
		dispatch.Register(d, auth.Register),
		dispatch.Register(d, auth.Login),
		dispatch.Register(d, tasks.Create),
		dispatch.Register(d, tasks.GetByID),
		dispatch.Register(d, tasks.GetAll),
		dispatch.Register(d, tasks.Update),
		dispatch.Register(d, tasks.Delete),
	)

	if err != nil {
		return err
	}

	return d.Require(Requests()...)
}
