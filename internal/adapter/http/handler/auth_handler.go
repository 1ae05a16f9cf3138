package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "taskapi/internal/adapter/http/helper"
	"taskapi/internal/core/dispatch"
	"taskapi/internal/core/model/request"
	"taskapi/internal/core/model/response"
)

type AuthHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewAuthHandler(dispatcher *dispatch.Dispatcher) *AuthHandler {
	return &AuthHandler{
		dispatcher: dispatcher,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	params, ok := BindBody[request.SignUpRequest](c)

	if !ok {
		return
	}

	res, err := dispatch.Send[response.AuthResponse](c.Request.Context(), a.dispatcher, request.RegisterCommand{
		Username: params.Username,
		Password: params.Password,
	})

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, res)
}

func (a *AuthHandler) Login(c *gin.Context) {
	params, ok := BindBody[request.LoginRequest](c)

	if !ok {
		return
	}

	res, err := dispatch.Send[response.AuthResponse](c.Request.Context(), a.dispatcher, request.LoginCommand{
		Username: params.Username,
		Password: params.Password,
	})

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, res)
}
