package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	. "taskapi/internal/adapter/http/validation"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/model/response"
	"taskapi/pkg/tracing"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusNotFound, "NOT_FOUND", errors)
}

func SendConflictError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusConflict, "CONFLICT", errors)
}

// SendDomainError maps a handler failure to its HTTP status. Anything that is
// not a domain error is logged and hidden behind a 500.
func SendDomainError(c *gin.Context, err error) {
	var derr *domain.Error

	switch {
	case domain.IsValidation(err):
		field, message := "request", err.Error()

		if errors.As(err, &derr) {
			field, message = derr.Field, derr.Message
		}

		SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", []response.ValidationError{{Field: field, Message: message}})
	case domain.IsAuthentication(err), domain.IsInvalidToken(err):
		SendUnauthorizedError(c, "invalid credentials")
	case domain.IsNotFound(err):
		message := err.Error()

		if errors.As(err, &derr) {
			message = derr.Message
		}

		SendNotFoundError(c, message)
	case domain.IsConflict(err):
		message := err.Error()

		if errors.As(err, &derr) {
			message = derr.Message
		}

		SendConflictError(c, message)
	default:
		ctx := c.Request.Context()
		slog.ErrorContext(ctx, "Unhandled error", "error", err, "path", c.FullPath(), "trace_id", tracing.TraceID(ctx))

		SendInternalError(c, "internal server error")
	}
}

// BindBody decodes the JSON body into T and runs struct validation. On
// failure the error response is already written and ok is false.
func BindBody[T any](c *gin.Context) (body T, ok bool) {
	if err := c.ShouldBindJSON(&body); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return body, false
	}

	if err := Validator.Struct(body); err != nil {
		SendValidationError(c, err)
		return body, false
	}

	return body, true
}
