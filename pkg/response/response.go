package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/pkg/apperror"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody is the machine-readable part of a failed response.
type ErrorBody struct {
	Code    apperror.Code `json:"code"`
	Details interface{}   `json:"details,omitempty"`
}

// Success writes a successful envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

func build(ctx *gin.Context, status int, code apperror.Code, message string, details interface{}) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     &ErrorBody{Code: code, Details: details},
	}
}

// Error writes a failed envelope and returns it.
func Error(ctx *gin.Context, status int, code apperror.Code, message string, details interface{}) APIResponse[any] {
	resp := build(ctx, status, code, message, details)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, status int, code apperror.Code, message string, details interface{}) {
	resp := build(ctx, status, code, message, details)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// FromError writes err using its apperror code, status and user-facing message.
func FromError(ctx *gin.Context, err error) APIResponse[any] {
	code := apperror.CodeOf(err)
	return Error(ctx, apperror.HTTPStatus(code), code, apperror.MessageOf(err), nil)
}
