package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Kind    Kind           `json:"kind,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

var statusByKind = map[Kind]int{
	KindValidation:        http.StatusBadRequest,
	KindUnauthorized:      http.StatusForbidden,
	KindNotFound:          http.StatusNotFound,
	KindConflict:          http.StatusConflict,
	KindInvalidTransition: http.StatusPreconditionFailed,
	KindInsufficientStock: http.StatusUnprocessableEntity,
	KindUnavailable:       http.StatusServiceUnavailable,
}

func StatusFor(kind Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Respond writes err with the status of its kind.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		be = BusinessError{Kind: KindUnavailable, Code: "storage_unavailable"}
		if u, ok := Unavailable(err).(BusinessError); ok {
			be = u
		}
	}

	message := be.Message
	if message == "" {
		message = be.Code
	}

	c.JSON(StatusFor(be.Kind), HTTPError{
		Code:    be.Code,
		Kind:    be.Kind,
		Message: message,
		Details: be.Details,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}
