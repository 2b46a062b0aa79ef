package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/wellbeing/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// appErrorStatus maps domain error codes onto HTTP statuses.
var appErrorStatus = map[string]int{
	apperrors.CodeInvalidInput:      http.StatusBadRequest,
	apperrors.CodeNoData:            http.StatusNotFound,
	apperrors.CodeNotFound:          http.StatusNotFound,
	apperrors.CodeInvalidTransition: http.StatusConflict,
	apperrors.CodeStorage:           http.StatusInternalServerError,
}

// asHTTPError converts handler and domain errors. Domain errors keep their code and
// user-facing message; anything unrecognised becomes a generic 500.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status, ok := appErrorStatus[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return &HTTPError{Status: status, Code: appErr.Code, Message: appErr.Message, Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
