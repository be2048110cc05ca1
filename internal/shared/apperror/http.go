package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP resolves the outermost AppError in err's chain. Anything else is
// reported as an internal error without leaking the underlying message.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}

func RequiredField(field string) *AppError {
	return ErrInvalidInput.WithDetail(
		fmt.Sprintf("%s is required", field),
		map[string]string{"field": field, "rule": "required"},
	)
}

func InvalidField(field string) *AppError {
	return ErrInvalidInput.WithDetail(
		fmt.Sprintf("%s is invalid", field),
		map[string]string{"field": field},
	)
}
