/*
Package errors is the error vocabulary of the HTTP boundary.

Business-rule violations never get here: they travel as notifications inside
a command result. What does get here is an operation that could not run at
all (missing resource, refused transition, lock conflict, broken
infrastructure), and FromDomainError turns it into an AppError with a code and
a status.
*/
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"store/domain/customer"
	"store/domain/order"
	"store/domain/shared"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeUnavailable    ErrorCode = "SERVICE_UNAVAILABLE"

	CodeCustomerNotFound    ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeDuplicateCustomer   ErrorCode = "DUPLICATE_CUSTOMER"
	CodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	CodeOrderAlreadyShipped ErrorCode = "ORDER_ALREADY_SHIPPED"
	CodeDeliveryNotFound    ErrorCode = "DELIVERY_NOT_FOUND"
	CodeInvalidOrderState   ErrorCode = "INVALID_ORDER_STATE"
	CodeConcurrentModify    ErrorCode = "CONCURRENT_MODIFICATION"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeCustomerNotFound, CodeOrderNotFound, CodeDeliveryNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateCustomer, CodeConcurrentModify:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState, CodeOrderAlreadyShipped:
		return http.StatusUnprocessableEntity
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Unavailable(message string) *AppError {
	return New(CodeUnavailable, message)
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError picks the most specific code err matches. Specific kinds are
// checked before the shared sentinels they also match. Anything unknown is
// internal and its message is hidden.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		return Wrap(err, CodeCustomerNotFound, err.Error())
	case errors.Is(err, customer.ErrDuplicateCustomer):
		return Wrap(err, CodeDuplicateCustomer, err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case errors.Is(err, order.ErrDeliveryNotFound):
		return Wrap(err, CodeDeliveryNotFound, err.Error())
	case errors.Is(err, order.ErrAlreadyShipped):
		return Wrap(err, CodeOrderAlreadyShipped, err.Error())
	case errors.Is(err, order.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
