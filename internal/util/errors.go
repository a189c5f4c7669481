package util

import (
	"errors"
	"fmt"
)

// 错误分类，均为客户端输入错误，不重试
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrRange      = errors.New("value out of range")

	// ErrMalformed 属于校验错误，但值存在而无法解析，HTTP 上报 422
	ErrMalformed = fmt.Errorf("%w: malformed value", ErrValidation)
)

// AppError 带描述信息的业务错误，Kind 为上面的分类之一
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

func MalformedError(format string, args ...interface{}) error {
	return newError(ErrMalformed, format, args...)
}

func ConflictError(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

func NotFoundError(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

func RangeError(format string, args ...interface{}) error {
	return newError(ErrRange, format, args...)
}
