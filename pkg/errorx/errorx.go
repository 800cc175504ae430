// Package errorx provides errors carrying a business code.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error with a business code attached.
// It supports %w wrapping and is recognised by errors.Is/errors.As.
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

// Error implements the error interface. When a cause is present the
// result is "msg: cause", otherwise just the message.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError without a cause.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a business code and message to an underlying error.
// Usage: errorx.Wrap(err, CodeNotFound, "listing not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from an error chain.
// Non-CodeError errors report CodeServerBusy.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business codes.
const (
	CodeSuccess      = 1000
	CodeInvalidParam = 1001 // request validation failure
	CodeUserExist    = 1002
	CodeUserNotExist = 1003
	CodeInvalidLogin = 1004
	CodeServerBusy   = 1005
	CodeUnauthorized = 1006 // missing/bad/expired credential
	CodeForbidden    = 1007 // caller is not a participant/owner
	CodeNotFound     = 1008
	CodeDBError      = 1010
	CodeCacheError   = 1011
	CodeEmailError   = 1012
)

// Predefined instances, usable directly and with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "server busy, try again later")
)

// IsNotFound reports whether err is a not-found error
// (including a wrapped gorm.ErrRecordNotFound).
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}
