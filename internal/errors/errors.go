package errors

import "net/http"

// EntryNotFoundErr is raised when requested entity is absent
type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

// StatusCode returns http status code for error
func (e *EntryNotFoundErr) StatusCode() int {
	return http.StatusNotFound
}

// NewEntryNotFoundErr builds EntryNotFoundErr
func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}

// ForbiddenErr is raised when identity or ownership check failed
type ForbiddenErr struct {
	message string
}

func (e *ForbiddenErr) Error() string {
	return e.message
}

// StatusCode returns http status code for error
func (e *ForbiddenErr) StatusCode() int {
	return http.StatusForbidden
}

// NewForbiddenErr builds ForbiddenErr
func NewForbiddenErr(msg string) *ForbiddenErr {
	return &ForbiddenErr{message: msg}
}

// AuthenticationErr is raised when caller identity can't be established
type AuthenticationErr struct {
	message string
	cause   error
}

func (e *AuthenticationErr) Error() string {
	return e.message
}

func (e *AuthenticationErr) Unwrap() error {
	return e.cause
}

// StatusCode returns http status code for error
func (e *AuthenticationErr) StatusCode() int {
	return http.StatusBadRequest
}

// NewAuthenticationErr builds AuthenticationErr, cause is kept for logs only
func NewAuthenticationErr(msg string, cause error) *AuthenticationErr {
	return &AuthenticationErr{message: msg, cause: cause}
}

// StatusCoder is implemented by errors which map to fixed http status
type StatusCoder interface {
	error
	StatusCode() int
}

// Message is error body returned to the caller
type Message struct {
	Message string `json:"message"`
}
