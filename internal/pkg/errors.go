package pkg

import "net/http"

type ErrKind int

const (
	KindValidation ErrKind = iota
	KindConflict
	KindNotFound
	KindAuth
	KindForbidden
	KindUpstream
)

// AppError is the error shape handlers translate into HTTP responses.
type AppError struct {
	Kind ErrKind
	Msg  string
}

func (e *AppError) Error() string { return e.Msg }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func Validation(msg string) *AppError { return &AppError{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) *AppError   { return &AppError{Kind: KindConflict, Msg: msg} }
func NotFound(msg string) *AppError   { return &AppError{Kind: KindNotFound, Msg: msg} }
func Auth(msg string) *AppError       { return &AppError{Kind: KindAuth, Msg: msg} }
func Forbidden(msg string) *AppError  { return &AppError{Kind: KindForbidden, Msg: msg} }
func Upstream(msg string) *AppError   { return &AppError{Kind: KindUpstream, Msg: msg} }
