package apperrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies an error for the HTTP boundary.
type Kind uint8

const (
	KindStore Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindInvalidState
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	default:
		return "store"
	}
}

// Error is the tagged error returned by services, stores and middleware.
type Error struct {
	Kind    Kind
	Op      string // e.g. "order.create"
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of op or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrStore           = &Error{Kind: KindStore}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidState    = &Error{Kind: KindInvalidState}
	ErrValidation      = &Error{Kind: KindValidation}
)

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func NotFound(op, format string, args ...any) *Error {
	return New(KindNotFound, op, fmt.Sprintf(format, args...))
}

func InvalidState(op, format string, args ...any) *Error {
	return New(KindInvalidState, op, fmt.Sprintf(format, args...))
}

func Validation(op, format string, args ...any) *Error {
	return New(KindValidation, op, fmt.Sprintf(format, args...))
}

func Unauthenticated(op, message string) *Error {
	return New(KindUnauthenticated, op, message)
}

func Unauthorized(op, message string) *Error {
	return New(KindUnauthorized, op, message)
}

// Store wraps a connection or query failure with the operation that caused it.
func Store(op string, err error) *Error {
	return Wrap(KindStore, op, "store operation failed", err)
}

// KindOf reports the kind of err. Untagged errors count as store failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// PostgreSQL SQLSTATE codes surfaced as validation failures.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// FromStore classifies an error returned by gorm. Already tagged errors pass
// through untouched.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(KindNotFound, op, "record not found", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return Wrap(KindValidation, op, "referenced record does not exist or is still in use", err)
		case pgUniqueViolation:
			return Wrap(KindValidation, op, "record already exists", err)
		case pgCheckViolation:
			return Wrap(KindValidation, op, "value violates a constraint", err)
		}
	}
	return Store(op, err)
}
