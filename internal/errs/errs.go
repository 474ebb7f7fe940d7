package errs

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidState      Kind = "invalid_state"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindPriceTooLow       Kind = "price_too_low"
	KindMismatch          Kind = "mismatch"
	KindUnauthorized      Kind = "unauthorized"
	KindConflict          Kind = "conflict"
	KindInvalid           Kind = "invalid"
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func NotFound(msg string) *Error          { return New(KindNotFound, msg) }
func InvalidState(msg string) *Error      { return New(KindInvalidState, msg) }
func InsufficientFunds(msg string) *Error { return New(KindInsufficientFunds, msg) }
func PriceTooLow(msg string) *Error       { return New(KindPriceTooLow, msg) }
func Mismatch(msg string) *Error          { return New(KindMismatch, msg) }
func Unauthorized(msg string) *Error      { return New(KindUnauthorized, msg) }
func Conflict(msg string) *Error          { return New(KindConflict, msg) }
func Invalid(msg string) *Error           { return New(KindInvalid, msg) }

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
