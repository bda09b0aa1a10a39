package users

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrNotFound is returned when no user matches a lookup.
var ErrNotFound = errors.New("user not found")

// Kind tells callers what class of failure a signup hit.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is the single error shape returned by the store and the signup service.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func validationError(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

// sqlstateInMessage matches the code in pgdriver's "ERROR #23505 ..." text
// and in "SQLSTATE=23505" style messages.
var sqlstateInMessage = regexp.MustCompile(`(?:#|(?i:sqlstate)[= ])([0-9A-Z]{5})\b`)

// classify maps driver errors onto a Kind, preferring the SQLSTATE code.
func classify(err error) Kind {
	if kind, ok := classifyCode(sqlstate(err)); ok {
		return kind
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return KindConflict
	}

	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return KindUnavailable
	}
	return KindUnknown
}

// sqlstate returns the PostgreSQL error code carried by err, or "".
func sqlstate(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	if m := sqlstateInMessage.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}

// classifyCode maps a SQLSTATE onto a Kind. 23505 is unique_violation;
// class 08 and 57P01-57P03 mean the server went away.
func classifyCode(code string) (Kind, bool) {
	switch {
	case code == "":
		return KindUnknown, false
	case code == "23505":
		return KindConflict, true
	case strings.HasPrefix(code, "08"), code == "57P01", code == "57P02", code == "57P03":
		return KindUnavailable, true
	default:
		return KindUnknown, false
	}
}
