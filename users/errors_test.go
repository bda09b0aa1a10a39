package users

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &Error{Kind: KindConflict, Op: "create user"})
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "signup: username is required", validationError("signup", "username is required").Error())
	assert.Equal(t, "create user: unavailable: boom", (&Error{Kind: KindUnavailable, Op: "create user", Err: cause}).Error())
	assert.Equal(t, "create user: dup: boom", (&Error{Kind: KindConflict, Op: "create user", Msg: "dup", Err: cause}).Error())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindConflict, classify(errors.New("pq: SQLSTATE=23505")))
	assert.Equal(t, KindUnavailable, classify(driver.ErrBadConn))
	assert.Equal(t, KindUnavailable, classify(fmt.Errorf("exec: %w", sql.ErrConnDone)))
	assert.Equal(t, KindUnknown, classify(errors.New("syntax error at or near")))
	assert.Equal(t, KindConflict, classify(errors.New(`ERROR #23505 duplicate key value violates unique constraint "users_username_key"`)))
	assert.Equal(t, KindUnavailable, classify(errors.New("ERROR #08006 connection failure")))
	assert.Equal(t, KindUnavailable, classify(fmt.Errorf("insert: %w", errors.New("FATAL #57P01 terminating connection due to administrator command"))))
	assert.Equal(t, KindUnknown, classify(errors.New("ERROR #42601 syntax error at or near \"INSERT\"")))
}

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		code string
		want Kind
		ok   bool
	}{
		{"23505", KindConflict, true},
		{"08000", KindUnavailable, true},
		{"08006", KindUnavailable, true},
		{"57P01", KindUnavailable, true},
		{"57P03", KindUnavailable, true},
		{"57014", KindUnknown, false},
		{"23503", KindUnknown, false},
		{"42601", KindUnknown, false},
		{"", KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			kind, ok := classifyCode(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestSQLState(t *testing.T) {
	assert.Equal(t, "08006", sqlstate(errors.New("ERROR #08006 connection failure")))
	assert.Equal(t, "23505", sqlstate(errors.New("pq: SQLSTATE=23505")))
	assert.Equal(t, "", sqlstate(errors.New("use of #hashtag in message")))
	assert.Equal(t, "", sqlstate(errors.New("connection refused")))
}
