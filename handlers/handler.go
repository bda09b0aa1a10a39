package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/padraicbc/signupapp/users"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	users    *users.Service
	db       Pinger
	log      *zap.Logger
	redirect string
}

// New creates a Handler. redirect is where the signup form goes on success.
func New(svc *users.Service, db Pinger, log *zap.Logger, redirect string) *Handler {
	return &Handler{users: svc, db: db, log: log, redirect: redirect}
}

// statusFor maps a signup failure kind to the HTTP status both the API and
// the form respond with.
func statusFor(kind users.Kind) int {
	switch kind {
	case users.KindValidation:
		return http.StatusBadRequest
	case users.KindConflict:
		return http.StatusConflict
	case users.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
