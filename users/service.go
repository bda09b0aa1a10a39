package users

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/signupapp/models"
)

// Service is the signup operation shared by the HTTP API, the form and the CLI.
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Signup stores a new user. The password is kept exactly as given.
// Failures are *Error values; use KindOf to branch on them.
func (s *Service) Signup(ctx context.Context, username, password string) (*models.User, error) {
	const op = "signup"

	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return nil, validationError(op, "username is required")
	case password == "":
		return nil, validationError(op, "password is required")
	}

	user := &models.User{Username: username, Password: password}
	if err := s.repo.Create(ctx, user); err != nil {
		kind := KindOf(err)
		fields := []zap.Field{zap.String("username", username), zap.Stringer("kind", kind), zap.Error(err)}
		if kind == KindConflict {
			s.log.Warn("signup rejected", fields...)
		} else {
			s.log.Error("signup failed", fields...)
		}
		return nil, err
	}

	s.log.Info("user created", zap.Int64("id", user.ID))
	return user, nil
}
