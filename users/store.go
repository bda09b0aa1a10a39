// Package users holds the signup write path: the bun-backed user store and
// the Signup operation every adapter delegates to.
package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/padraicbc/signupapp/models"
)

// Provider hands out the shared connection pool.
type Provider interface {
	DB(ctx context.Context) (*bun.DB, error)
}

// Repository is the storage the Service writes through.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store is the PostgreSQL Repository.
type Store struct {
	db Provider
}

// NewStore returns a Store reading the pool from db.
func NewStore(db Provider) *Store {
	return &Store{db: db}
}

// Create inserts user and fills in the server-assigned id and timestamps.
func (s *Store) Create(ctx context.Context, user *models.User) error {
	const op = "create user"

	db, err := s.db.DB(ctx)
	if err != nil {
		return &Error{Kind: KindUnavailable, Op: op, Err: err}
	}

	err = db.NewInsert().
		Model(user).
		Returning("id, created_at, updated_at").
		Scan(ctx)
	if err != nil {
		return &Error{Kind: classify(err), Op: op, Err: err}
	}
	return nil
}

// FindByUsername returns ErrNotFound when no row matches.
func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "find user"

	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Op: op, Err: err}
	}

	user := new(models.User)
	err = db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &Error{Kind: classify(err), Op: op, Err: err}
	}
	return user, nil
}
