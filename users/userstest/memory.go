// Package userstest provides an in-memory users.Repository for tests.
package userstest

import (
	"context"
	"sync"
	"time"

	"github.com/padraicbc/signupapp/models"
	"github.com/padraicbc/signupapp/users"
)

// Memory enforces username uniqueness the way the users table does.
// Set Err to make every Create fail with it.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]models.User
	Err    error
}

func NewMemory() *Memory {
	return &Memory{rows: make(map[string]models.User)}
}

func (m *Memory) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.rows[user.Username]; ok {
		return &users.Error{
			Kind: users.KindConflict,
			Op:   "create user",
			Msg:  `duplicate key value violates unique constraint "users_username_key"`,
		}
	}

	m.nextID++
	now := time.Now().UTC()
	user.ID, user.CreatedAt, user.UpdatedAt = m.nextID, now, now
	m.rows[user.Username] = *user
	return nil
}

func (m *Memory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.rows[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

// Len reports how many users are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
