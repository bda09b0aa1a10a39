package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/signupapp/models"
	"github.com/padraicbc/signupapp/users"
)

type signerFunc func(ctx context.Context, username, password string) (*models.User, error)

func (f signerFunc) Signup(ctx context.Context, username, password string) (*models.User, error) {
	return f(ctx, username, password)
}

func TestFormSubmit_Success(t *testing.T) {
	f := NewForm("/signup")
	require.Equal(t, StateIdle, f.State)

	var during State
	u, err := f.Submit(context.Background(), signerFunc(func(_ context.Context, username, password string) (*models.User, error) {
		during = f.State
		return &models.User{ID: 1, Username: username, Password: password}, nil
	}), "alice", "secret123")

	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, during)
	assert.Equal(t, StateSuccess, f.State)
	assert.Empty(t, f.Error)
	assert.Equal(t, int64(1), u.ID)
}

func TestFormSubmit_Error(t *testing.T) {
	f := NewForm("/signup")
	f.Error = "stale"

	_, err := f.Submit(context.Background(), signerFunc(func(context.Context, string, string) (*models.User, error) {
		return nil, &users.Error{Kind: users.KindConflict, Op: "create user"}
	}), "alice", "pw")

	require.Error(t, err)
	assert.Equal(t, StateError, f.State)
	assert.Equal(t, "Username is already taken", f.Error)
	assert.Equal(t, "alice", f.Username)
}

func TestMessageFor(t *testing.T) {
	for _, k := range []users.Kind{users.KindValidation, users.KindConflict, users.KindUnavailable, users.KindUnknown} {
		assert.NotEmpty(t, MessageFor(k), k.String())
	}
	assert.Equal(t, "Failed to create user", MessageFor(users.KindUnavailable))
	assert.Equal(t, "An unexpected error occurred", MessageFor(users.KindUnknown))
}

func TestPage_ButtonBusyWhileSubmitting(t *testing.T) {
	f := NewForm("/signup")
	assert.False(t, f.Page().Button.Busy)

	f.State = StateSubmitting
	assert.True(t, f.Page().Button.Busy)
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("idle form", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, SignupTemplate, NewForm("/signup").Page(), nil))

		html := buf.String()
		assert.Contains(t, html, `action="/signup"`)
		assert.Contains(t, html, `data-state="idle"`)
		assert.Contains(t, html, ">Sign up</button>")
		assert.NotContains(t, html, `role="alert"`)
	})

	t.Run("error form escapes input", func(t *testing.T) {
		f := NewForm("/signup")
		f.State = StateError
		f.Username = `<script>x</script>`
		f.Error = MessageFor(users.KindConflict)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, SignupTemplate, f.Page(), nil))

		html := buf.String()
		assert.Contains(t, html, "Username is already taken")
		assert.Contains(t, html, `data-state="error"`)
		assert.NotContains(t, html, `value="<script>`)
	})

	t.Run("welcome", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, WelcomeTemplate, nil, nil))
		assert.Contains(t, buf.String(), "<h1>Signed up</h1>")
	})
}
