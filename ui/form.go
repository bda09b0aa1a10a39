// Package ui renders the signup form and tracks its submit state.
package ui

import (
	"context"

	"github.com/padraicbc/signupapp/models"
	"github.com/padraicbc/signupapp/users"
)

// State of a signup form: idle -> submitting -> success | error.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Signer is the in-process signup call the form submits to.
type Signer interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
}

// Form holds what the signup page shows. The password is never kept.
type Form struct {
	Action   string
	State    State
	Username string
	Error    string
}

func NewForm(action string) *Form {
	return &Form{Action: action}
}

// Submit runs one signup attempt. On failure the form ends in StateError with
// a message for the user; nothing is retried.
func (f *Form) Submit(ctx context.Context, s Signer, username, password string) (*models.User, error) {
	f.State = StateSubmitting
	f.Username = username
	f.Error = ""

	user, err := s.Signup(ctx, username, password)
	if err != nil {
		f.State = StateError
		f.Error = MessageFor(users.KindOf(err))
		return nil, err
	}

	f.State = StateSuccess
	return user, nil
}

// MessageFor is the text shown on the form for a failed signup.
func MessageFor(kind users.Kind) string {
	switch kind {
	case users.KindValidation:
		return "Username and password are required"
	case users.KindConflict:
		return "Username is already taken"
	case users.KindUnavailable:
		return "Failed to create user"
	default:
		return "An unexpected error occurred"
	}
}

// Button is the submit button component.
type Button struct {
	Type      string
	Label     string
	BusyLabel string
	Busy      bool
}

// SignupPage is the data for signup.html.
type SignupPage struct {
	Action string
	Form   *Form
	Button Button
}

func (f *Form) Page() SignupPage {
	return SignupPage{
		Action: f.Action,
		Form:   f,
		Button: Button{
			Type:      "submit",
			Label:     "Sign up",
			BusyLabel: "Signing up…",
			Busy:      f.State == StateSubmitting,
		},
	}
}
