package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/signupapp/ui"
	"github.com/padraicbc/signupapp/users"
)

const signupPath = "/signup"

// SignupForm renders the empty signup form.
func (h *Handler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, ui.SignupTemplate, ui.NewForm(signupPath).Page())
}

// SubmitSignupForm calls the signup operation directly and redirects on success.
// On failure the form is shown again with the error and the username kept.
func (h *Handler) SubmitSignupForm(c echo.Context) error {
	form := ui.NewForm(signupPath)
	if _, err := form.Submit(c.Request().Context(), h.users, c.FormValue("username"), c.FormValue("password")); err != nil {
		return c.Render(statusFor(users.KindOf(err)), ui.SignupTemplate, form.Page())
	}
	return c.Redirect(http.StatusSeeOther, h.redirect)
}

// Welcome is the fixed landing page after signup. It reads nothing from the
// request, so it looks the same to everyone.
func (h *Handler) Welcome(c echo.Context) error {
	return c.Render(http.StatusOK, ui.WelcomeTemplate, nil)
}
