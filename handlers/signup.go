package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/signupapp/users"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Signup creates a user from a JSON body and answers {"message":"Signed up"}.
func (h *Handler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Message: "invalid request body",
			Kind:    users.KindValidation.String(),
		})
	}

	if _, err := h.users.Signup(c.Request().Context(), req.Username, req.Password); err != nil {
		kind := users.KindOf(err)
		return c.JSON(statusFor(kind), errorResponse{Message: apiMessage(err), Kind: kind.String()})
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Signed up"})
}

// apiMessage never exposes driver text; validation messages are safe to echo.
func apiMessage(err error) string {
	var e *users.Error
	if !errors.As(err, &e) {
		return "internal error"
	}
	switch e.Kind {
	case users.KindValidation:
		return e.Msg
	case users.KindConflict:
		return "username already taken"
	case users.KindUnavailable:
		return "service unavailable"
	default:
		return "internal error"
	}
}
