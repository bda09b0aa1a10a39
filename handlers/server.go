package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	mw "github.com/padraicbc/signupapp/middleware"
)

// NewEcho builds the Echo instance with middleware and every route.
func NewEcho(h *Handler, renderer echo.Renderer, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(mw.RequestID())
	e.Use(mw.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.POST("/user/signup", h.Signup)

	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, signupPath) })
	e.GET(signupPath, h.SignupForm)
	e.POST(signupPath, h.SubmitSignupForm)
	e.GET("/welcome", h.Welcome)

	return e
}
