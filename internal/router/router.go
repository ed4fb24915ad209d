package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/book-swap-exchange/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/book-swap-exchange/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login and both refresh variants. Each handler is responsible for
	// generating or exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: the old refresh token is revoked and a new pair issued.
	g.POST("/refresh", a.Refresh)
	// Non-rotating: issue a new access token while reusing the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: a refresh token in the
	// body always suffices to terminate that one session, while a valid
	// bearer token with no body revokes every session of the user.
	g.POST("/logout", a.Logout)

	// Protected endpoints. Every member role is accepted; fine-grained
	// authorization over individual swaps and books happens in the
	// handlers against stored ownership fields.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleMember))
	auth.GET("/me", a.Me)

	// Alias kept at the top level so clients can call either
	// /v1/auth/logout or /v1/logout with a refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}
