package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-swap-exchange/internal/handler"
	"github.com/iliyamo/book-swap-exchange/internal/middleware"
)

// RegisterBooks registers the book catalog endpoints under /v1. The
// public catalog listing takes an optional response-cache middleware;
// pass nil to serve it uncached. All other routes require a valid JWT
// and the MEMBER role; per-book ownership is enforced in the handlers.
func RegisterBooks(e *echo.Echo, h *handler.BookHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	// Public browse endpoint: anyone can see the catalog with owner
	// names before deciding to register and propose a swap.
	if cacheMW != nil {
		e.GET("/v1/books/all", h.AllBooks, cacheMW)
	} else {
		e.GET("/v1/books/all", h.AllBooks)
	}

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleMember),
	)
	g.GET("/books", h.MyBooks)
	g.POST("/books", h.CreateBook)
	g.PUT("/books/:id", h.UpdateBook)
	g.PATCH("/books/:id", h.UpdateBook) // alias for clients that use PATCH
	g.DELETE("/books/:id", h.DeleteBook)
}
