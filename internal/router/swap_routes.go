package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-swap-exchange/internal/handler"
	"github.com/iliyamo/book-swap-exchange/internal/middleware"
)

// RegisterSwaps registers the swap request lifecycle under /v1/swaps.
// All routes require a valid JWT and the MEMBER role. Who may perform
// which transition is decided in the handlers: cancellation belongs to
// the requester, accept/reject to the owner of the requested book.
func RegisterSwaps(e *echo.Echo, h *handler.SwapHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleMember),
	)
	g.POST("/swaps", h.CreateSwap)
	g.GET("/swaps", h.ListSwaps)
	g.PATCH("/swaps/:id", h.UpdateSwapStatus)
	g.DELETE("/swaps/:id", h.CancelSwap)
}
