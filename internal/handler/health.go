package handler // declare the package name; contains HTTP handlers

import (
    "net/http"          // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health answers GET /healthz with a plain "ok" so load balancers can
// probe the exchange without touching the database.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
