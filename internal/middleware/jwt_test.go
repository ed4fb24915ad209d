package middleware_test

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/book-swap-exchange/internal/middleware"
    "github.com/iliyamo/book-swap-exchange/internal/utils"
)

const testSecret = "unit-test-secret"

// runJWT passes a request with the given Authorization header through
// JWTAuth and reports the response code plus whatever the middleware
// placed in the context.
func runJWT(t *testing.T, authHeader string) (int, interface{}, interface{}) {
    t.Helper()
    var gotUserID, gotRole interface{}
    next := func(c echo.Context) error {
        gotUserID = c.Get("user_id")
        gotRole = c.Get("role")
        return c.NoContent(http.StatusOK)
    }
    req := httptest.NewRequest(http.MethodGet, "/v1/swaps", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := echo.New().NewContext(req, rec)
    require.NoError(t, middleware.JWTAuth(testSecret)(next)(c))
    return rec.Code, gotUserID, gotRole
}

func Test_JWTAuth_ValidToken(t *testing.T) {
    at, err := utils.NewAccessToken(testSecret, 7, "MEMBER", 15)
    require.NoError(t, err)

    code, userID, role := runJWT(t, "Bearer "+at.Token)
    assert.Equal(t, http.StatusOK, code)
    // MapClaims round numeric claims through float64.
    assert.Equal(t, float64(7), userID)
    assert.Equal(t, "MEMBER", role)
}

func Test_JWTAuth_MissingHeader(t *testing.T) {
    code, userID, _ := runJWT(t, "")
    assert.Equal(t, http.StatusUnauthorized, code)
    assert.Nil(t, userID)
}

func Test_JWTAuth_WrongSecret(t *testing.T) {
    at, err := utils.NewAccessToken("some-other-secret", 7, "MEMBER", 15)
    require.NoError(t, err)

    code, userID, _ := runJWT(t, "Bearer "+at.Token)
    assert.Equal(t, http.StatusUnauthorized, code)
    assert.Nil(t, userID)
}

func Test_JWTAuth_ExpiredToken(t *testing.T) {
    at, err := utils.NewAccessToken(testSecret, 7, "MEMBER", -1)
    require.NoError(t, err)

    code, _, _ := runJWT(t, "Bearer "+at.Token)
    assert.Equal(t, http.StatusUnauthorized, code)
}

func Test_JWTAuth_MalformedToken(t *testing.T) {
    code, _, _ := runJWT(t, "Bearer not.a.jwt")
    assert.Equal(t, http.StatusUnauthorized, code)
}

func Test_RequireRole(t *testing.T) {
    cases := []struct {
        name     string
        role     interface{}
        allowed  []string
        wantCode int
    }{
        {"matching_role_passes", "MEMBER", []string{"MEMBER"}, http.StatusOK},
        {"one_of_several_passes", "ADMIN", []string{"MEMBER", "ADMIN"}, http.StatusOK},
        {"unknown_role_forbidden", "GUEST", []string{"MEMBER"}, http.StatusForbidden},
        {"missing_role_forbidden", nil, []string{"MEMBER"}, http.StatusForbidden},
        {"non_string_role_forbidden", 42, []string{"MEMBER"}, http.StatusForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
            req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
            rec := httptest.NewRecorder()
            c := echo.New().NewContext(req, rec)
            if tc.role != nil {
                c.Set("role", tc.role)
            }
            require.NoError(t, middleware.RequireRole(tc.allowed...)(next)(c))
            assert.Equal(t, tc.wantCode, rec.Code)
        })
    }
}
