package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirelink/hirelink/internal/pkg/errcode"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("auth")
	token := registerUser(t, router, email, "candidate")

	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, 0, parsed.Code)
	require.NotEmpty(t, parsed.Data["token"])

	_, parsed = doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, 0, parsed.Code)
	require.Equal(t, email, parsed.Data["email"])
	require.Equal(t, "candidate", parsed.Data["role"])
}

func TestAuthRejectsBadLogin(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("badlogin")
	registerUser(t, router, email, "candidate")

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "wrong",
	})
	require.Equal(t, errcode.ErrUnauthorized, parsed.Code)
}

func TestAuthDuplicateRegister(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("dup")
	registerUser(t, router, email, "candidate")

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret",
	})
	require.Equal(t, errcode.ErrConflict, parsed.Code)
}

func TestAuthAdminRoleNotSelfRegisterable(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    uniqueEmail("admin"),
		"password": "secret",
		"role":     "admin",
	})
	require.Equal(t, errcode.ErrInvalid, parsed.Code)
}

func TestAuthChangePassword(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("chpass")
	token := registerUser(t, router, email, "candidate")

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/password", token, map[string]string{
		"old_password": "secret",
		"new_password": "changed",
	})
	require.Equal(t, 0, parsed.Code)

	_, parsed = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "changed",
	})
	require.Equal(t, 0, parsed.Code)
}
