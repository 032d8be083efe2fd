//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"ticketapp/internal/handler/dto/request"
	"ticketapp/internal/handler/dto/response"
	"ticketapp/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const DefaultPassword = "password123"

func SignupUser(t *testing.T, router *gin.Engine, email, role string) uuid.UUID {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/signup",
		request.SignupRequest{Email: email, Password: DefaultPassword, Role: role}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.SignupResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	require.NotEqual(t, uuid.Nil, resp.UserID)

	return resp.UserID
}

func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.LoginResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	require.NotEmpty(t, resp.AccessToken, "login did not return an access token")

	return resp.AccessToken
}

// SignupAndLogin registers a fresh account through the API and returns a
// bearer token for it.
func SignupAndLogin(t *testing.T, router *gin.Engine, email, role string) string {
	t.Helper()

	SignupUser(t, router, email, role)
	return LoginUser(t, router, email, DefaultPassword)
}
