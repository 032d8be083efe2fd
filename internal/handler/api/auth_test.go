//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"ticketapp/internal/domain/user"
	"ticketapp/internal/handler/api"
	reqdto "ticketapp/internal/handler/dto/request"
	resdto "ticketapp/internal/handler/dto/response"
	"ticketapp/internal/usecase/commands"
	"ticketapp/internal/usecase/queries"
	"ticketapp/tests/common/httptest"
	commandsmock "ticketapp/tests/mock/commands"
	queriesmock "ticketapp/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	authed := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
	}

	s.router.POST("/auth/signup", s.handler.Signup)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.GET("/auth/me", authed, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestSignup() {
	s.Run("registers an account", func() {
		req := reqdto.SignupRequest{Email: "new@example.com", Password: "password123"}
		newID := uuid.New()

		s.mockCommands.EXPECT().
			Signup(gomock.Any(), req).
			Return(newID, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/signup", req, "")

		var resp resdto.SignupResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(newID, resp.UserID)
	})

	s.Run("duplicate email", func() {
		req := reqdto.SignupRequest{Email: "taken@example.com", Password: "password123"}

		s.mockCommands.EXPECT().
			Signup(gomock.Any(), req).
			Return(uuid.Nil, commands.ErrEmailTaken)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/signup", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Email already registered")
	})

	s.Run("domain validation failure maps to 400", func() {
		req := reqdto.SignupRequest{Email: "new@example.com", Password: "password123", Role: "HOST"}

		s.mockCommands.EXPECT().
			Signup(gomock.Any(), req).
			Return(uuid.Nil, commands.ErrDomainValidation)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/signup", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid email, password or role")
	})

	s.Run("short password never reaches the usecase", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/signup",
			map[string]any{"email": "new@example.com", "password": "short"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.Run("returns a token pair", func() {
		req := reqdto.LoginRequest{Email: "buyer@example.com", Password: "password123"}
		result := &commands.LoginResult{
			UserID:    s.userID,
			TokenPair: &commands.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		}

		s.mockCommands.EXPECT().
			Login(gomock.Any(), req).
			Return(result, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("access", resp.AccessToken)
		s.Equal("refresh", resp.RefreshToken)
	})

	s.Run("wrong credentials", func() {
		req := reqdto.LoginRequest{Email: "buyer@example.com", Password: "wrongpass1"}

		s.mockCommands.EXPECT().
			Login(gomock.Any(), req).
			Return(nil, commands.ErrInvalidCredentials)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("unknown user reads the same as a bad password", func() {
		req := reqdto.LoginRequest{Email: "ghost@example.com", Password: "password123"}

		s.mockCommands.EXPECT().
			Login(gomock.Any(), req).
			Return(nil, commands.ErrUserNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	s.Run("rotates the pair", func() {
		s.mockCommands.EXPECT().
			RefreshToken(gomock.Any(), "old-refresh").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/refresh",
			reqdto.RefreshRequest{RefreshToken: "old-refresh"}, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("new-access", resp.AccessToken)
	})

	s.Run("invalid refresh token", func() {
		s.mockCommands.EXPECT().
			RefreshToken(gomock.Any(), "stale").
			Return(nil, commands.ErrTokenValidation)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/refresh",
			reqdto.RefreshRequest{RefreshToken: "stale"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired refresh token")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("returns the profile", func() {
		view := &queries.AuthorizedUserView{
			ID:       s.userID,
			Email:    "buyer@example.com",
			Role:     "USER",
			IsActive: true,
		}

		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")

		var resp resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(s.userID, resp.ID)
		s.Equal("buyer@example.com", resp.Email)
	})
}
