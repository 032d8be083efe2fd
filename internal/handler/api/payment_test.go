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

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler
	userID       uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	authed := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
	}

	s.router.POST("/payments", authed, s.handler.InitiatePayment)
	// Provider callbacks authenticate out of band.
	s.router.POST("/payments/callback", s.handler.ProviderCallback)
	s.router.GET("/payments/booking/:bookingId", authed, s.handler.GetBookingPayment)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func paymentViewFor(userID uuid.UUID, status string) *queries.PaymentView {
	return &queries.PaymentView{
		ID:          uuid.New(),
		BookingID:   uuid.New(),
		UserID:      userID,
		AmountCents: 5000,
		Currency:    "USD",
		Status:      status,
	}
}

func (s *PaymentHandlerTestSuite) TestInitiatePayment() {
	s.Run("starts a payment", func() {
		view := paymentViewFor(s.userID, "PENDING")
		req := reqdto.InitiatePaymentRequest{
			BookingID:   view.BookingID,
			AmountCents: 5000,
			Currency:    "USD",
		}

		s.mockCommands.EXPECT().
			InitiatePayment(gomock.Any(), req, s.userID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", req, "")

		var resp resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("PENDING", resp.Status)
	})

	s.Run("finalized booking", func() {
		req := reqdto.InitiatePaymentRequest{
			BookingID:   uuid.New(),
			AmountCents: 5000,
			Currency:    "USD",
		}

		s.mockCommands.EXPECT().
			InitiatePayment(gomock.Any(), req, s.userID).
			Return(nil, commands.ErrPaymentNotPending)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "not awaiting payment")
	})

	s.Run("someone else's booking reads as not found", func() {
		req := reqdto.InitiatePaymentRequest{
			BookingID:   uuid.New(),
			AmountCents: 5000,
			Currency:    "USD",
		}

		s.mockCommands.EXPECT().
			InitiatePayment(gomock.Any(), req, s.userID).
			Return(nil, commands.ErrBookingAccessDenied)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("bad currency", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments",
			map[string]any{"bookingId": uuid.New().String(), "amountCents": 5000, "currency": "DOLLARS"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *PaymentHandlerTestSuite) TestProviderCallback() {
	s.Run("accepts a verdict", func() {
		req := reqdto.ProviderCallbackRequest{
			PaymentID:   uuid.New(),
			ProviderRef: "prov_123",
			Status:      "SUCCESS",
		}

		s.mockCommands.EXPECT().
			HandleProviderCallback(gomock.Any(), req).
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/callback", req, "")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("accepted", resp["status"])
	})

	s.Run("unknown payment", func() {
		req := reqdto.ProviderCallbackRequest{
			PaymentID:   uuid.New(),
			ProviderRef: "prov_123",
			Status:      "SUCCESS",
		}

		s.mockCommands.EXPECT().
			HandleProviderCallback(gomock.Any(), req).
			Return(commands.ErrPaymentNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/callback", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Payment not found")
	})

	s.Run("rejects unknown status values", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/callback",
			map[string]any{"paymentId": uuid.New().String(), "providerRef": "prov_123", "status": "MAYBE"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *PaymentHandlerTestSuite) TestGetBookingPayment() {
	s.Run("returns the latest payment", func() {
		view := paymentViewFor(s.userID, "SUCCESS")

		s.mockQueries.EXPECT().
			GetByBookingID(gomock.Any(), s.userID, user.RoleUser, view.BookingID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/booking/"+view.BookingID.String(), nil, "")

		var resp resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("denied reads as not found", func() {
		bookingID := uuid.New()

		s.mockQueries.EXPECT().
			GetByBookingID(gomock.Any(), s.userID, user.RoleUser, bookingID).
			Return(nil, queries.ErrDenied)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/booking/"+bookingID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Payment not found")
	})
}
