//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"ticketapp/internal/domain/user"
	"ticketapp/internal/handler/api"
	resdto "ticketapp/internal/handler/dto/response"
	"ticketapp/internal/usecase/commands"
	"ticketapp/internal/usecase/queries"
	"ticketapp/tests/common/builder"
	"ticketapp/tests/common/httptest"
	commandsmock "ticketapp/tests/mock/commands"
	queriesmock "ticketapp/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Stand-in for the auth middleware.
	authed := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
	}

	s.router.POST("/bookings", authed, s.handler.CreateBooking)
	s.router.GET("/bookings", authed, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authed, s.handler.GetBooking)
	s.router.POST("/bookings/:id/confirm", authed, s.handler.ConfirmBooking)
	s.router.POST("/bookings/:id/cancel", authed, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("creates a hold", func() {
		b := builder.NewBookingBuilder().WithUserID(s.userID)
		req := b.BuildCreateRequestDTO()
		view := b.BuildView("HOLD")

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, s.userID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", req, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("HOLD", resp.Status)
		s.NotNil(resp.HoldExpiry)
	})

	s.Run("event not found", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, s.userID).
			Return(nil, commands.ErrEventNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Event not found")
	})

	s.Run("unknown ticket type", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, s.userID).
			Return(nil, commands.ErrUnknownTicketType)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown ticket type")
	})

	s.Run("sold out", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, s.userID).
			Return(nil, commands.ErrEventSoldOut)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Not enough tickets remaining")
	})

	s.Run("inventory unavailable", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, s.userID).
			Return(nil, commands.ErrInventoryUnavailable)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "Inventory temporarily unavailable")
	})

	s.Run("malformed body", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings",
			map[string]any{"quantity": "three"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("returns own booking", func() {
		view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView("HOLD")

		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, user.RoleUser, view.ID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("denied reads as not found", func() {
		id := uuid.New()

		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, user.RoleUser, id).
			Return(nil, queries.ErrDenied)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("invalid id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID format")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("lists with explicit limit", func() {
		items := []*queries.BookingListItem{
			{ID: uuid.New(), Status: "HOLD"},
			{ID: uuid.New(), Status: "CONFIRMED"},
		}

		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.userID, 10).
			Return(items, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=10", nil, "")

		var resp []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 2)
	})

	s.Run("rejects non-numeric limit", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=abc", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid limit")
	})
}

func (s *BookingHandlerTestSuite) TestConfirmBooking() {
	s.Run("confirms", func() {
		view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView("CONFIRMED")
		body := map[string]any{"paymentRef": "pay_abc123"}

		s.mockCommands.EXPECT().
			ConfirmBooking(gomock.Any(), view.ID, s.userID, "pay_abc123").
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+view.ID.String()+"/confirm", body, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("CONFIRMED", resp.Status)
	})

	s.Run("already finalized", func() {
		id := uuid.New()
		body := map[string]any{"paymentRef": "pay_abc123"}

		s.mockCommands.EXPECT().
			ConfirmBooking(gomock.Any(), id, s.userID, "pay_abc123").
			Return(nil, commands.ErrAlreadyFinalized)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/confirm", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Booking is already finalized")
	})

	s.Run("someone else's booking reads as not found", func() {
		id := uuid.New()
		body := map[string]any{"paymentRef": "pay_abc123"}

		s.mockCommands.EXPECT().
			ConfirmBooking(gomock.Any(), id, s.userID, "pay_abc123").
			Return(nil, commands.ErrBookingAccessDenied)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/confirm", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("missing payment ref", func() {
		id := uuid.New()

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/confirm",
			map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("cancels", func() {
		view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView("CANCELLED")

		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), view.ID, s.userID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+view.ID.String()+"/cancel", nil, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("CANCELLED", resp.Status)
	})

	s.Run("already finalized", func() {
		id := uuid.New()

		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), id, s.userID).
			Return(nil, commands.ErrAlreadyFinalized)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/cancel", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Booking is already finalized")
	})
}
