package api

import (
	"errors"
	"net/http"

	resdto "ticketapp/internal/handler/dto/response"
	"ticketapp/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	ticketQueries queries.TicketQueries
}

func NewTicketHandler(ticketQueries queries.TicketQueries) *TicketHandler {
	return &TicketHandler{
		ticketQueries: ticketQueries,
	}
}

// @Summary Get booking ticket
// @Description Get the issued ticket for a confirmed booking
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.TicketResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tickets/booking/{bookingId} [get]
func (h *TicketHandler) GetBookingTicket(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.ticketQueries.GetByBookingID(c.Request.Context(), actorID, role, bookingID)
	if err != nil {
		if isNotFound(err) || errors.Is(err, queries.ErrDenied) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ticket not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTicketView(view))
}
