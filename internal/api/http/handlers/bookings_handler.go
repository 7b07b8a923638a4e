package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-service/internal/api/dto"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/service"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// BookingsHandler exposes the booking lifecycle endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookingService}
}

// Create POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	booking, err := h.bookings.Create(c.UserContext(), callerID, service.BookingCreateInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Decide PATCH /bookings/:id.
func (h *BookingsHandler) Decide(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		return apperrors.NewValidationError("query parameter 'approved' must be a boolean", nil)
	}

	booking, err := h.bookings.Decide(c.UserContext(), bookingID, approved, callerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Get GET /bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookings.Get(c.UserContext(), bookingID, callerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// ListForBooker GET /bookings.
func (h *BookingsHandler) ListForBooker(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListForBooker(c.UserContext(), callerID, c.Query("state"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListForOwner GET /bookings/owner.
func (h *BookingsHandler) ListForOwner(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListForOwner(c.UserContext(), callerID, c.Query("state"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

func bookingResponse(booking *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:       booking.ID,
		Start:    booking.Start,
		End:      booking.End,
		Status:   string(booking.Status),
		ItemID:   booking.ItemID,
		BookerID: booking.BookerID,
	}
}

func bookingResponses(bookings []domain.Booking) []dto.BookingResponse {
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return items
}
