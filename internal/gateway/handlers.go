package gateway

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-service/internal/api/dto"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/domain"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// Handler validates incoming payloads and parameters, then forwards the
// request to the server unchanged. All domain decisions stay server-side.
type Handler struct {
	client    *Client
	validator *Validator
}

// NewHandler constructs the gateway handler set.
func NewHandler(client *Client, validator *Validator) *Handler {
	return &Handler{client: client, validator: validator}
}

// Forward passes the request through without payload validation.
func (h *Handler) Forward(c *fiber.Ctx) error {
	return h.client.Forward(c)
}

// ForwardWithCaller requires a well-formed identity header before forwarding.
func (h *Handler) ForwardWithCaller(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// CreateUser validates the registration payload.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// UpdateUser validates the partial-update payload.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	if err := h.checkPathID(c); err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// CreateItem validates the listing payload and the identity header.
func (h *Handler) CreateItem(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// AddComment validates the comment payload and the identity header.
func (h *Handler) AddComment(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	if err := h.checkPathID(c); err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// CreateBooking validates the booking payload, including the temporal window.
func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	if err := h.validator.CheckBookingWindow(req); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// DecideBooking requires a parsable approved flag before forwarding.
func (h *Handler) DecideBooking(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	if err := h.checkPathID(c); err != nil {
		return err
	}
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		return apperrors.NewValidationError("approved must be true or false", nil)
	}
	return h.client.Forward(c)
}

// ListBookings checks the state filter parses before forwarding.
func (h *Handler) ListBookings(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	if _, err := domain.ParseBookingState(c.Query("state")); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return h.client.Forward(c)
}

// CreateRequest validates the item-request payload and the identity header.
func (h *Handler) CreateRequest(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	return h.client.Forward(c)
}

// ForwardWithPathID checks the numeric path id and the identity header.
func (h *Handler) ForwardWithPathID(c *fiber.Ctx) error {
	if _, err := auth.CallerID(c); err != nil {
		return err
	}
	if err := h.checkPathID(c); err != nil {
		return err
	}
	return h.client.Forward(c)
}

func (h *Handler) checkPathID(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return nil
}
