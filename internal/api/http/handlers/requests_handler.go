package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-service/internal/api/dto"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/service"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// RequestsHandler exposes the request board endpoints.
type RequestsHandler struct {
	requests *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requestService}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.requests.Create(c.UserContext(), callerID, req.Description)
	if err != nil {
		return err
	}
	resp := requestResponse(service.RequestDetails{Request: *request, Items: []service.ItemShort{}})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": resp})
}

// ListOwn GET /requests.
func (h *RequestsHandler) ListOwn(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	details, err := h.requests.ListOwn(c.UserContext(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(details)})
}

// ListOthers GET /requests/all.
func (h *RequestsHandler) ListOthers(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	details, err := h.requests.ListOthers(c.UserContext(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(details)})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	details, err := h.requests.Get(c.UserContext(), callerID, requestID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(*details)})
}

func requestResponse(details service.RequestDetails) dto.RequestResponse {
	items := make([]dto.ItemShortResponse, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, dto.ItemShortResponse{ID: item.ID, Name: item.Name, OwnerID: item.OwnerID})
	}
	return dto.RequestResponse{
		ID:          details.Request.ID,
		Description: details.Request.Description,
		Created:     details.Request.Created,
		Items:       items,
	}
}

func requestResponses(details []service.RequestDetails) []dto.RequestResponse {
	items := make([]dto.RequestResponse, 0, len(details))
	for _, entry := range details {
		items = append(items, requestResponse(entry))
	}
	return items
}
