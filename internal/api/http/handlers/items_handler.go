package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-service/internal/api/dto"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/service"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// ItemsHandler exposes item catalog and comment endpoints.
type ItemsHandler struct {
	items    *service.ItemService
	comments *service.CommentService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService, commentService *service.CommentService) *ItemsHandler {
	return &ItemsHandler{items: itemService, comments: commentService}
}

// Create POST /items.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.items.Add(c.UserContext(), callerID, service.ItemCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": itemResponse(item)})
}

// Update PATCH /items/:id.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.items.Update(c.UserContext(), itemID, callerID, service.ItemUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": itemResponse(item)})
}

// Get GET /items/:id.
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	details, err := h.items.Get(c.UserContext(), itemID)
	if err != nil {
		return err
	}

	resp := itemResponse(&details.Item)
	resp.Comments = make([]dto.CommentResponse, 0, len(details.Comments))
	for _, comment := range details.Comments {
		resp.Comments = append(resp.Comments, commentResponse(comment))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListByOwner GET /items.
func (h *ItemsHandler) ListByOwner(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	owned, err := h.items.ListByOwner(c.UserContext(), callerID)
	if err != nil {
		return err
	}

	items := make([]dto.ItemResponse, 0, len(owned))
	for _, entry := range owned {
		resp := itemResponse(&entry.Item)
		if entry.LastBooking != nil {
			last := bookingResponse(entry.LastBooking)
			resp.LastBooking = &last
		}
		if entry.NextBooking != nil {
			next := bookingResponse(entry.NextBooking)
			resp.NextBooking = &next
		}
		items = append(items, resp)
	}
	return c.JSON(fiber.Map{"data": items})
}

// Search GET /items/search.
func (h *ItemsHandler) Search(c *fiber.Ctx) error {
	found, err := h.items.Search(c.UserContext(), c.Query("text"))
	if err != nil {
		return err
	}
	items := make([]dto.ItemResponse, 0, len(found))
	for i := range found {
		items = append(items, itemResponse(&found[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddComment POST /items/:id/comment.
func (h *ItemsHandler) AddComment(c *fiber.Ctx) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.comments.Add(c.UserContext(), callerID, itemID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(*comment)})
}

func itemResponse(item *domain.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

func commentResponse(comment service.CommentInfo) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: comment.AuthorName,
		Created:    comment.Created,
	}
}
