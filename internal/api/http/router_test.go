package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rental-service/internal/api/http"
	"github.com/spec-kit/rental-service/internal/api/http/handlers"
	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/observability"
	"github.com/spec-kit/rental-service/internal/repository/memory"
	"github.com/spec-kit/rental-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	itemRepo := memory.NewItemRepository(store)
	bookingRepo := memory.NewBookingRepository(store)
	requestRepo := memory.NewRequestRepository(store)
	commentRepo := memory.NewCommentRepository(store)

	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(service.ItemDependencies{
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
		RequestRepo: requestRepo,
		BookingRepo: bookingRepo,
		CommentRepo: commentRepo,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		ItemRepo:    itemRepo,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		BookingRepo: bookingRepo,
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("test", "dev", nil),
		Users:    handlers.NewUsersHandler(userService),
		Items:    handlers.NewItemsHandler(itemService, commentService),
		Bookings: handlers.NewBookingsHandler(bookingService),
		Requests: handlers.NewRequestsHandler(requestService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, callerID int64, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if callerID != 0 {
		req.Header.Set(auth.UserHeader, fmt.Sprintf("%d", callerID))
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestUserEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/users", 0, map[string]any{
		"name": "Alice", "email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Alice", data["name"])
	userID := int64(data["id"].(float64))

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d", userID), 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["data"].(map[string]any)["email"])

	resp, body = doJSON(t, app, http.MethodPost, "/users", 0, map[string]any{
		"name": "Imposter", "email": "alice@example.com",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["error"].(map[string]any)["code"])

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/users/%d", userID), 0, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/users/%d", userID), 0, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)

	_, ownerBody := doJSON(t, app, http.MethodPost, "/users", 0, map[string]any{
		"name": "Olga", "email": "olga@example.com",
	})
	ownerID := int64(ownerBody["data"].(map[string]any)["id"].(float64))

	_, bookerBody := doJSON(t, app, http.MethodPost, "/users", 0, map[string]any{
		"name": "Boris", "email": "boris@example.com",
	})
	bookerID := int64(bookerBody["data"].(map[string]any)["id"].(float64))

	resp, itemBody := doJSON(t, app, http.MethodPost, "/items", ownerID, map[string]any{
		"name": "Drill", "description": "Cordless drill", "available": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	itemID := int64(itemBody["data"].(map[string]any)["id"].(float64))

	start := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	resp, bookingBody := doJSON(t, app, http.MethodPost, "/bookings", bookerID, map[string]any{
		"itemId": itemID, "start": start, "end": end,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bookingData := bookingBody["data"].(map[string]any)
	assert.Equal(t, "WAITING", bookingData["status"])
	bookingID := int64(bookingData["id"].(float64))

	resp, decidedBody := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=true", bookingID), ownerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "APPROVED", decidedBody["data"].(map[string]any)["status"])

	resp, repeatBody := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=false", bookingID), ownerID, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", repeatBody["error"].(map[string]any)["code"])

	// owner listing beats the :id wildcard
	resp, ownerList := doJSON(t, app, http.MethodGet, "/bookings/owner", ownerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, ownerList["data"].([]any), 1)
}

func TestBookingEndpointRequiresIdentityHeader(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/bookings", 0, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}
