package gateway

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-service/internal/auth"
	"github.com/spec-kit/rental-service/internal/config"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// Client forwards validated requests to the core server over a pooled
// HTTP transport, attaching the gateway service token.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *auth.ServiceTokenManager
	logger  *zap.Logger
}

// NewClient builds the forwarding client for the configured server URL.
func NewClient(cfg config.GatewayConfig, tokens *auth.ServiceTokenManager, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		http: &http.Client{
			Timeout: cfg.ForwardTimeout(),
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxConnsPerHost:     100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		tokens: tokens,
		logger: logger,
	}
}

// Forward proxies the current request to the server, preserving method, path,
// query, body and the identity header, and copies back the server's status
// and body verbatim.
func (cl *Client) Forward(c *fiber.Ctx) error {
	target := cl.baseURL + c.OriginalURL()

	req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), target, bytes.NewReader(c.Body()))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if len(c.Body()) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if callerHeader := c.Get(auth.UserHeader); callerHeader != "" {
		req.Header.Set(auth.UserHeader, callerHeader)
	}
	if requestID := c.Get(fiber.HeaderXRequestID); requestID != "" {
		req.Header.Set(fiber.HeaderXRequestID, requestID)
	}

	token, _, err := cl.tokens.Issue()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := cl.http.Do(req)
	if err != nil {
		cl.logger.Error("forward failed", zap.String("target", target), zap.Error(err))
		return apperrors.NewDomainError("UPSTREAM_UNAVAILABLE", "server unavailable", http.StatusBadGateway, nil)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	if contentType := resp.Header.Get(fiber.HeaderContentType); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Status(resp.StatusCode).Send(body)
}
