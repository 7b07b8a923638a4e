package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	httptransport "github.com/spec-kit/rental-service/internal/api/http"
	"github.com/spec-kit/rental-service/internal/observability"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

func TestRequestLogCarriesRenderedErrorStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 5*time.Second)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("thing", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])
}
