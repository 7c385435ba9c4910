package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"text-summarizer-be/internal/config"
	"text-summarizer-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{CorsAllowedOrigins: "*", MaxUploadMB: 1},
	}
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPanicBecomesJSONError(t *testing.T) {
	app := newApp(testConfig(), logger.NewNopLogger())
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		panic("pipeline exploded")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	body := decode(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["message"])
}

func TestUnknownRouteUsesJSONEnvelope(t *testing.T) {
	app := newApp(testConfig(), logger.NewNopLogger())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, float64(404), body["code"])
}
