package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/inference"
	"text-summarizer-be/pkg/pdftext"
	"text-summarizer-be/pkg/wordcloud"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokens(t *testing.T) {
	tokens := NewSessionTokens("secret")

	tok, err := tokens.Issue("session-1")
	require.NoError(t, err)

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)

	_, err = NewSessionTokens("other").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		MinLength int `validate:"min=10,max=100"`
	}

	assert.NoError(t, ValidateRequest(req{MinLength: 20}))

	err := ValidateRequest(req{MinLength: 5})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "min", ve.Fields["MinLength"])
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ValidationError{Fields: map[string]string{"x": "required"}}, 400},
		{fiber.ErrRequestEntityTooLarge, 413},
		{fmt.Errorf("wrap: %w", service.ErrNoSummary), 409},
		{service.ErrNothingToDownload, 404},
		{fmt.Errorf("x: %w", pdftext.ErrMalformedPDF), 422},
		{wordcloud.ErrNoWords, 422},
		{fmt.Errorf("x: %w", inference.ErrModelUnavailable), 503},
		{inference.ErrModelResponse, 502},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFromError(tt.err), tt.err.Error())
	}
}

func TestMiddlewares(t *testing.T) {
	tokens := NewSessionTokens("secret")
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/whoami", SessionMiddleware(tokens, "sid"), func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", SessionID(ctx)))
	})
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return service.ErrNoSummary
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	tok, _ := tokens.Issue("abc")
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(SessionHeader, tok)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body BaseResponse[string]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "abc", body.Data)

	req = httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: tok})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	var errBody BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.False(t, errBody.Success)
	assert.Equal(t, 409, errBody.Code)
}
