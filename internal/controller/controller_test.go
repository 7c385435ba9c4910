package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/repository/memory"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/inference"
	"text-summarizer-be/pkg/pdftext/pdftest"
	"text-summarizer-be/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "summarizer_session"

type stubPipeline struct {
	output string
	calls  *int
}

func (s stubPipeline) Summarize(_ context.Context, _ string) (string, error) {
	*s.calls++
	return s.output, nil
}

func (s stubPipeline) Translate(_ context.Context, _ string) (string, error) {
	*s.calls++
	return s.output, nil
}

type stubBackend struct {
	summaryOut     string
	translationOut string
	summaryCalls   int
	translateCalls int
}

func (b *stubBackend) NewSummarizer(_ string, _ inference.SummarizeOptions) (inference.Summarizer, error) {
	return stubPipeline{output: b.summaryOut, calls: &b.summaryCalls}, nil
}

func (b *stubBackend) NewTranslator(_, _ string) (inference.Translator, error) {
	return stubPipeline{output: b.translationOut, calls: &b.translateCalls}, nil
}

type testEnv struct {
	app     *fiber.App
	backend *stubBackend
	tokens  *serverutils.SessionTokens
}

func newTestEnv(t *testing.T, assetsDir string) *testEnv {
	t.Helper()

	log := logger.NewNopLogger()
	backend := &stubBackend{
		summaryOut:     "The fox jumps. It is quick.",
		translationOut: "لومڑی کودتی ہے - یہ تیز ہے",
	}
	tokens := serverutils.NewSessionTokens("test-secret")
	sessionService := service.NewSessionService(memory.NewSessionRepository(time.Hour, time.Minute), log)
	summarizerService := service.NewSummarizerService(inference.NewRegistry(backend), "t5-small", "opus-mt-en-ur", nil, log)

	pageController := NewPageController(PageControllerConfig{
		Assets:           PageAssets{Dir: assetsDir, BannerImage: "banner.svg", LogoImage: "logo.svg"},
		CookieName:       testCookie,
		SessionTTL:       time.Hour,
		MinLengthDefault: 20,
		MaxLengthDefault: 250,
	}, sessionService, summarizerService, tokens, log)

	app := fiber.New(fiber.Config{Views: web.NewViews()})
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	sessionMiddleware := serverutils.SessionMiddleware(tokens, testCookie)
	api := app.Group("/api")
	NewSummarizerController(summarizerService, sessionService, 20, 250).RegisterRoutes(api, sessionMiddleware)
	NewSessionController(sessionService, summarizerService, tokens, testCookie, time.Hour, false).RegisterRoutes(api, sessionMiddleware)
	pageController.RegisterRoutes(app)

	return &testEnv{app: app, backend: backend, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(body, &parsed))
	}
	return resp, parsed
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	resp, body := e.do(t, httptest.NewRequest(http.MethodPost, "/api/session/v1", nil))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

func jsonRequest(method, path, token string, payload interface{}) *http.Request {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(serverutils.SessionHeader, token)
	}
	return req
}

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"banner.svg", "logo.svg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0o644))
	}
	return dir
}

func TestSummarizeAndTranslateFlow(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", token, map[string]interface{}{
		"mode":       "text",
		"text":       "The quick brown fox. It jumps over the lazy dog.",
		"min_length": 10,
		"max_length": 50,
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	render := body["data"].(map[string]interface{})
	assert.Equal(t, "SUMMARIZED", render["state"])
	assert.Equal(t, float64(10), render["input_word_count"])
	summary := render["summary"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The fox jumps", "It is quick."}, summary["bullets"])

	resp, body = env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/translate", token, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	render = body["data"].(map[string]interface{})
	assert.Equal(t, "TRANSLATED", render["state"])
	translation := render["translation"].(map[string]interface{})
	assert.Equal(t, []interface{}{"لومڑی کودتی ہے", "یہ تیز ہے"}, translation["bullets"])

	req := httptest.NewRequest(http.MethodGet, "/api/summarizer/v1/summary/download", nil)
	req.Header.Set(serverutils.SessionHeader, token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "summary.txt")
	content, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "The fox jumps. It is quick.", string(content))

	req = httptest.NewRequest(http.MethodGet, "/api/summarizer/v1/translation/download", nil)
	req.Header.Set(serverutils.SessionHeader, token)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "summary_urdu.txt")

	req = httptest.NewRequest(http.MethodGet, "/api/summarizer/v1/summary/wordcloud.png", nil)
	req.Header.Set(serverutils.SessionHeader, token)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	assert.Equal(t, 1, env.backend.summaryCalls)
	assert.Equal(t, 1, env.backend.translateCalls)
}

func TestSummarizeEmptyInputIsSkipped(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", token, map[string]interface{}{
		"mode": "text",
		"text": "",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	render := body["data"].(map[string]interface{})
	assert.Equal(t, true, render["skipped"])
	assert.Equal(t, "IDLE", render["state"])
	assert.Equal(t, 0, env.backend.summaryCalls)
}

func TestTranslateWithoutSummaryConflicts(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/translate", token, nil))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, 0, env.backend.translateCalls)
}

func TestDownloadWithoutSummaryNotFound(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summarizer/v1/summary/download", nil)
	req.Header.Set(serverutils.SessionHeader, token)
	resp, _ := env.do(t, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSummarizeRejectsOutOfRangeBounds(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", token, map[string]interface{}{
		"mode":       "text",
		"text":       "some text",
		"min_length": 5,
		"max_length": 600,
	}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, env.backend.summaryCalls)
}

func TestSummarizeRequiresSession(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", "", map[string]interface{}{"text": "x"}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInputRejectsNonPDFUpload(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("mode", "pdf"))
	part, err := w.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("plain text"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarizer/v1/input", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, _ := env.do(t, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInputCountsWords(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/input", "", dto.InputRequest{Mode: "text", Text: "one two three four"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["word_count"])
}

func TestSessionResetReturnsToIdle(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", token, map[string]interface{}{"text": "a b c"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := env.do(t, jsonRequest(http.MethodDelete, "/api/session/v1", token, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	render := data["render"].(map[string]interface{})
	assert.Equal(t, "IDLE", render["state"])
}

func TestPageRendersAndStartsSession(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	html, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(html), "Advanced Text Summarizer")
	assert.Contains(t, string(html), "Translate to Urdu")
	assert.Contains(t, string(html), `max="500"`)
	assert.Contains(t, string(html), "/api/summarizer/v1/input")

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	_, err = env.tokens.Parse(sessionCookie.Value)
	assert.NoError(t, err)
}

func TestPageFailsWhenAssetMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))
	env := newTestEnv(t, dir)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func pdfSummarizeRequest(t *testing.T, token string, pdf []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("mode", "pdf"))
	require.NoError(t, w.WriteField("min_length", "20"))
	require.NoError(t, w.WriteField("max_length", "250"))
	part, err := w.CreateFormFile("file", "document.pdf")
	require.NoError(t, err)
	_, err = part.Write(pdf)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarizer/v1/summarize", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(serverutils.SessionHeader, token)
	return req
}

func TestSummarizeUploadedPDF(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	pdf := pdftest.Build("The quick brown fox.", "It jumps over the lazy dog.")
	resp, body := env.do(t, pdfSummarizeRequest(t, token, pdf))

	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %v", body)
	render := body["data"].(map[string]interface{})
	assert.Equal(t, "SUMMARIZED", render["state"])
	assert.Greater(t, render["input_word_count"].(float64), float64(0))
	assert.Equal(t, 1, env.backend.summaryCalls)
}

func TestSummarizePDFWithoutTextIsSkipped(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, body := env.do(t, pdfSummarizeRequest(t, token, pdftest.Build("")))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	render := body["data"].(map[string]interface{})
	assert.Equal(t, true, render["skipped"])
	assert.Equal(t, "IDLE", render["state"])
	assert.Equal(t, 0, env.backend.summaryCalls)
}

func TestSummarizeMalformedPDF(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	token := env.newSession(t)

	resp, _ := env.do(t, pdfSummarizeRequest(t, token, []byte("%PDF-1.4 truncated")))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, 0, env.backend.summaryCalls)
}

func TestBlankModelOutputIsBadGateway(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	env.backend.summaryOut = ""
	token := env.newSession(t)

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", token, map[string]interface{}{"text": "some input text here"}))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = env.do(t, jsonRequest(http.MethodGet, "/api/session/v1", token, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "IDLE", data["render"].(map[string]interface{})["state"])
}

func TestBlankTranslationIsBadGateway(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))
	env.backend.translationOut = "  "
	token := env.newSession(t)

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/summarize", token, map[string]interface{}{"text": "some input text here"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, jsonRequest(http.MethodPost, "/api/summarizer/v1/translate", token, nil))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestInputCountsWordsFromMultipartText(t *testing.T) {
	env := newTestEnv(t, writeAssets(t))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("mode", "text"))
	require.NoError(t, w.WriteField("text", "typed on the page"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarizer/v1/input", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, body := env.do(t, req)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["word_count"])
}
