package controller

import (
	"time"

	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService    service.ISessionService
	summarizerService service.ISummarizerService
	tokens            *serverutils.SessionTokens
	cookieName        string
	ttl               time.Duration
	secureCookie      bool
}

func NewSessionController(
	sessionService service.ISessionService,
	summarizerService service.ISummarizerService,
	tokens *serverutils.SessionTokens,
	cookieName string,
	ttl time.Duration,
	secureCookie bool,
) ISessionController {
	return &sessionController{
		sessionService:    sessionService,
		summarizerService: summarizerService,
		tokens:            tokens,
		cookieName:        cookieName,
		ttl:               ttl,
		secureCookie:      secureCookie,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
	h.Get("", sessionMiddleware, c.Show)
	h.Delete("", sessionMiddleware, c.Reset)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	sess, token, err := startSession(ctx, c.sessionService, c.tokens, c.cookieName, c.ttl, c.secureCookie)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", &dto.SessionResponse{
		SessionId: sess.ID,
		Token:     token,
		Render:    c.summarizerService.Render(sess),
	}))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	sess, err := c.sessionService.Load(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session loaded", &dto.SessionResponse{
		SessionId: sess.ID,
		Render:    c.summarizerService.Render(sess),
	}))
}

func (c *sessionController) Reset(ctx *fiber.Ctx) error {
	sess, err := c.sessionService.Reset(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session reset", &dto.SessionResponse{
		SessionId: sess.ID,
		Render:    c.summarizerService.Render(sess),
	}))
}

// startSession creates an empty session and hands its signed token to the browser as a cookie.
func startSession(
	ctx *fiber.Ctx,
	sessionService service.ISessionService,
	tokens *serverutils.SessionTokens,
	cookieName string,
	ttl time.Duration,
	secure bool,
) (*store.Session, string, error) {
	sess, err := sessionService.Create(ctx.UserContext())
	if err != nil {
		return nil, "", err
	}

	token, err := tokens.Issue(sess.ID)
	if err != nil {
		return nil, "", err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sess, token, nil
}
