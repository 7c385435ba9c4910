package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"text-summarizer-be/internal/constant"
	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/store"
	"text-summarizer-be/web"

	"github.com/gofiber/fiber/v2"
)

type IPageController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
}

// PageAssets locates the banner and logo images on disk.
type PageAssets struct {
	Dir         string
	BannerImage string
	LogoImage   string
}

type pageData struct {
	Title          string
	Icon           string
	BannerURL      string
	LogoURL        string
	MinLengthLower int
	MinLengthUpper int
	MinLength      int
	MaxLengthLower int
	MaxLengthUpper int
	MaxLength      int
	ModeText       string
	ModePDF        string
	Render         *dto.RenderInstruction
}

type pageController struct {
	assets            PageAssets
	sessionService    service.ISessionService
	summarizerService service.ISummarizerService
	tokens            *serverutils.SessionTokens
	cookieName        string
	ttl               time.Duration
	secureCookie      bool
	minLengthDefault  int
	maxLengthDefault  int
	log               logger.ILogger
}

type PageControllerConfig struct {
	Assets           PageAssets
	CookieName       string
	SessionTTL       time.Duration
	SecureCookie     bool
	MinLengthDefault int
	MaxLengthDefault int
}

func NewPageController(
	cfg PageControllerConfig,
	sessionService service.ISessionService,
	summarizerService service.ISummarizerService,
	tokens *serverutils.SessionTokens,
	log logger.ILogger,
) IPageController {
	return &pageController{
		assets:            cfg.Assets,
		sessionService:    sessionService,
		summarizerService: summarizerService,
		tokens:            tokens,
		cookieName:        cfg.CookieName,
		ttl:               cfg.SessionTTL,
		secureCookie:      cfg.SecureCookie,
		minLengthDefault:  cfg.MinLengthDefault,
		maxLengthDefault:  cfg.MaxLengthDefault,
		log:               log,
	}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
}

func (c *pageController) Index(ctx *fiber.Ctx) error {
	// the page cannot be drawn without its images
	for _, name := range []string{c.assets.BannerImage, c.assets.LogoImage} {
		if _, err := os.Stat(filepath.Join(c.assets.Dir, name)); err != nil {
			c.log.Error("PageController", "page asset missing", map[string]interface{}{
				"asset": name,
				"error": err.Error(),
			})
			return fmt.Errorf("page asset %s: %w", name, err)
		}
	}

	sess, err := c.sessionFor(ctx)
	if err != nil {
		return err
	}

	data := pageData{
		Title:          constant.PageTitle,
		Icon:           constant.PageIcon,
		BannerURL:      "/assets/" + c.assets.BannerImage,
		LogoURL:        "/assets/" + c.assets.LogoImage,
		MinLengthLower: constant.MinLengthLower,
		MinLengthUpper: constant.MinLengthUpper,
		MinLength:      c.minLengthDefault,
		MaxLengthLower: constant.MaxLengthLower,
		MaxLengthUpper: constant.MaxLengthUpper,
		MaxLength:      c.maxLengthDefault,
		ModeText:       constant.InputModeText,
		ModePDF:        constant.InputModePDF,
		Render:         c.summarizerService.Render(sess),
	}

	return ctx.Render(web.IndexView, data)
}

// sessionFor reuses the session named by a valid token and starts a new one otherwise.
func (c *pageController) sessionFor(ctx *fiber.Ctx) (*store.Session, error) {
	if token := serverutils.TokenFromRequest(ctx, c.cookieName); token != "" {
		if id, err := c.tokens.Parse(token); err == nil {
			return c.sessionService.Load(ctx.UserContext(), id)
		}
	}

	sess, _, err := startSession(ctx, c.sessionService, c.tokens, c.cookieName, c.ttl, c.secureCookie)
	return sess, err
}
