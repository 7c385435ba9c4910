package controller

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/pdftext"
	"text-summarizer-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type ISummarizerController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Input(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	Translate(ctx *fiber.Ctx) error
	DownloadSummary(ctx *fiber.Ctx) error
	DownloadTranslation(ctx *fiber.Ctx) error
	WordCloud(ctx *fiber.Ctx) error
}

type summarizerController struct {
	summarizerService service.ISummarizerService
	sessionService    service.ISessionService
	minLengthDefault  int
	maxLengthDefault  int
}

func NewSummarizerController(
	summarizerService service.ISummarizerService,
	sessionService service.ISessionService,
	minLengthDefault int,
	maxLengthDefault int,
) ISummarizerController {
	return &summarizerController{
		summarizerService: summarizerService,
		sessionService:    sessionService,
		minLengthDefault:  minLengthDefault,
		maxLengthDefault:  maxLengthDefault,
	}
}

func (c *summarizerController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/summarizer/v1")
	h.Post("input", c.Input)

	h.Use(sessionMiddleware)
	h.Post("summarize", c.Summarize)
	h.Post("translate", c.Translate)
	h.Get("summary/download", c.DownloadSummary)
	h.Get("translation/download", c.DownloadTranslation)
	h.Get("summary/wordcloud.png", c.WordCloud)
}

func (c *summarizerController) Input(ctx *fiber.Ctx) error {
	var req dto.InputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	pdf, err := readUpload(ctx)
	if err != nil {
		return err
	}
	req.PDF = pdf

	res, err := c.summarizerService.AcquireInput(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Input read", res))
}

func (c *summarizerController) Summarize(ctx *fiber.Ctx) error {
	req := dto.SummarizeRequest{
		MinLength: c.minLengthDefault,
		MaxLength: c.maxLengthDefault,
	}
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	pdf, err := readUpload(ctx)
	if err != nil {
		return err
	}
	req.PDF = pdf

	sess, err := c.sessionService.Load(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	next, render, err := c.summarizerService.OnSummarizeClicked(ctx.UserContext(), sess, &req)
	if err != nil {
		return err
	}
	if render.Skipped {
		return ctx.JSON(serverutils.SuccessResponse("No input to summarize", render))
	}

	if err := c.sessionService.Save(ctx.UserContext(), next); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Summary ready", render))
}

func (c *summarizerController) Translate(ctx *fiber.Ctx) error {
	sess, err := c.sessionService.Load(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	next, render, err := c.summarizerService.OnTranslateClicked(ctx.UserContext(), sess)
	if err != nil {
		return err
	}

	if err := c.sessionService.Save(ctx.UserContext(), next); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Translation ready", render))
}

func (c *summarizerController) DownloadSummary(ctx *fiber.Ctx) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}
	download, err := c.summarizerService.SummaryDownload(sess)
	if err != nil {
		return err
	}
	return sendText(ctx, download)
}

func (c *summarizerController) DownloadTranslation(ctx *fiber.Ctx) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}
	download, err := c.summarizerService.TranslationDownload(sess)
	if err != nil {
		return err
	}
	return sendText(ctx, download)
}

func (c *summarizerController) WordCloud(ctx *fiber.Ctx) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}
	data, err := c.summarizerService.WordCloudPNG(sess)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, "image/png")
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	return ctx.Send(data)
}

func (c *summarizerController) currentSession(ctx *fiber.Ctx) (*store.Session, error) {
	return c.sessionService.Load(ctx.UserContext(), serverutils.SessionID(ctx))
}

func sendText(ctx *fiber.Ctx, download *dto.Download) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Attachment(download.FileName)
	return ctx.SendString(download.Content)
}

// readUpload returns the bytes of the multipart "file" field, or nil when the request has none.
func readUpload(ctx *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && fileHeader.Header.Get(fiber.HeaderContentType) != pdftext.ContentType {
		return nil, service.ErrUnsupportedFile
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
