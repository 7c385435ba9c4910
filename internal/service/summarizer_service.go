package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"text-summarizer-be/internal/constant"
	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/pkg/events"
	"text-summarizer-be/pkg/inference"
	"text-summarizer-be/pkg/pdftext"
	"text-summarizer-be/pkg/store"
	"text-summarizer-be/pkg/utils"
	"text-summarizer-be/pkg/wordcloud"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNoSummary         = errors.New("no summary to translate")
	ErrNothingToDownload = errors.New("nothing to download")
	ErrMissingFile       = errors.New("a pdf file is required in pdf mode")
	ErrUnsupportedFile   = errors.New("only PDF files are allowed")
)

// ISummarizerService has one handler per user action. Handlers receive the current session
// and return the updated copy; persisting it is the caller's job.
type ISummarizerService interface {
	AcquireInput(ctx context.Context, req *dto.InputRequest) (*dto.InputResponse, error)
	OnSummarizeClicked(ctx context.Context, sess *store.Session, req *dto.SummarizeRequest) (*store.Session, *dto.RenderInstruction, error)
	OnTranslateClicked(ctx context.Context, sess *store.Session) (*store.Session, *dto.RenderInstruction, error)
	Render(sess *store.Session) *dto.RenderInstruction
	SummaryDownload(sess *store.Session) (*dto.Download, error)
	TranslationDownload(sess *store.Session) (*dto.Download, error)
	WordCloudPNG(sess *store.Session) ([]byte, error)
}

type summarizerService struct {
	registry           *inference.Registry
	summarizationModel string
	translationModel   string
	publisher          IPublisherService
	log                logger.ILogger
	tracer             trace.Tracer
	cloudOptions       wordcloud.Options
}

func NewSummarizerService(
	registry *inference.Registry,
	summarizationModel string,
	translationModel string,
	publisher IPublisherService,
	log logger.ILogger,
) ISummarizerService {
	return &summarizerService{
		registry:           registry,
		summarizationModel: summarizationModel,
		translationModel:   translationModel,
		publisher:          publisher,
		log:                log,
		tracer:             otel.Tracer("text-summarizer-be/service"),
		cloudOptions:       wordcloud.DefaultOptions(),
	}
}

func (s *summarizerService) AcquireInput(ctx context.Context, req *dto.InputRequest) (*dto.InputResponse, error) {
	res := &dto.InputResponse{}

	switch req.Mode {
	case constant.InputModePDF:
		if len(req.PDF) == 0 {
			return nil, ErrMissingFile
		}
		_, span := s.tracer.Start(ctx, "pdftext.Extract")
		extracted, err := pdftext.Extract(req.PDF)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return nil, fmt.Errorf("extract pdf: %w", err)
		}
		span.SetAttributes(attribute.Int("pdf.pages", extracted.PageCount))
		span.End()

		res.Text = extracted.Text
		res.PageCount = extracted.PageCount
	default:
		res.Text = req.Text
	}

	if res.Text != "" {
		res.WordCount = utils.WordCount(res.Text)
	}
	return res, nil
}

func (s *summarizerService) OnSummarizeClicked(ctx context.Context, sess *store.Session, req *dto.SummarizeRequest) (*store.Session, *dto.RenderInstruction, error) {
	input, err := s.AcquireInput(ctx, req.Input())
	if err != nil {
		return sess, nil, err
	}

	// empty input: no model call, nothing changes
	if input.Text == "" {
		s.publish(ctx, events.NewSummarySkipped(sess.ID))
		render := s.Render(sess)
		render.Skipped = true
		return sess, render, nil
	}

	opts := inference.SummarizeOptions{MinLength: req.MinLength, MaxLength: req.MaxLength}
	summarizer, err := s.registry.Summarizer(s.summarizationModel, opts)
	if err != nil {
		return sess, nil, err
	}

	ctx, span := s.tracer.Start(ctx, "inference.Summarize", trace.WithAttributes(
		attribute.String("model", s.summarizationModel),
		attribute.Int("min_length", opts.MinLength),
		attribute.Int("max_length", opts.MaxLength),
		attribute.Int("input.words", input.WordCount),
	))
	summary, err := summarizer.Summarize(ctx, input.Text)
	if err == nil && strings.TrimSpace(summary) == "" {
		err = fmt.Errorf("%w: empty summary", inference.ErrModelResponse)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		s.log.Error("SummarizerService", "summarization failed", map[string]interface{}{
			"session_id": sess.ID,
			"model":      s.summarizationModel,
			"error":      err.Error(),
		})
		return sess, nil, fmt.Errorf("summarize: %w", err)
	}
	span.End()

	next := sess.WithSummary(summary)
	render := s.Render(next)
	render.InputWordCount = input.WordCount

	s.log.Info("SummarizerService", "summary completed", map[string]interface{}{
		"session_id":    sess.ID,
		"input_words":   input.WordCount,
		"summary_words": render.Summary.WordCount,
	})
	s.publish(ctx, events.NewSummaryCompleted(sess.ID, s.summarizationModel, input.WordCount, render.Summary.WordCount))

	return next, render, nil
}

func (s *summarizerService) OnTranslateClicked(ctx context.Context, sess *store.Session) (*store.Session, *dto.RenderInstruction, error) {
	if !sess.HasSummary() {
		return sess, nil, ErrNoSummary
	}

	translator, err := s.registry.Translator(inference.TaskTranslationEnToUr, s.translationModel)
	if err != nil {
		return sess, nil, err
	}

	ctx, span := s.tracer.Start(ctx, "inference.Translate", trace.WithAttributes(
		attribute.String("model", s.translationModel),
	))
	translated, err := translator.Translate(ctx, sess.Summary)
	if err == nil && strings.TrimSpace(translated) == "" {
		err = fmt.Errorf("%w: empty translation", inference.ErrModelResponse)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		s.log.Error("SummarizerService", "translation failed", map[string]interface{}{
			"session_id": sess.ID,
			"model":      s.translationModel,
			"error":      err.Error(),
		})
		return sess, nil, fmt.Errorf("translate: %w", err)
	}
	span.End()

	next := sess.WithTranslation(translated)
	render := s.Render(next)

	s.publish(ctx, events.NewTranslationCompleted(sess.ID, s.translationModel, len(render.Translation.Bullets)))
	return next, render, nil
}

// Render derives the page content from the session fields alone.
func (s *summarizerService) Render(sess *store.Session) *dto.RenderInstruction {
	render := &dto.RenderInstruction{State: sess.State()}

	if sess.HasSummary() {
		sentences, err := utils.SplitSentences(sess.Summary)
		if err != nil {
			s.log.Warn("SummarizerService", "sentence tokenizer unavailable", map[string]interface{}{"error": err.Error()})
		}
		render.Summary = &dto.SummaryView{
			Text:         sess.Summary,
			Bullets:      utils.SplitBullets(sess.Summary),
			Sentences:    sentences,
			WordCount:    utils.WordCount(sess.Summary),
			FileName:     constant.SummaryFileName,
			DownloadURL:  constant.SummaryDownloadPath,
			WordCloudURL: constant.WordCloudPath,
		}
	}

	if sess.HasTranslation() {
		render.Translation = &dto.TranslationView{
			Text:        sess.TranslatedSummary,
			Bullets:     utils.SplitTranslationBullets(sess.TranslatedSummary),
			FileName:    constant.TranslationFileName,
			DownloadURL: constant.TranslationDownloadPath,
		}
	}

	return render
}

func (s *summarizerService) SummaryDownload(sess *store.Session) (*dto.Download, error) {
	if !sess.HasSummary() {
		return nil, ErrNothingToDownload
	}
	return &dto.Download{FileName: constant.SummaryFileName, Content: sess.Summary}, nil
}

func (s *summarizerService) TranslationDownload(sess *store.Session) (*dto.Download, error) {
	if !sess.HasTranslation() {
		return nil, ErrNothingToDownload
	}
	return &dto.Download{FileName: constant.TranslationFileName, Content: sess.TranslatedSummary}, nil
}

func (s *summarizerService) WordCloudPNG(sess *store.Session) ([]byte, error) {
	if !sess.HasSummary() {
		return nil, ErrNothingToDownload
	}
	var buf bytes.Buffer
	if err := wordcloud.RenderPNG(&buf, sess.Summary, s.cloudOptions); err != nil {
		return nil, fmt.Errorf("render word cloud: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *summarizerService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("SummarizerService", "failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
