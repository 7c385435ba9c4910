package inference

import (
	"context"
	"errors"
)

const (
	TaskSummarization     = "summarization"
	TaskTranslationEnToUr = "translation_en_to_ur"
)

var (
	// ErrModelUnavailable is returned when the model backend cannot be reached or is still loading.
	ErrModelUnavailable = errors.New("model backend unavailable")
	// ErrModelResponse is returned when the backend answers with something we cannot use.
	ErrModelResponse = errors.New("invalid model response")
)

// SummarizeOptions are fixed when a summarization pipeline is built.
type SummarizeOptions struct {
	MinLength int
	MaxLength int
}

// Summarizer maps input text to one summary string.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator maps source-language text to target-language text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Backend builds pipelines. Building may be expensive, so callers go through a Registry.
type Backend interface {
	NewSummarizer(model string, opts SummarizeOptions) (Summarizer, error)
	NewTranslator(task, model string) (Translator, error)
}
