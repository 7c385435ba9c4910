package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"text-summarizer-be/pkg/inference"
)

const DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"

// HuggingFaceProvider talks to the HuggingFace Inference API. It implements inference.Backend.
type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Request payload for text2text pipelines
type pipelineRequest struct {
	Inputs     string                 `json:"inputs"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Options    pipelineOptions        `json:"options"`
}

type pipelineOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type pipelineOutput struct {
	SummaryText     string `json:"summary_text"`
	TranslationText string `json:"translation_text"`
	GeneratedText   string `json:"generated_text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHuggingFaceProvider(apiKey, baseURL string, timeout time.Duration) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HuggingFaceProvider) NewSummarizer(model string, opts inference.SummarizeOptions) (inference.Summarizer, error) {
	if model == "" {
		return nil, errors.New("summarization model name is empty")
	}
	return &summarizationPipeline{provider: p, model: model, opts: opts}, nil
}

func (p *HuggingFaceProvider) NewTranslator(task, model string) (inference.Translator, error) {
	if model == "" {
		return nil, errors.New("translation model name is empty")
	}
	return &translationPipeline{provider: p, task: task, model: model}, nil
}

type summarizationPipeline struct {
	provider *HuggingFaceProvider
	model    string
	opts     inference.SummarizeOptions
}

func (s *summarizationPipeline) Summarize(ctx context.Context, text string) (string, error) {
	out, err := s.provider.run(ctx, s.model, pipelineRequest{
		Inputs: text,
		Parameters: map[string]interface{}{
			"min_length": s.opts.MinLength,
			"max_length": s.opts.MaxLength,
		},
		Options: pipelineOptions{WaitForModel: true},
	})
	if err != nil {
		return "", err
	}
	// some text2text checkpoints only fill generated_text
	return pickText(out.SummaryText, out.GeneratedText)
}

type translationPipeline struct {
	provider *HuggingFaceProvider
	task     string
	model    string
}

func (t *translationPipeline) Translate(ctx context.Context, text string) (string, error) {
	out, err := t.provider.run(ctx, t.model, pipelineRequest{
		Inputs:  text,
		Options: pipelineOptions{WaitForModel: true},
	})
	if err != nil {
		return "", err
	}
	return pickText(out.TranslationText, out.GeneratedText)
}

// pickText returns the first field carrying text. A 200 answer without any text,
// such as {"estimated_time": 12.5}, is not a usable output.
func pickText(fields ...string) (string, error) {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: empty output", inference.ErrModelResponse)
}

func (p *HuggingFaceProvider) run(ctx context.Context, model string, reqBody pipelineRequest) (*pipelineOutput, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", inference.ErrModelResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		msg := string(bodyBytes)
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: huggingface api status %d: %s", inference.ErrModelUnavailable, resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("%w: huggingface api status %d: %s", inference.ErrModelResponse, resp.StatusCode, msg)
	}

	// pipelines answer with a list; a bare object is accepted too
	var outputs []pipelineOutput
	if err := json.Unmarshal(bodyBytes, &outputs); err != nil {
		var single pipelineOutput
		if err2 := json.Unmarshal(bodyBytes, &single); err2 != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", inference.ErrModelResponse, err)
		}
		outputs = []pipelineOutput{single}
	}

	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: empty output list", inference.ErrModelResponse)
	}
	return &outputs[0], nil
}
