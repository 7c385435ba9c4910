package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"text-summarizer-be/pkg/inference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSendsBoundsAndParsesOutput(t *testing.T) {
	var got pipelineRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/google-t5/t5-small", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`[{"summary_text":"A fox jumps."}]`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf_test", srv.URL+"/", 5*time.Second)
	s, err := p.NewSummarizer("google-t5/t5-small", inference.SummarizeOptions{MinLength: 5, MaxLength: 20})
	require.NoError(t, err)

	out, err := s.Summarize(context.Background(), "The quick brown fox. It jumps over the lazy dog.")
	require.NoError(t, err)

	assert.Equal(t, "A fox jumps.", out)
	assert.Equal(t, "The quick brown fox. It jumps over the lazy dog.", got.Inputs)
	assert.EqualValues(t, 5, got.Parameters["min_length"])
	assert.EqualValues(t, 20, got.Parameters["max_length"])
	assert.True(t, got.Options.WaitForModel)
}

func TestTranslateParsesOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Helsinki-NLP/opus-mt-en-ur", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[{"translation_text":"ایک لومڑی چھلانگ لگاتی ہے"}]`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("", srv.URL, 5*time.Second)
	tr, err := p.NewTranslator(inference.TaskTranslationEnToUr, "Helsinki-NLP/opus-mt-en-ur")
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), "A fox jumps.")
	require.NoError(t, err)
	assert.Equal(t, "ایک لومڑی چھلانگ لگاتی ہے", out)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`, inference.ErrModelUnavailable},
		{"bad request", http.StatusBadRequest, `{"error":"bad input"}`, inference.ErrModelResponse},
		{"garbage body", http.StatusOK, `not json`, inference.ErrModelResponse},
		{"empty list", http.StatusOK, `[]`, inference.ErrModelResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewHuggingFaceProvider("", srv.URL, 5*time.Second)
			s, err := p.NewSummarizer("m", inference.SummarizeOptions{MinLength: 10, MaxLength: 50})
			require.NoError(t, err)

			_, err = s.Summarize(context.Background(), "text")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	p := NewHuggingFaceProvider("", "http://127.0.0.1:1", time.Second)
	s, err := p.NewSummarizer("m", inference.SummarizeOptions{MinLength: 10, MaxLength: 50})
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "text")
	assert.ErrorIs(t, err, inference.ErrModelUnavailable)
}

func TestEmptyModelName(t *testing.T) {
	p := NewHuggingFaceProvider("", "", time.Second)
	_, err := p.NewSummarizer("", inference.SummarizeOptions{})
	assert.Error(t, err)
	_, err = p.NewTranslator(inference.TaskTranslationEnToUr, "")
	assert.Error(t, err)
}

func TestAnswerWithoutTextIsRejected(t *testing.T) {
	bodies := []string{
		`{"estimated_time": 12.5}`,
		`[{"summary_text":"","translation_text":""}]`,
		`[{"generated_text":"   "}]`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			p := NewHuggingFaceProvider("", srv.URL, 5*time.Second)

			s, err := p.NewSummarizer("google-t5/t5-small", inference.SummarizeOptions{MinLength: 10, MaxLength: 50})
			require.NoError(t, err)
			out, err := s.Summarize(context.Background(), "some text")
			assert.ErrorIs(t, err, inference.ErrModelResponse)
			assert.Empty(t, out)

			tr, err := p.NewTranslator(inference.TaskTranslationEnToUr, "Helsinki-NLP/opus-mt-en-ur")
			require.NoError(t, err)
			out, err = tr.Translate(context.Background(), "some text")
			assert.ErrorIs(t, err, inference.ErrModelResponse)
			assert.Empty(t, out)
		})
	}
}
