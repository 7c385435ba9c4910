package factory

import (
	"fmt"
	"time"

	"text-summarizer-be/pkg/inference"
	"text-summarizer-be/pkg/inference/huggingface"
)

func NewBackend(providerType, baseURL, apiKey string, timeout time.Duration) (inference.Backend, error) {
	switch providerType {
	case "huggingface", "":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported inference provider: %s", providerType)
	}
}

// NewRegistry wires a backend into a pipeline registry.
func NewRegistry(providerType, baseURL, apiKey string, timeout time.Duration) (*inference.Registry, error) {
	backend, err := NewBackend(providerType, baseURL, apiKey, timeout)
	if err != nil {
		return nil, err
	}
	return inference.NewRegistry(backend), nil
}
