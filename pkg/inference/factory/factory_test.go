package factory

import (
	"testing"
	"time"

	"text-summarizer-be/pkg/inference/huggingface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackend(t *testing.T) {
	b, err := NewBackend("huggingface", "", "", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &huggingface.HuggingFaceProvider{}, b)

	_, err = NewBackend("onnx", "", "", time.Second)
	assert.Error(t, err)
}
