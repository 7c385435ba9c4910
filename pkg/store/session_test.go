package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStateTransitions(t *testing.T) {
	s := NewSession("abc")
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.HasSummary())

	summarized := s.WithSummary("A short summary.")
	assert.Equal(t, StateSummarized, summarized.State())
	// receiver is untouched
	assert.Equal(t, StateIdle, s.State())

	translated := summarized.WithTranslation("ترجمہ")
	assert.Equal(t, StateTranslated, translated.State())

	resummarized := translated.WithSummary("Another summary.")
	assert.Equal(t, StateSummarized, resummarized.State())
	assert.Empty(t, resummarized.TranslatedSummary)

	resummarized.Reset()
	assert.Equal(t, StateIdle, resummarized.State())
	assert.Equal(t, "abc", resummarized.ID)
}
