package store

import "time"

// Session represents the per-user summarizer state kept between interactions
type Session struct {
	ID                string    `json:"id"`
	Summary           string    `json:"summary"`
	TranslatedSummary string    `json:"translated_summary"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	StateIdle       = "IDLE"
	StateSummarized = "SUMMARIZED"
	StateTranslated = "TRANSLATED"
)

// NewSession returns an empty session. Both text fields start empty.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) HasSummary() bool {
	return s.Summary != ""
}

func (s *Session) HasTranslation() bool {
	return s.TranslatedSummary != ""
}

// State is derived from the stored fields only.
func (s *Session) State() string {
	switch {
	case s.HasSummary() && s.HasTranslation():
		return StateTranslated
	case s.HasSummary():
		return StateSummarized
	default:
		return StateIdle
	}
}

// WithSummary returns a copy holding the new summary. The previous translation is dropped
// because it belonged to the old summary.
func (s *Session) WithSummary(summary string) *Session {
	next := *s
	next.Summary = summary
	next.TranslatedSummary = ""
	next.UpdatedAt = time.Now()
	return &next
}

// WithTranslation returns a copy holding the new translation.
func (s *Session) WithTranslation(translated string) *Session {
	next := *s
	next.TranslatedSummary = translated
	next.UpdatedAt = time.Now()
	return &next
}

// Reset clears both text fields, keeping the session identity.
func (s *Session) Reset() {
	s.Summary = ""
	s.TranslatedSummary = ""
	s.UpdatedAt = time.Now()
}
