package utils

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

const (
	// BulletDelimiter approximates sentence ends in a summary.
	BulletDelimiter = ". "
	// TranslationDelimiter separates clauses in a translated summary.
	TranslationDelimiter = "-"
)

// SplitBullets splits a summary on the literal ". ".
// This is a heuristic: abbreviations ("e.g. "), decimals followed by a space and summaries without
// a trailing period all produce wrong fragments. Every fragment is kept, including a trailing empty one,
// so strings.Join(SplitBullets(s), ". ") == s.
func SplitBullets(summary string) []string {
	return strings.Split(summary, BulletDelimiter)
}

// SplitTranslationBullets splits a translation on "-" and drops blank fragments.
// Hyphenated words are broken apart too. The result always holds at least one bullet.
func SplitTranslationBullets(translated string) []string {
	parts := strings.Split(translated, TranslationDelimiter)
	bullets := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		bullets = append(bullets, p)
	}
	if len(bullets) == 0 {
		return []string{strings.TrimSpace(translated)}
	}
	return bullets
}

// WordCount counts tokens separated by a single space. Consecutive spaces and newlines
// are not collapsed, so the result is approximate for messy input.
func WordCount(text string) int {
	return len(strings.Split(text, " "))
}

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

// SplitSentences returns sentence boundaries from the punkt tokenizer trained on English.
// Unlike SplitBullets it understands common abbreviations and decimals.
func SplitSentences(text string) ([]string, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	if tokenizerErr != nil {
		return nil, tokenizerErr
	}

	var out []string
	for _, s := range tokenizer.Tokenize(text) {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out, nil
}
