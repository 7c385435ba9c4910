// Package pdftext extracts plain text from uploaded PDF documents.
//
// It uses ledongthuc/pdf, which is pure Go and reads from an io.ReaderAt,
// so uploads never touch the disk.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const ContentType = "application/pdf"

var (
	ErrEmptyDocument = errors.New("empty pdf document")
	ErrMalformedPDF  = errors.New("malformed pdf document")
)

// Result holds the concatenated text of all pages.
type Result struct {
	Text      string
	PageCount int
}

// Extract reads every page in increasing page order and concatenates the page text with no separator.
// Scanned documents without a text layer produce an empty Text and no error.
func Extract(data []byte) (res *Result, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	// the library panics on some truncated or unusual inputs instead of returning an error
	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	pageCount := r.NumPage()
	var text strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrMalformedPDF, i, err)
		}
		text.WriteString(pageText)
	}

	return &Result{
		Text:      text.String(),
		PageCount: pageCount,
	}, nil
}
