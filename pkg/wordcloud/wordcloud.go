// Package wordcloud renders word-frequency clouds as raster images.
package wordcloud

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrNoWords = errors.New("wordcloud: no words to lay out")

type Options struct {
	Width       int
	Height      int
	Background  color.Color
	MaxWords    int
	MinFontSize float64
	MaxFontSize float64
	Padding     float64
}

// DefaultOptions matches the summary page: 800x400 on white.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      400,
		Background:  color.White,
		MaxWords:    200,
		MinFontSize: 10,
		MaxFontSize: 96,
		Padding:     2,
	}
}

type Word struct {
	Text  string
	Count int
}

type rect struct {
	x, y, w, h float64
}

func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w && o.x < r.x+r.w && r.y < o.y+o.h && o.y < r.y+r.h
}

var (
	fontOnce sync.Once
	baseFont *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		baseFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return baseFont, fontErr
}

// Frequencies counts lowercased words of at least two characters, skipping stopwords and pure numbers.
// The result is ordered by count, then alphabetically.
func Frequencies(text string) []Word {
	counts := map[string]int{}
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, tok := range tokens {
		tok = strings.Trim(tok, "'")
		tok = strings.TrimSuffix(tok, "'s")
		if len([]rune(tok)) < 2 || isNumber(tok) {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		counts[tok]++
	}

	words := make([]Word, 0, len(counts))
	for w, c := range counts {
		words = append(words, Word{Text: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Text < words[j].Text
	})
	return words
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Generate lays out the words of text, biggest first, on an Archimedean spiral from the centre.
// Words that cannot be placed even at the minimum font size are dropped.
func Generate(text string, opts Options) (image.Image, error) {
	words := Frequencies(text)
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if opts.MaxWords > 0 && len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}

	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("wordcloud: load font: %w", err)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	var (
		placed   []rect
		maxCount = float64(words[0].Count)
		cx       = float64(opts.Width) / 2
		cy       = float64(opts.Height) / 2
		aspect   = float64(opts.Height) / float64(opts.Width)
	)

	for i, w := range words {
		size := opts.MinFontSize + (opts.MaxFontSize-opts.MinFontSize)*float64(w.Count)/maxCount
		for size >= opts.MinFontSize {
			dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
			tw, th := dc.MeasureString(w.Text)

			if x, y, ok := findSpot(placed, tw, th, cx, cy, aspect, opts); ok {
				placed = append(placed, rect{x - tw/2 - opts.Padding, y - th/2 - opts.Padding, tw + 2*opts.Padding, th + 2*opts.Padding})
				dc.SetColor(paletteColor(i))
				dc.DrawStringAnchored(w.Text, x, y, 0.5, 0.5)
				break
			}
			size *= 0.8
		}
	}

	return dc.Image(), nil
}

func findSpot(placed []rect, tw, th, cx, cy, aspect float64, opts Options) (float64, float64, bool) {
	const step = 0.1
	maxRadius := math.Hypot(cx, cy)
	for t := 0.0; ; t += step {
		r := 2 * t
		if r > maxRadius {
			return 0, 0, false
		}
		x := cx + r*math.Cos(t)
		y := cy + r*aspect*math.Sin(t)

		candidate := rect{x - tw/2 - opts.Padding, y - th/2 - opts.Padding, tw + 2*opts.Padding, th + 2*opts.Padding}
		if candidate.x < 0 || candidate.y < 0 ||
			candidate.x+candidate.w > float64(opts.Width) || candidate.y+candidate.h > float64(opts.Height) {
			continue
		}
		free := true
		for _, p := range placed {
			if candidate.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return x, y, true
		}
	}
}

func paletteColor(i int) color.Color {
	hue := math.Mod(float64(i)*47, 360)
	return colorful.Hcl(hue, 0.55, 0.45).Clamped()
}

// RenderPNG generates the cloud and writes it as PNG.
func RenderPNG(w io.Writer, text string, opts Options) error {
	img, err := Generate(text, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}
