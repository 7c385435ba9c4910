package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"text-summarizer-be/internal/config"
	"text-summarizer-be/internal/constant"
	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/inference/factory"
	"text-summarizer-be/pkg/store"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	minLength := flag.Int("min", 0, "minimum summary length (10-100)")
	maxLength := flag.Int("max", 0, "maximum summary length (50-500)")
	translate := flag.Bool("translate", false, "also translate the summary to Urdu")
	outDir := flag.String("out", "", "directory for summary.txt, summary_urdu.txt and wordcloud.png")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: summarize [flags] <file.txt|file.pdf>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *minLength == 0 {
		*minLength = cfg.Summary.MinLengthDefault
	}
	if *maxLength == 0 {
		*maxLength = cfg.Summary.MaxLengthDefault
	}

	registry, err := factory.NewRegistry(cfg.Ai.Provider, cfg.Ai.BaseURL, cfg.Ai.ApiKey, cfg.Ai.RequestTimeout)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	svc := service.NewSummarizerService(registry, cfg.Ai.SummarizationModel, cfg.Ai.TranslationModel, nil, logger.NewNopLogger())

	req, err := buildRequest(flag.Arg(0), *minLength, *maxLength)
	if err == nil {
		err = serverutils.ValidateRequest(req)
	}
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sess := store.NewSession(uuid.NewString())

	color.Cyan("📝 %s", constant.PageTitle)
	color.Yellow("\nSummarizing %s (min %d, max %d) with %s", flag.Arg(0), req.MinLength, req.MaxLength, cfg.Ai.SummarizationModel)

	sess, render, err := svc.OnSummarizeClicked(ctx, sess, req)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if render.Skipped {
		color.Red("No text found in %s", flag.Arg(0))
		os.Exit(1)
	}

	color.Green("Input word count: %d", render.InputWordCount)
	for _, bullet := range render.Summary.Bullets {
		fmt.Printf("  • %s\n", bullet)
	}
	color.Green("Summary word count: %d", render.Summary.WordCount)

	if *translate {
		color.Yellow("\nTranslating with %s", cfg.Ai.TranslationModel)
		sess, render, err = svc.OnTranslateClicked(ctx, sess)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		for _, bullet := range render.Translation.Bullets {
			fmt.Printf("  • %s\n", bullet)
		}
	}

	if *outDir != "" {
		if err := writeOutputs(svc, sess, *outDir); err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Cyan("\nFiles written to %s", *outDir)
	}
}

func buildRequest(path string, minLength, maxLength int) (*dto.SummarizeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	req := &dto.SummarizeRequest{MinLength: minLength, MaxLength: maxLength}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		req.Mode = constant.InputModePDF
		req.PDF = data
	} else {
		req.Mode = constant.InputModeText
		req.Text = string(data)
	}
	return req, nil
}

func writeOutputs(svc service.ISummarizerService, sess *store.Session, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	summary, err := svc.SummaryDownload(sess)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, summary.FileName), []byte(summary.Content), 0o644); err != nil {
		return err
	}

	if translation, err := svc.TranslationDownload(sess); err == nil {
		if err := os.WriteFile(filepath.Join(dir, translation.FileName), []byte(translation.Content), 0o644); err != nil {
			return err
		}
	}

	cloud, err := svc.WordCloudPNG(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "wordcloud.png"), cloud, 0o644)
}
