package main

import (
	"context"
	"fmt"

	"github.com/xaenox/daily-digest/internal/calendar"
	"github.com/xaenox/daily-digest/internal/classifier"
	"github.com/xaenox/daily-digest/internal/conversation"
	"github.com/xaenox/daily-digest/internal/digest"
	"github.com/xaenox/daily-digest/internal/fixtures"
	"github.com/xaenox/daily-digest/internal/privacy"
	"github.com/xaenox/daily-digest/internal/summarizer"
	"github.com/xaenox/daily-digest/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Optional AI enrichment: only wired when an API key is present
	var sum summarizer.Summarizer
	if cfg.OpenAI.APIKey != "" {
		logger.Info("AI enrichment enabled", zap.String("model", cfg.OpenAI.Model))
		sum = summarizer.NewOpenAI(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("AI enrichment disabled, using heuristic summaries")
	}

	// Build the pipeline
	pipeline := digest.NewPipeline(
		privacy.NewRedactor(),
		conversation.NewGrouper(classifier.New(classifier.DefaultRules()), logger),
		calendar.NewAnalyzer(logger),
		digest.NewGenerator(),
		sum,
		logger,
	)

	// Sample data stands in for the live fetch layer; the fetch caps
	// still apply to it
	emailCount, meetingCount := 15, 4
	if emailCount > cfg.Digest.MaxEmails {
		emailCount = cfg.Digest.MaxEmails
	}
	if meetingCount > cfg.Digest.MaxEvents {
		meetingCount = cfg.Digest.MaxEvents
	}
	messages, events := fixtures.SampleData(emailCount, meetingCount)

	result, _, err := pipeline.Generate(context.Background(), messages, events, digest.Options{
		WorkingHoursStart: cfg.Digest.WorkingHoursStart,
		WorkingHoursEnd:   cfg.Digest.WorkingHoursEnd,
		PrivacyMode:       cfg.Digest.PrivacyMode,
		UserName:          cfg.Digest.UserName,
	})
	if err != nil {
		logger.Fatal("Failed to generate digest", zap.Error(err))
	}

	fmt.Println(digest.Render(result, digest.Format(cfg.Digest.Format)))
}
