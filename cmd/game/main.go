package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/napele/internal/auth"
	"github.com/tatianab/napele/internal/config"
	"github.com/tatianab/napele/internal/i18n"
	"github.com/tatianab/napele/internal/logging"
	"github.com/tatianab/napele/internal/mail"
	"github.com/tatianab/napele/internal/models"
	"github.com/tatianab/napele/internal/narrator"
	"github.com/tatianab/napele/internal/storage/sqlite"
	"github.com/tatianab/napele/internal/story"
	"github.com/tatianab/napele/internal/tui"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	models.SaveDir = cfg.SaveDir

	// The terminal belongs to the interface, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, logFile)

	graph, err := story.Elias()
	if err != nil {
		return fmt.Errorf("loading story: %w", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening account store: %w", err)
	}
	defer store.Close()

	sender := mail.NewSender(mail.Options{
		Server:   cfg.SMTP.Server,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.Sender,
		Password: cfg.SMTP.Password,
		ValidFor: cfg.CodeTTL,
	})

	accounts := auth.NewService(store, sender, auth.Options{
		CodeTTL:          cfg.CodeTTL,
		MaxLoginAttempts: cfg.MaxLoginAttempts,
		EmailDomains:     cfg.EmailDomains,
		Logger:           logger.With("component", "auth"),
	})

	opts := tui.Options{
		Accounts: accounts,
		Story:    graph,
		StoryID:  story.EliasID,
		Logger:   logger.With("component", "tui"),
		Language: i18n.Resolve(cfg.Language),
	}

	if cfg.GeminiAPIKey != "" {
		n, err := narrator.NewNarrator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("personal reflections disabled", "error", err)
		} else {
			defer n.Close()
			opts.Narrator = n
		}
	}

	logger.Info("starting", "db", cfg.DBPath, "saves", cfg.SaveDir, "language", opts.Language.String())
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
