package main

import (
	"context"
	"log"
	"os"

	"github.com/fenilmodi00/gmp-mailer/config"
	"github.com/fenilmodi00/gmp-mailer/jobs"
	"github.com/fenilmodi00/gmp-mailer/services"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	// Configure logging before anything chatty runs
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Printf("Invalid LOG_LEVEL %q, defaulting to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// Collect credentials interactively when the environment left gaps
	if err := cfg.PromptMissingCredentials(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Failed to read credentials: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Fetch settings shared by all transports
	settings := shared.NewFetchSettings()
	settings.SourceURL = cfg.SourceURL
	settings.HTTPTimeout = cfg.GetHTTPTimeout()
	settings.BrowserTimeout = cfg.GetBrowserTimeout()
	settings.ValidateAndApplyDefaults()

	// Pick the fetch transport
	var fetcher services.PageFetcher
	switch cfg.FetchMode {
	case config.FetchModeCrawler:
		fetcher = services.NewCrawlerPageFetcher(settings)
	case config.FetchModeBrowser:
		fetcher = services.NewBrowserPageFetcher(settings)
	default:
		httpFetcher := services.NewHTTPPageFetcher(settings)
		defer httpFetcher.Cleanup()
		fetcher = httpFetcher
	}

	// Pick the report format
	var renderer services.ReportRenderer
	if cfg.ReportFormat == config.ReportFormatHTML {
		renderer = services.NewHTMLRenderer()
	} else {
		renderer = services.NewTextRenderer()
	}

	// Pick the delivery target
	var delivery services.ReportDelivery
	if cfg.DeliveryMode == config.DeliveryModeConsole {
		delivery = services.NewConsoleDelivery()
	} else {
		delivery = services.NewEmailDelivery(services.EmailSettings{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			SenderEmail: cfg.SenderEmail,
			SenderPass:  cfg.SenderPassword,
			Recipients:  cfg.Recipients,
		})
	}

	log.Println("GMP report mailer initialized:")
	log.Printf("  - Source: %s (fetch mode: %s)", cfg.SourceURL, cfg.FetchMode)
	log.Printf("  - Report format: %s", cfg.ReportFormat)
	log.Printf("  - Delivery mode: %s", cfg.DeliveryMode)

	// Run the pipeline once and exit
	job := jobs.NewReportJob(cfg.SourceURL, fetcher, renderer, delivery)
	if _, err := job.Run(context.Background()); err != nil {
		log.Fatalf("Report run failed: %v", err)
	}
}
