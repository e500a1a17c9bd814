//go:build ignore

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fenilmodi00/gmp-mailer/config"
	"github.com/fenilmodi00/gmp-mailer/services"
	"github.com/fenilmodi00/gmp-mailer/shared"
)

func main() {
	fmt.Printf("🏥 GMP Mailer Preflight Check - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println(strings.Repeat("=", 50))

	// Quick tests
	healthScore := 0
	totalTests := 3

	cfg := config.LoadConfig()

	settings := shared.NewFetchSettings()
	settings.SourceURL = cfg.SourceURL
	settings.HTTPTimeout = cfg.GetHTTPTimeout()
	settings.ValidateAndApplyDefaults()

	// Test 1: Source page
	fmt.Print("📡 Source page: ")
	fetcher := services.NewHTTPPageFetcher(settings)
	defer fetcher.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), settings.HTTPTimeout)
	defer cancel()

	var pageHTML string
	if result, err := fetcher.FetchPage(ctx); err != nil {
		fmt.Printf("❌ FAILED (%v)\n", err)
	} else if result.Blocked {
		fmt.Printf("⚠️  BLOCKED (HTTP %d)\n", result.StatusCode)
	} else {
		fmt.Printf("✅ OK (%d bytes)\n", len(result.HTML))
		pageHTML = result.HTML
		healthScore++
	}

	// Test 2: Table data
	fmt.Print("📊 Table data: ")
	if pageHTML == "" {
		fmt.Println("❌ SKIPPED (no page)")
	} else if document, err := services.ParseDocument(pageHTML); err != nil {
		fmt.Printf("❌ FAILED (%v)\n", err)
	} else {
		rows := services.DocumentRows(document)
		sections, stats := services.ParseGMPRows(rows)
		if len(sections) == 0 {
			fmt.Printf("❌ FAILED (no sections in %d rows)\n", stats.TotalRows)
		} else {
			fmt.Printf("✅ OK (%d sections, %d records)\n", len(sections), stats.Records)
			healthScore++
		}
	}

	// Test 3: Email settings
	fmt.Print("📧 Email settings: ")
	if cfg.DeliveryMode != config.DeliveryModeEmail {
		fmt.Println("✅ OK (console delivery)")
		healthScore++
	} else if cfg.SenderEmail == "" || cfg.SenderPassword == "" || len(cfg.Recipients) == 0 {
		fmt.Println("❌ FAILED (missing SENDER_EMAIL, SENDER_PASSWORD or RECIPIENT_EMAILS)")
	} else {
		fmt.Printf("✅ OK (%d recipients via %s:%d)\n", len(cfg.Recipients), cfg.SMTPHost, cfg.SMTPPort)
		healthScore++
	}

	// Overall health
	fmt.Println(strings.Repeat("-", 50))
	healthPercent := float64(healthScore) / float64(totalTests) * 100

	if healthScore == totalTests {
		fmt.Printf("🎉 SYSTEM HEALTHY: %d/%d tests passed (%.0f%%)\n", healthScore, totalTests, healthPercent)
	} else if healthScore >= totalTests/2 {
		fmt.Printf("⚠️  SYSTEM DEGRADED: %d/%d tests passed (%.0f%%)\n", healthScore, totalTests, healthPercent)
	} else {
		fmt.Printf("❌ SYSTEM UNHEALTHY: %d/%d tests passed (%.0f%%)\n", healthScore, totalTests, healthPercent)
	}

	fmt.Printf("⏰ Check completed at: %s\n", time.Now().Format("15:04:05"))
}
