package services

import (
	"context"
	"net/http"

	"github.com/chromedp/chromedp"
	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"github.com/sirupsen/logrus"
)

// BrowserPageFetcher drives a headless Chrome session for pages that only
// materialize their table through JavaScript. Status codes are not
// observable on this path, so a block surfaces as a navigation failure
// instead of the 403 notice.
type BrowserPageFetcher struct {
	settings shared.FetchSettings
}

// NewBrowserPageFetcher creates a headless browser fetcher.
func NewBrowserPageFetcher(settings shared.FetchSettings) *BrowserPageFetcher {
	settings.ValidateAndApplyDefaults()
	return &BrowserPageFetcher{settings: settings}
}

// FetchPage renders the source page in headless Chrome and returns the
// resulting document HTML.
func (f *BrowserPageFetcher) FetchPage(ctx context.Context) (*models.FetchResult, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "BrowserPageFetcher",
		"method":    "FetchPage",
		"url":       f.settings.SourceURL,
	})
	logger.Info("Fetching GMP source page with headless browser")

	// Configure Chrome options for headless scraping
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(f.settings.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, f.settings.BrowserTimeout)
	defer cancelTimeout()

	var pageHTML string
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1920, 1080),
		chromedp.Navigate(f.settings.SourceURL),
		chromedp.WaitVisible("tr", chromedp.ByQuery),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
	)
	if err != nil {
		wrappedError := shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"BROWSER_FETCH_FAILED",
			"Failed to fetch the GMP source page with headless browser",
			"BrowserPageFetcher",
			"FetchPage",
			true,
			err,
		)
		wrappedError.LogError()
		return nil, wrappedError
	}

	logger.WithField("body_bytes", len(pageHTML)).Info("Fetched GMP source page")

	return &models.FetchResult{
		HTML:       pageHTML,
		StatusCode: http.StatusOK,
	}, nil
}
