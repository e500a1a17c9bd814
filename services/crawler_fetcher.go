package services

import (
	"context"
	"net/http"

	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// CrawlerPageFetcher fetches the page through a colly collector, for
// environments where the plain client gets fingerprinted. It carries the
// same browser-like header set and, like the plain fetcher, makes exactly
// one request per run.
type CrawlerPageFetcher struct {
	settings shared.FetchSettings
}

// NewCrawlerPageFetcher creates a collector-backed fetcher.
func NewCrawlerPageFetcher(settings shared.FetchSettings) *CrawlerPageFetcher {
	settings.ValidateAndApplyDefaults()
	return &CrawlerPageFetcher{settings: settings}
}

// FetchPage visits the source page once. HTTP 403 maps to a blocked result;
// other collector errors fail the run.
func (f *CrawlerPageFetcher) FetchPage(ctx context.Context) (*models.FetchResult, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "CrawlerPageFetcher",
		"method":    "FetchPage",
		"url":       f.settings.SourceURL,
	})
	logger.Info("Fetching GMP source page with collector")

	// Single page fetch, so robots.txt handling matches the plain client
	c := colly.NewCollector(colly.IgnoreRobotsTxt())
	c.SetRequestTimeout(f.settings.HTTPTimeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", f.settings.UserAgent)
		r.Headers.Set("Accept", f.settings.Accept)
		r.Headers.Set("Accept-Language", f.settings.AcceptLanguage)
		r.Headers.Set("Referer", f.settings.Referer)
		r.Headers.Set("Connection", f.settings.Connection)
	})

	result := &models.FetchResult{}
	var visitErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.HTML = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		result.StatusCode = r.StatusCode
		visitErr = err
	})

	err := c.Visit(f.settings.SourceURL)

	if result.StatusCode == http.StatusForbidden {
		logger.WithField("status_code", result.StatusCode).Warn("Source returned 403 Forbidden, treating run as blocked")
		return &models.FetchResult{StatusCode: result.StatusCode, Blocked: true}, nil
	}

	if err != nil || visitErr != nil {
		cause := err
		if cause == nil {
			cause = visitErr
		}

		wrappedError := shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"CRAWLER_FETCH_FAILED",
			"Failed to fetch the GMP source page with collector",
			"CrawlerPageFetcher",
			"FetchPage",
			true,
			cause,
		)
		wrappedError.LogError()
		return nil, wrappedError
	}

	logger.WithFields(logrus.Fields{
		"status_code": result.StatusCode,
		"body_bytes":  len(result.HTML),
	}).Info("Fetched GMP source page")

	return result, nil
}
