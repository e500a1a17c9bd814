package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"github.com/sirupsen/logrus"
)

// PageFetcher retrieves the raw HTML of the GMP listing page.
type PageFetcher interface {
	FetchPage(ctx context.Context) (*models.FetchResult, error)
}

// HTTPPageFetcher is the default fetcher: one plain GET with browser-like
// headers and no retries.
type HTTPPageFetcher struct {
	settings          shared.FetchSettings
	httpClient        *http.Client
	httpClientFactory *shared.HTTPClientFactory
}

// NewHTTPPageFetcher creates a fetcher backed by a pooled HTTP client.
func NewHTTPPageFetcher(settings shared.FetchSettings) *HTTPPageFetcher {
	settings.ValidateAndApplyDefaults()

	factory := shared.NewHTTPClientFactory(settings.HTTPTimeout)
	return &HTTPPageFetcher{
		settings:          settings,
		httpClient:        factory.CreateOptimizedHTTPClient(settings.HTTPTimeout),
		httpClientFactory: factory,
	}
}

// FetchPage performs the single GET against the source page. HTTP 403 maps
// to a blocked result rather than an error; any other non-2xx status fails
// the run.
func (f *HTTPPageFetcher) FetchPage(ctx context.Context) (*models.FetchResult, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "HTTPPageFetcher",
		"method":    "FetchPage",
		"url":       f.settings.SourceURL,
	})
	logger.Info("Fetching GMP source page")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, f.settings.SourceURL, nil)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryConfiguration, "REQUEST_BUILD_FAILED", "HTTPPageFetcher", "FetchPage", false)
	}
	shared.SetBrowserLikeHeaders(request, f.settings)

	response, err := shared.ExecuteHTTPRequest(f.httpClient, request)
	if err != nil {
		category := shared.ErrorCategoryNetwork
		code := "FETCH_REQUEST_FAILED"

		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			category = shared.ErrorCategoryTimeout
			code = "FETCH_TIMEOUT"
		}

		wrappedError := shared.NewServiceError(
			category,
			code,
			"Failed to fetch the GMP source page",
			"HTTPPageFetcher",
			"FetchPage",
			true,
			err,
		)
		wrappedError.LogError()
		return nil, wrappedError
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusForbidden {
		logger.WithField("status_code", response.StatusCode).Warn("Source returned 403 Forbidden, treating run as blocked")
		return &models.FetchResult{StatusCode: response.StatusCode, Blocked: true}, nil
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		wrappedError := shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"FETCH_BAD_STATUS",
			fmt.Sprintf("Source returned HTTP %d: %s", response.StatusCode, http.StatusText(response.StatusCode)),
			"HTTPPageFetcher",
			"FetchPage",
			true,
			nil,
		)
		wrappedError.LogError()
		return nil, wrappedError
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "FETCH_READ_FAILED", "HTTPPageFetcher", "FetchPage", true)
	}

	logger.WithFields(logrus.Fields{
		"status_code": response.StatusCode,
		"body_bytes":  len(body),
	}).Info("Fetched GMP source page")

	return &models.FetchResult{
		HTML:       string(body),
		StatusCode: response.StatusCode,
	}, nil
}

// Cleanup releases pooled HTTP connections.
func (f *HTTPPageFetcher) Cleanup() {
	f.httpClientFactory.CleanupHTTPClient(f.httpClient)
}
