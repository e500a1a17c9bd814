package shared

import (
	"time"

	"github.com/sirupsen/logrus"
)

// FetchSettings holds the request identity and timeouts shared by every page
// fetcher, so the plain client, the crawler and the headless browser all
// present themselves the same way to the source site.
type FetchSettings struct {
	SourceURL      string        `json:"source_url"`
	UserAgent      string        `json:"user_agent"`
	Accept         string        `json:"accept"`
	AcceptLanguage string        `json:"accept_language"`
	Referer        string        `json:"referer"`
	Connection     string        `json:"connection"`
	HTTPTimeout    time.Duration `json:"http_timeout"`
	BrowserTimeout time.Duration `json:"browser_timeout"`
}

// NewFetchSettings returns the default settings for the IPO Central
// discussion page.
func NewFetchSettings() FetchSettings {
	return FetchSettings{
		SourceURL:      "https://ipocentral.in/ipo-discussion/",
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0 Safari/537.36",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		AcceptLanguage: "en-US,en;q=0.9",
		Referer:        "https://ipocentral.in/",
		Connection:     "keep-alive",
		HTTPTimeout:    20 * time.Second,
		BrowserTimeout: 30 * time.Second,
	}
}

// ValidateAndApplyDefaults validates settings and applies defaults for missing values
func (s *FetchSettings) ValidateAndApplyDefaults() {
	logger := logrus.WithField("component", "FetchSettings")
	defaults := NewFetchSettings()

	if s.SourceURL == "" {
		s.SourceURL = defaults.SourceURL
		logger.Debug("Applied default SourceURL")
	}

	if s.UserAgent == "" {
		s.UserAgent = defaults.UserAgent
		logger.Debug("Applied default UserAgent")
	}

	if s.Accept == "" {
		s.Accept = defaults.Accept
		logger.Debug("Applied default Accept")
	}

	if s.AcceptLanguage == "" {
		s.AcceptLanguage = defaults.AcceptLanguage
		logger.Debug("Applied default AcceptLanguage")
	}

	if s.Referer == "" {
		s.Referer = defaults.Referer
		logger.Debug("Applied default Referer")
	}

	if s.Connection == "" {
		s.Connection = defaults.Connection
		logger.Debug("Applied default Connection")
	}

	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = defaults.HTTPTimeout
		logger.Debug("Applied default HTTPTimeout")
	}

	if s.BrowserTimeout <= 0 {
		s.BrowserTimeout = defaults.BrowserTimeout
		logger.Debug("Applied default BrowserTimeout")
	}
}
