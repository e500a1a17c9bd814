package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Fetch modes select the transport used to retrieve the source page.
const (
	FetchModeHTTP    = "http"
	FetchModeCrawler = "crawler"
	FetchModeBrowser = "browser"
)

// Report formats select the renderer for the delivered summary.
const (
	ReportFormatText = "text"
	ReportFormatHTML = "html"
)

// Delivery modes select where the rendered report goes.
const (
	DeliveryModeEmail   = "email"
	DeliveryModeConsole = "console"
)

// Config holds all runtime configuration for the report mailer
type Config struct {
	SourceURL             string
	FetchMode             string
	ReportFormat          string
	DeliveryMode          string
	HTTPTimeoutSeconds    int
	BrowserTimeoutSeconds int
	SMTPHost              string
	SMTPPort              int
	SenderEmail           string
	SenderPassword        string
	Recipients            []string
	LogLevel              string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		SourceURL:             getEnv("SOURCE_URL", "https://ipocentral.in/ipo-discussion/"),
		FetchMode:             getEnv("FETCH_MODE", FetchModeHTTP),
		ReportFormat:          getEnv("REPORT_FORMAT", ReportFormatText),
		DeliveryMode:          getEnv("DELIVERY_MODE", DeliveryModeEmail),
		HTTPTimeoutSeconds:    getEnvInt("HTTP_TIMEOUT_SECONDS", 20),
		BrowserTimeoutSeconds: getEnvInt("BROWSER_TIMEOUT_SECONDS", 30),
		SMTPHost:              getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:              getEnvInt("SMTP_PORT", 587),
		SenderEmail:           strings.TrimSpace(getEnv("SENDER_EMAIL", "")),
		SenderPassword:        strings.TrimSpace(getEnv("SENDER_PASSWORD", "")),
		Recipients:            SplitRecipients(getEnv("RECIPIENT_EMAILS", "")),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}
}

// SplitRecipients parses a comma separated recipient list, trimming entries
// and dropping empty ones.
func SplitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	recipients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

// PromptMissingCredentials fills in sender credentials and recipients from
// interactive input when the environment did not provide them. Email delivery
// needs all three; console delivery needs none.
func (c *Config) PromptMissingCredentials(in io.Reader, out io.Writer) error {
	if c.DeliveryMode != DeliveryModeEmail {
		return nil
	}

	reader := bufio.NewReader(in)

	if c.SenderEmail == "" {
		value, err := promptLine(reader, out, "Sender email: ")
		if err != nil {
			return err
		}
		c.SenderEmail = value
	}

	if c.SenderPassword == "" {
		value, err := promptLine(reader, out, "Email password/App Password: ")
		if err != nil {
			return err
		}
		c.SenderPassword = value
	}

	if len(c.Recipients) == 0 {
		value, err := promptLine(reader, out, "Recipient emails (comma separated): ")
		if err != nil {
			return err
		}
		c.Recipients = SplitRecipients(value)
	}

	return nil
}

// promptLine writes the prompt and reads one trimmed line. A final line
// without a trailing newline is still accepted.
func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input for %q: %w", strings.TrimSpace(prompt), err)
	}

	return line, nil
}

// Validate checks mode selections and email settings before a run starts.
func (c *Config) Validate() error {
	switch c.FetchMode {
	case FetchModeHTTP, FetchModeCrawler, FetchModeBrowser:
	default:
		return fmt.Errorf("unsupported FETCH_MODE %q", c.FetchMode)
	}

	switch c.ReportFormat {
	case ReportFormatText, ReportFormatHTML:
	default:
		return fmt.Errorf("unsupported REPORT_FORMAT %q", c.ReportFormat)
	}

	switch c.DeliveryMode {
	case DeliveryModeEmail, DeliveryModeConsole:
	default:
		return fmt.Errorf("unsupported DELIVERY_MODE %q", c.DeliveryMode)
	}

	if c.SourceURL == "" {
		return fmt.Errorf("SOURCE_URL must not be empty")
	}

	if c.DeliveryMode == DeliveryModeEmail {
		if c.SenderEmail == "" {
			return fmt.Errorf("SENDER_EMAIL is required for email delivery")
		}
		if c.SenderPassword == "" {
			return fmt.Errorf("SENDER_PASSWORD is required for email delivery")
		}
		if len(c.Recipients) == 0 {
			return fmt.Errorf("RECIPIENT_EMAILS must list at least one recipient")
		}
	}

	return nil
}

// GetHTTPTimeout returns the page fetch timeout as a duration
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// GetBrowserTimeout returns the headless browser timeout as a duration
func (c *Config) GetBrowserTimeout() time.Duration {
	if c.BrowserTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.BrowserTimeoutSeconds) * time.Second
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an integer environment variable with fallback
func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %d", key, raw, fallback)
		return fallback
	}

	return value
}
