package ssb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-codelists/internal/upstream"
)

// DefaultTimeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// HTTPClient talks to the Klass REST API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
	logger     *slog.Logger
}

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithClientClock sets the clock used to resolve a zero date.
func WithClientClock(now func() time.Time) HTTPClientOption {
	return func(c *HTTPClient) {
		if now != nil {
			c.now = now
		}
	}
}

// WithClientLogger sets the logger for request events.
func WithClientLogger(logger *slog.Logger) HTTPClientOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient creates a Klass client. An empty BaseAPIURL uses DefaultBaseAPIURL.
func NewHTTPClient(settings Settings, opts ...HTTPClientOption) *HTTPClient {
	base := settings.BaseAPIURL
	if base == "" {
		base = DefaultBaseAPIURL
	}

	c := &HTTPClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(base, "/") + "/",
		now:        time.Now,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetClassificationCodes implements Client.
//
// Requests go to {id}/codesAt, or to {id}/variantAt when variant is set.
// The query always has language and date, plus selectLevel and variantName
// when those are non-empty.
func (c *HTTPClient) GetClassificationCodes(ctx context.Context, classificationID int, language string, atDate time.Time, level, variant string) (*ClassificationCodes, error) {
	requestURL := c.requestURL(classificationID, NormalizeLanguage(language), NormalizeDate(atDate, c.now), level, variant)
	c.logger.DebugContext(ctx, "fetching classification codes", "url", requestURL)

	codes := &ClassificationCodes{}
	if _, err := upstream.GetJSON(ctx, c.httpClient, requestURL, codes); err != nil {
		return nil, err
	}
	if codes.Codes == nil {
		codes.Codes = []ClassificationCode{}
	}
	return codes, nil
}

func (c *HTTPClient) requestURL(classificationID int, language string, date time.Time, level, variant string) string {
	endpoint := "codesAt"
	if variant != "" {
		endpoint = "variantAt"
	}

	query := url.Values{}
	query.Set("language", language)
	query.Set("date", date.Format(time.DateOnly))
	if level != "" {
		query.Set("selectLevel", level)
	}
	if variant != "" {
		query.Set("variantName", variant)
	}

	return fmt.Sprintf("%s%d/%s?%s", c.baseURL, classificationID, endpoint, query.Encode())
}

var _ Client = (*HTTPClient)(nil)
