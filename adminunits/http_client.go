package adminunits

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-codelists/internal/upstream"
)

// DefaultTimeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

const (
	countyFields        = "fylkesnummer,fylkesnavn"
	communeFields       = "kommunenummer,kommunenavnNorsk"
	countyCommuneFields = "fylkesnummer,fylkesnavn,kommuner.kommunenummer,kommuner.kommunenavnNorsk"
)

// HTTPClient talks to the kommuneinfo REST API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
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

// WithLogger sets the logger for request events.
func WithLogger(logger *slog.Logger) HTTPClientOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient creates a client. An empty BaseAPIURL uses DefaultBaseAPIURL.
func NewHTTPClient(settings Settings, opts ...HTTPClientOption) *HTTPClient {
	base := settings.BaseAPIURL
	if base == "" {
		base = DefaultBaseAPIURL
	}

	c := &HTTPClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(base, "/") + "/",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCounties implements Client.
func (c *HTTPClient) GetCounties(ctx context.Context) ([]County, error) {
	counties := []County{}
	if err := c.get(ctx, "fylker", countyFields, &counties); err != nil {
		return nil, err
	}
	return counties, nil
}

// GetCommunes implements Client.
func (c *HTTPClient) GetCommunes(ctx context.Context) ([]Commune, error) {
	communes := []Commune{}
	if err := c.get(ctx, "kommuner", communeFields, &communes); err != nil {
		return nil, err
	}
	return communes, nil
}

// GetCountyCommunes implements Client. An empty body yields no communes.
func (c *HTTPClient) GetCountyCommunes(ctx context.Context, countyNumber string) ([]Commune, error) {
	var county County
	if err := c.get(ctx, "fylker/"+url.PathEscape(countyNumber), countyCommuneFields, &county); err != nil {
		return nil, err
	}
	if county.Communes == nil {
		return []Commune{}, nil
	}
	return county.Communes, nil
}

func (c *HTTPClient) get(ctx context.Context, path, fields string, dest any) error {
	requestURL := c.baseURL + path + "?filtrer=" + fields
	c.logger.DebugContext(ctx, "fetching administrative units", "url", requestURL)

	_, err := upstream.GetJSON(ctx, c.httpClient, requestURL, dest)
	return err
}

var _ Client = (*HTTPClient)(nil)
