package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sonh/qs"
	"golang.org/x/text/language"

	"ssmt/internal/services"
)

const defaultHTTPTimeout = 30 * time.Second

// Config captures the runtime settings required to talk to the catalog API.
type Config struct {
	BaseURL        string
	LauncherID     string
	Language       string
	TimeoutSeconds int
}

// query is encoded into the catalog request URL.
type query struct {
	LauncherID string `qs:"launcher_id"`
	Language   string `qs:"language"`
	GameID     string `qs:"game_id"`
}

// Client fetches background metadata and media from the remote catalog.
type Client struct {
	cfg        Config
	httpClient *http.Client
	encoder    *qs.Encoder
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a catalog client. The language must be a well-formed
// BCP 47 tag.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.LauncherID = strings.TrimSpace(cfg.LauncherID)
	cfg.Language = strings.TrimSpace(cfg.Language)
	if cfg.BaseURL == "" {
		return nil, errors.New("catalog: base url required")
	}
	if _, err := language.Parse(cfg.Language); err != nil {
		return nil, fmt.Errorf("catalog: language %q: %w", cfg.Language, err)
	}

	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		encoder:    qs.NewEncoder(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// RequestURL builds the catalog URL for a catalog game id.
func (c *Client) RequestURL(gameID string) (string, error) {
	values, err := c.encoder.Values(query{
		LauncherID: c.cfg.LauncherID,
		Language:   c.cfg.Language,
		GameID:     gameID,
	})
	if err != nil {
		return "", fmt.Errorf("catalog: encode query: %w", err)
	}
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("catalog: parse base url: %w", err)
	}
	merged := base.Query()
	for k, vs := range values {
		for _, v := range vs {
			merged.Set(k, v)
		}
	}
	base.RawQuery = merged.Encode()
	return base.String(), nil
}

// BackgroundURL asks the catalog for the current background of preset and
// returns the media URL for kind.
func (c *Client) BackgroundURL(ctx context.Context, preset, kind string) (string, error) {
	if err := ValidateKind(kind); err != nil {
		return "", err
	}
	gameID, err := ResolvePreset(preset)
	if err != nil {
		return "", err
	}
	endpoint, err := c.RequestURL(gameID)
	if err != nil {
		return "", services.Wrap(services.ErrUnsupported, "catalog", "build request", "", err)
	}

	body, err := c.get(ctx, endpoint, "fetch catalog")
	if err != nil {
		return "", err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", services.Wrap(services.ErrParse, "catalog", "decode catalog", endpoint, err)
	}
	return extractMediaURL(doc, kind)
}

// Download fetches rawURL fully into memory.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL, "download media")
}

func (c *Client) get(ctx context.Context, endpoint, operation string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "catalog", operation, endpoint, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(operation, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, services.Wrap(services.ErrNetwork, "catalog", operation,
			fmt.Sprintf("%s: http %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(operation, endpoint, err)
	}
	return body, nil
}

func classifyTransport(operation, endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, "catalog", operation, endpoint, err)
	}
	return services.Wrap(services.ErrNetwork, "catalog", operation, endpoint, err)
}
