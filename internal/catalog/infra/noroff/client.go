// Package noroff reads products from the Noroff online-shop API.
package noroff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const (
	DefaultBaseURL = "https://v2.api.noroff.dev"

	productsPath   = "/online-shop"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20

	logMsgFetchFailed = "product api request failed"
	logAttrURL        = "url"
	logAttrStatus     = "status"
	logAttrError      = "error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the {"data": ...} wrapper the API puts around every payload.
type envelope[T any] struct {
	Data T `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the transport settings. The client is copied, so a
// shared client such as http.DefaultClient is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	hc.Timeout = c.timeout
	c.http = &hc

	return c
}

// List implements app.ProductSource.
func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var out envelope[[]domain.Product]
	if err := c.get(ctx, productsPath, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []domain.Product{}, nil
	}
	return out.Data, nil
}

// Get implements app.ProductSource.
func (c *Client) Get(ctx context.Context, id string) (domain.Product, error) {
	var out envelope[*domain.Product]
	if err := c.get(ctx, productsPath+"/"+url.PathEscape(id), &out); err != nil {
		return domain.Product{}, err
	}
	if out.Data == nil {
		return domain.Product{}, app.ErrNotFound
	}
	return *out.Data, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(logMsgFetchFailed, logAttrURL, target, logAttrError, err.Error())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(app.ErrUnavailable, ctxErr)
		}
		return errors.Join(app.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return app.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn(logMsgFetchFailed, logAttrURL, target, logAttrStatus, resp.StatusCode)
		return fmt.Errorf("%w: unexpected status %d", app.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Join(app.ErrUnavailable, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		c.logger.Error(logMsgFetchFailed, logAttrURL, target, logAttrError, err.Error())
		return fmt.Errorf("%w: decode response: %v", app.ErrUnavailable, err)
	}

	return nil
}
