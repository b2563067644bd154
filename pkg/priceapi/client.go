// Package priceapi talks to the remote price-checking service.
package priceapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/geniass/price-tracker/pkg/checker"
)

const productURLParam = "product_url"

type Client struct {
	endpoint  *url.URL
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
	logger    *zap.Logger
}

type Option func(*Client)

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout bounds a whole request; zero keeps colly's default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("endpoint %q is not absolute", endpoint)
	}

	c := &Client{
		endpoint:  u,
		transport: http.DefaultTransport,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RequestURL is the URL fetched for productURL. The product URL is sent as-is,
// percent-encoded with spaces as %20.
func (c *Client) RequestURL(productURL string) string {
	u := *c.endpoint
	param := productURLParam + "=" + strings.ReplaceAll(url.QueryEscape(productURL), "+", "%20")
	if u.RawQuery != "" {
		u.RawQuery += "&" + param
	} else {
		u.RawQuery = param
	}
	return u.String()
}

// FetchPrice issues one GET against the endpoint. There are no retries.
func (c *Client) FetchPrice(ctx context.Context, productURL string) (checker.Result, error) {
	target := c.RequestURL(productURL)
	logger := c.logger.With(zap.String("product_url", productURL))

	col := c.newCollector(ctx)

	var body []byte
	var status int
	col.OnRequest(func(r *colly.Request) {
		logger.Debug("requesting price", zap.String("url", r.URL.String()))
		r.Headers.Set("Accept", "application/json")
	})
	col.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	col.OnError(func(r *colly.Response, err error) {
		logger.Debug("price request failed", zap.Int("status", r.StatusCode), zap.Error(err))
	})

	if err := col.Visit(target); err != nil {
		return checker.Result{}, fmt.Errorf("request %q: %w", target, err)
	}

	resp, err := decodeResponse(body)
	if err != nil {
		logger.Debug("undecodable price response", zap.Int("status", status), zap.Error(err))
		return checker.Result{}, fmt.Errorf("decode response of %q: %w", target, err)
	}
	if resp.Error != "" {
		logger.Debug("price service reported an error", zap.Int("status", status), zap.String("error", resp.Error))
	}

	logger.Debug("price received", zap.Int("status", status), zap.String("price", resp.Price))
	return checker.Result{Price: resp.Price}, nil
}

// newCollector builds a single-use collector. Error statuses are still decoded,
// the same way a browser fetch hands back error bodies.
func (c *Client) newCollector(ctx context.Context) *colly.Collector {
	options := []colly.CollectorOption{
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
	}
	if c.userAgent != "" {
		options = append(options, colly.UserAgent(c.userAgent))
	}

	col := colly.NewCollector(options...)
	col.DisableCookies()
	col.WithTransport(contextTransport{ctx: ctx, base: c.transport})
	if c.timeout > 0 {
		col.SetRequestTimeout(c.timeout)
	}
	return col
}

// contextTransport binds the caller's context to every request colly sends.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}
