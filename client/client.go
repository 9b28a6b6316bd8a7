// Package client maps the BitFlow REST surface to typed method calls.
package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/Anshulmehra001/BitFlow/core"
	"github.com/Anshulmehra001/BitFlow/transport"
)

type Client struct {
	cfg     core.Config
	adapter core.TransportAdapter
	logger  core.Logger
}

type Option func(*builder)

type builder struct {
	adapter    core.TransportAdapter
	httpClient core.HTTPDoer
	logger     core.Logger
	retry      *transport.RetryPolicy
}

func WithTransportAdapter(adapter core.TransportAdapter) Option {
	return func(b *builder) {
		b.adapter = adapter
	}
}

func WithHTTPClient(httpClient core.HTTPDoer) Option {
	return func(b *builder) {
		b.httpClient = httpClient
	}
}

func WithLogger(logger core.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

func WithRetryPolicy(policy transport.RetryPolicy) Option {
	return func(b *builder) {
		b.retry = &policy
	}
}

// New builds a client for an already-resolved config. Use the root bitflow
// package when config should be layered from environment and defaults.
func New(cfg core.Config, options ...Option) (*Client, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, core.NewValidationError(err.Error())
	}

	b := builder{}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&b)
	}

	_, logger := glog.Resolve("bitflow", nil, b.logger)
	logger = glog.Ensure(logger)

	adapter := b.adapter
	if adapter == nil {
		rest := transport.NewRESTAdapter(b.httpClient)
		rest.DefaultHeaders = map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"User-Agent":    cfg.UserAgent,
		}
		if b.retry != nil {
			rest.Retry = *b.retry
		} else {
			retry := transport.DefaultRetryPolicy()
			retry.MaxRetries = cfg.MaxRetries
			rest.Retry = retry
		}
		adapter = rest
	}

	return &Client{
		cfg:     cfg,
		adapter: adapter,
		logger:  logger,
	}, nil
}

func (c *Client) Config() core.Config {
	return c.cfg
}

// do runs one API call end to end: marshal the body, execute, surface any
// non-2xx as a typed error, and decode the success payload into out.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query map[string]string,
	payload any,
	out any,
) error {
	if c == nil || c.adapter == nil {
		return core.NewNetworkError("client: transport adapter is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return core.NewValidationError("client: encode request body: " + err.Error())
		}
		body = encoded
	}

	res, err := c.adapter.Do(ctx, core.TransportRequest{
		Method:  method,
		URL:     c.cfg.BaseURL + path,
		Query:   query,
		Body:    body,
		Timeout: c.cfg.Timeout,
	})
	if err != nil {
		c.logCall(ctx, method, path, 0, err)
		return wrapTransportFailure(err)
	}

	c.logCall(ctx, method, path, res.StatusCode, nil)
	if res.StatusCode >= 400 {
		return errorFromResponse(res)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return core.NewAPIError("client: decode response body: "+err.Error(), "", res.StatusCode)
	}
	return nil
}

func (c *Client) logCall(ctx context.Context, method string, path string, statusCode int, err error) {
	if c == nil || c.logger == nil {
		return
	}
	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if err != nil {
		logger.Error("api call failed", "method", method, "path", path, "error", err)
		return
	}
	logger.Info("api call", "method", method, "path", path, "status", statusCode)
}

func pathID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
