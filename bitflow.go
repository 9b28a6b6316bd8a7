// Package bitflow is the Go SDK for the BitFlow payment-streaming API.
//
// The SDK is two independent halves: a typed API client for the outbound
// REST surface, and a webhook handler that verifies and dispatches the
// deliveries BitFlow sends back. New wires both from a layered config
// (defaults, then an optional external loader, then the runtime config
// passed in).
package bitflow

import (
	"context"
	"fmt"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/Anshulmehra001/BitFlow/client"
	"github.com/Anshulmehra001/BitFlow/core"
	"github.com/Anshulmehra001/BitFlow/transport"
	"github.com/Anshulmehra001/BitFlow/webhook"
)

type SDK struct {
	cfg      core.Config
	client   *client.Client
	webhooks *webhook.Handler
}

type Option func(*builder)

type builder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	httpClient      core.HTTPDoer
	adapter         core.TransportAdapter
	retry           *transport.RetryPolicy
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
}

func WithLogger(logger core.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *builder) {
		b.loggerProvider = provider
	}
}

func WithHTTPClient(httpClient core.HTTPDoer) Option {
	return func(b *builder) {
		b.httpClient = httpClient
	}
}

func WithTransportAdapter(adapter core.TransportAdapter) Option {
	return func(b *builder) {
		b.adapter = adapter
	}
}

func WithRetryPolicy(policy transport.RetryPolicy) Option {
	return func(b *builder) {
		b.retry = &policy
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *builder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *builder) {
		b.optionsResolver = resolver
	}
}

// New resolves config and builds the SDK. The webhook handler is present
// only when a webhook secret was configured.
func New(cfg core.Config, options ...Option) (*SDK, error) {
	b := builder{
		configProvider:  core.NewCfgxConfigProvider(nil),
		optionsResolver: core.GoOptionsResolver{},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&b)
	}
	if b.configProvider == nil {
		b.configProvider = core.NewCfgxConfigProvider(nil)
	}
	if b.optionsResolver == nil {
		b.optionsResolver = core.GoOptionsResolver{}
	}

	defaults := core.DefaultConfig()
	loaded, err := b.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, fmt.Errorf("bitflow: load config: %w", err)
	}
	resolved, err := b.optionsResolver.Resolve(defaults, loaded, cfg)
	if err != nil {
		return nil, core.NewValidationError(err.Error())
	}

	provider, logger := glog.Resolve("bitflow", b.loggerProvider, b.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("bitflow"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	clientOptions := []client.Option{client.WithLogger(logger)}
	if b.adapter != nil {
		clientOptions = append(clientOptions, client.WithTransportAdapter(b.adapter))
	}
	if b.httpClient != nil {
		clientOptions = append(clientOptions, client.WithHTTPClient(b.httpClient))
	}
	if b.retry != nil {
		clientOptions = append(clientOptions, client.WithRetryPolicy(*b.retry))
	}
	apiClient, err := client.New(resolved, clientOptions...)
	if err != nil {
		return nil, err
	}

	sdk := &SDK{
		cfg:    resolved,
		client: apiClient,
	}
	if resolved.WebhookSecret != "" {
		sdk.webhooks = webhook.NewHandler(resolved.WebhookSecret)
	}
	return sdk, nil
}

// NewFromEnv builds the SDK from BITFLOW_* environment variables, loading
// the given .env files first (missing files are skipped). Runtime cfg still
// wins over the environment.
func NewFromEnv(cfg core.Config, envFiles []string, options ...Option) (*SDK, error) {
	loader := core.EnvRawConfigLoader{EnvFiles: envFiles}
	options = append(
		[]Option{WithConfigProvider(core.NewCfgxConfigProvider(loader))},
		options...,
	)
	return New(cfg, options...)
}

func (s *SDK) Config() core.Config {
	return s.cfg
}

func (s *SDK) Client() *client.Client {
	return s.client
}

// Webhooks returns the webhook handler, or nil when no webhook secret was
// configured.
func (s *SDK) Webhooks() *webhook.Handler {
	return s.webhooks
}
