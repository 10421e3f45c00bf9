// Package provider fetches public account statistics from the social platform APIs.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/logger"
)

const (
	gitHubBaseURL    = "https://api.github.com"
	twitterBaseURL   = "https://api.twitter.com"
	youTubeBaseURL   = "https://www.googleapis.com"
	instagramBaseURL = "https://graph.facebook.com/v19.0"
)

// restClient is one rate-limited resty client per provider.
type restClient struct {
	name    string
	client  *resty.Client
	limiter *rate.Limiter
	log     logger.Logger
}

func newRestClient(name, baseURL string, cfg config.Config, log logger.Logger) *restClient {
	timeout := cfg.Providers.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	perSecond := cfg.Providers.RatePerSecond
	if perSecond <= 0 {
		perSecond = 5
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "credably")

	return &restClient{
		name:    name,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		log:     log.With(zap.String("provider", name)),
	}
}

// get performs one GET and returns the body for gjson lookups. Any non-2xx
// status is an error carrying the upstream message when there is one.
func (c *restClient) get(ctx context.Context, req func(*resty.Request) *resty.Request, path string) (gjson.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, fmt.Errorf("%s rate limiter: %w", c.name, err)
	}

	r := c.client.R().SetContext(ctx)
	if req != nil {
		r = req(r)
	}
	resp, err := r.Get(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	trace.SpanFromContext(ctx).AddEvent("provider.request", trace.WithAttributes(
		attribute.String("provider", c.name),
		attribute.String("path", path),
		attribute.Int("status", resp.StatusCode()),
		attribute.Int64("duration_ms", resp.Time().Milliseconds()),
	))

	body := resp.String()
	if resp.IsError() {
		msg := firstNonEmpty(
			gjson.Get(body, "message").String(),
			gjson.Get(body, "error.message").String(),
			gjson.Get(body, "detail").String(),
			gjson.Get(body, "title").String(),
			resp.Status(),
		)
		c.log.Warn("Provider returned an error status", zap.Int("status", resp.StatusCode()), zap.String("path", path))
		return gjson.Result{}, fmt.Errorf("%s returned %d: %s", c.name, resp.StatusCode(), msg)
	}
	if !gjson.Valid(body) {
		return gjson.Result{}, fmt.Errorf("%s returned a non-JSON body", c.name)
	}
	return gjson.Parse(body), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// normalizeHandle strips surrounding space and a leading '@'.
func normalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// NewRegistry wires every syncable platform to its live API provider.
func NewRegistry(cfg config.Config, log logger.Logger) service.ProviderRegistry {
	return service.NewProviderRegistry(
		NewTwitterProvider(cfg, log),
		NewGitHubProvider(cfg, log),
		NewInstagramProvider(cfg, log),
		NewYouTubeProvider(cfg, log),
	)
}
