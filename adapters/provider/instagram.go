package provider

import (
	"context"
	"errors"

	"github.com/go-resty/resty/v2"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/logger"
)

type instagramProvider struct {
	rest  *restClient
	token string
}

func NewInstagramProvider(cfg config.Config, log logger.Logger) service.SocialProvider {
	return newInstagramProvider(instagramBaseURL, cfg, log)
}

func newInstagramProvider(baseURL string, cfg config.Config, log logger.Logger) *instagramProvider {
	return &instagramProvider{
		rest:  newRestClient("instagram", baseURL, cfg, log),
		token: cfg.Providers.InstagramAccessToken,
	}
}

func (p *instagramProvider) Platform() social.Platform { return social.PlatformInstagram }

// Fetch expects the Instagram business account id as the handle.
func (p *instagramProvider) Fetch(ctx context.Context, handle string) (*service.FetchResult, error) {
	if p.token == "" {
		return nil, errors.New("instagram access token is not configured")
	}
	id := normalizeHandle(handle)
	if id == "" {
		return nil, errors.New("instagram account id is empty")
	}

	body, err := p.rest.get(ctx, func(r *resty.Request) *resty.Request {
		return r.SetQueryParam("fields", "username,followers_count,follows_count,media_count").
			SetQueryParam("access_token", p.token).
			SetPathParam("id", id)
	}, "/{id}")
	if err != nil {
		return nil, err
	}

	return &service.FetchResult{
		Handle:    firstNonEmpty(body.Get("username").String(), id),
		Followers: int(body.Get("followers_count").Int()),
		Following: int(body.Get("follows_count").Int()),
		Metrics: map[string]any{
			"media_count": body.Get("media_count").Int(),
		},
	}, nil
}
