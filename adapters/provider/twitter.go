package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/logger"
)

type twitterProvider struct {
	rest  *restClient
	token string
}

func NewTwitterProvider(cfg config.Config, log logger.Logger) service.SocialProvider {
	return newTwitterProvider(twitterBaseURL, cfg, log)
}

func newTwitterProvider(baseURL string, cfg config.Config, log logger.Logger) *twitterProvider {
	return &twitterProvider{
		rest:  newRestClient("twitter", baseURL, cfg, log),
		token: cfg.Providers.TwitterBearerToken,
	}
}

func (p *twitterProvider) Platform() social.Platform { return social.PlatformTwitter }

func (p *twitterProvider) Fetch(ctx context.Context, handle string) (*service.FetchResult, error) {
	if p.token == "" {
		return nil, errors.New("twitter bearer token is not configured")
	}
	username := normalizeHandle(handle)
	if username == "" {
		return nil, errors.New("twitter username is empty")
	}

	body, err := p.rest.get(ctx, func(r *resty.Request) *resty.Request {
		return r.SetAuthToken(p.token).SetQueryParam("user.fields", "public_metrics").
			SetPathParam("username", username)
	}, "/2/users/by/username/{username}")
	if err != nil {
		return nil, err
	}

	// The v2 API reports unknown users as 200 with an errors array.
	data := body.Get("data")
	if !data.Exists() {
		return nil, fmt.Errorf("twitter user %q not found: %s", username, body.Get("errors.0.detail").String())
	}

	pm := data.Get("public_metrics")
	return &service.FetchResult{
		Handle:    firstNonEmpty(data.Get("username").String(), username),
		Followers: int(pm.Get("followers_count").Int()),
		Following: int(pm.Get("following_count").Int()),
		Metrics: map[string]any{
			"tweet_count":  pm.Get("tweet_count").Int(),
			"listed_count": pm.Get("listed_count").Int(),
		},
	}, nil
}
