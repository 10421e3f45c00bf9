package provider

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/logger"
)

// channelIDPattern matches canonical channel ids; anything else is a handle.
var channelIDPattern = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)

type youTubeProvider struct {
	rest   *restClient
	apiKey string
}

func NewYouTubeProvider(cfg config.Config, log logger.Logger) service.SocialProvider {
	return newYouTubeProvider(youTubeBaseURL, cfg, log)
}

func newYouTubeProvider(baseURL string, cfg config.Config, log logger.Logger) *youTubeProvider {
	return &youTubeProvider{
		rest:   newRestClient("youtube", baseURL, cfg, log),
		apiKey: cfg.Providers.YouTubeAPIKey,
	}
}

func (p *youTubeProvider) Platform() social.Platform { return social.PlatformYouTube }

// Fetch accepts a channel id (UC followed by 22 characters) or a handle,
// with or without the leading '@'.
func (p *youTubeProvider) Fetch(ctx context.Context, handle string) (*service.FetchResult, error) {
	if p.apiKey == "" {
		return nil, errors.New("youtube api key is not configured")
	}
	handle = strings.TrimSpace(handle)
	if normalizeHandle(handle) == "" {
		return nil, errors.New("youtube channel is empty")
	}

	body, err := p.rest.get(ctx, func(r *resty.Request) *resty.Request {
		r.SetQueryParam("part", "snippet,statistics").SetQueryParam("key", p.apiKey)
		if channelIDPattern.MatchString(handle) {
			return r.SetQueryParam("id", handle)
		}
		return r.SetQueryParam("forHandle", "@"+normalizeHandle(handle))
	}, "/youtube/v3/channels")
	if err != nil {
		return nil, err
	}

	channel := body.Get("items.0")
	if !channel.Exists() {
		return nil, fmt.Errorf("youtube channel %q not found", handle)
	}

	// Statistics are returned as decimal strings.
	stats := channel.Get("statistics")
	return &service.FetchResult{
		Handle:    firstNonEmpty(channel.Get("snippet.customUrl").String(), handle),
		Followers: int(stats.Get("subscriberCount").Int()),
		Metrics: map[string]any{
			"channel_id":  channel.Get("id").String(),
			"view_count":  stats.Get("viewCount").Int(),
			"video_count": stats.Get("videoCount").Int(),
		},
	}, nil
}
