package provider

import (
	"context"
	"errors"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/logger"
)

type gitHubProvider struct {
	rest  *restClient
	token string
}

func NewGitHubProvider(cfg config.Config, log logger.Logger) service.SocialProvider {
	return newGitHubProvider(gitHubBaseURL, cfg, log)
}

func newGitHubProvider(baseURL string, cfg config.Config, log logger.Logger) *gitHubProvider {
	return &gitHubProvider{
		rest:  newRestClient("github", baseURL, cfg, log),
		token: cfg.Providers.GitHubToken,
	}
}

func (p *gitHubProvider) Platform() social.Platform { return social.PlatformGitHub }

// Fetch reads the user and up to 100 of their public repositories. The token is
// optional; without one GitHub applies its anonymous rate limit.
func (p *gitHubProvider) Fetch(ctx context.Context, handle string) (*service.FetchResult, error) {
	username := normalizeHandle(handle)
	if username == "" {
		return nil, errors.New("github username is empty")
	}

	auth := func(r *resty.Request) *resty.Request {
		r.SetHeader("Accept", "application/vnd.github+json").SetPathParam("user", username)
		if p.token != "" {
			r.SetAuthToken(p.token)
		}
		return r
	}

	user, err := p.rest.get(ctx, auth, "/users/{user}")
	if err != nil {
		return nil, err
	}
	repos, err := p.rest.get(ctx, func(r *resty.Request) *resty.Request {
		return auth(r).SetQueryParam("per_page", "100")
	}, "/users/{user}/repos")
	if err != nil {
		return nil, err
	}

	stars := 0
	languages := make(map[string]int)
	repos.ForEach(func(_, repo gjson.Result) bool {
		if repo.Get("fork").Bool() {
			return true
		}
		stars += int(repo.Get("stargazers_count").Int())
		if lang := repo.Get("language").String(); lang != "" {
			languages[lang]++
		}
		return true
	})

	publicRepos := int(user.Get("public_repos").Int())
	return &service.FetchResult{
		Handle:    firstNonEmpty(user.Get("login").String(), username),
		Followers: int(user.Get("followers").Int()),
		Following: int(user.Get("following").Int()),
		Metrics: map[string]any{
			"public_repos": publicRepos,
			"public_gists": user.Get("public_gists").Int(),
			"total_stars":  stars,
		},
		GitHub: &service.GitHubStats{
			PublicRepos: publicRepos,
			TotalStars:  stars,
			Languages:   languages,
		},
	}, nil
}
