package service

import (
	"context"

	"github.com/khoahotran/credably/internal/domain/social"
)

// FetchResult is what a provider returns for one account. Metrics is stored
// as-is on the social profile.
type FetchResult struct {
	Handle    string
	Followers int
	Following int
	Metrics   map[string]any
	GitHub    *GitHubStats
}

// GitHubStats carries the repository data only GitHub can provide.
type GitHubStats struct {
	PublicRepos int
	TotalStars  int
	Languages   map[string]int
}

type SocialProvider interface {
	Platform() social.Platform
	Fetch(ctx context.Context, handle string) (*FetchResult, error)
}

// ProviderRegistry resolves the provider for a syncable platform.
type ProviderRegistry map[social.Platform]SocialProvider

func NewProviderRegistry(providers ...SocialProvider) ProviderRegistry {
	r := make(ProviderRegistry, len(providers))
	for _, p := range providers {
		r[p.Platform()] = p
	}
	return r
}
