package social

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformGitHub    Platform = "github"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
)

// SyncablePlatforms are fetched from a provider API, in sync-all order.
var SyncablePlatforms = []Platform{PlatformTwitter, PlatformGitHub, PlatformInstagram, PlatformYouTube}

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrNotSyncable     = errors.New("platform is recorded manually and cannot be synced")
)

func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(s)); p {
	case PlatformTwitter, PlatformGitHub, PlatformInstagram, PlatformYouTube, PlatformLinkedIn:
		return p, nil
	}
	return "", ErrUnknownPlatform
}

func (p Platform) Syncable() bool {
	for _, s := range SyncablePlatforms {
		if s == p {
			return true
		}
	}
	return false
}

type SocialProfile struct {
	UserID         uuid.UUID      `json:"user_id"`
	Platform       Platform       `json:"platform"`
	Handle         string         `json:"handle"`
	Followers      int            `json:"followers"`
	Following      int            `json:"following"`
	Metrics        map[string]any `json:"metrics"`
	InfluenceScore int            `json:"influence_score"`
	SyncedAt       *time.Time     `json:"synced_at"`
}

type GitHubProfile struct {
	UserID      uuid.UUID      `json:"user_id"`
	Username    string         `json:"username"`
	Followers   int            `json:"followers"`
	Following   int            `json:"following"`
	PublicRepos int            `json:"public_repos"`
	TotalStars  int            `json:"total_stars"`
	Languages   map[string]int `json:"languages"`
	SyncedAt    time.Time      `json:"synced_at"`
}

// FollowerScore weights an audience size logarithmically onto 0-100:
// 0 -> 0, 99 -> 50, 9999 and above -> 100.
func FollowerScore(n int) int {
	if n <= 0 {
		return 0
	}
	score := int(math.Round(math.Log10(float64(n)+1) * 25))
	if score > 100 {
		return 100
	}
	return score
}

// FindPlatform returns the profile for p, or nil.
func FindPlatform(profiles []*SocialProfile, p Platform) *SocialProfile {
	for _, sp := range profiles {
		if sp != nil && sp.Platform == p {
			return sp
		}
	}
	return nil
}

type Repository interface {
	UpsertProfile(ctx context.Context, p *SocialProfile) error
	GetProfile(ctx context.Context, userID uuid.UUID, platform Platform) (*SocialProfile, error)
	ListProfiles(ctx context.Context, userID uuid.UUID) ([]*SocialProfile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID, platform Platform) error

	UpsertGitHub(ctx context.Context, g *GitHubProfile) error
	// GetGitHub returns nil without error when the user has no GitHub profile.
	GetGitHub(ctx context.Context, userID uuid.UUID) (*GitHubProfile, error)
	DeleteGitHub(ctx context.Context, userID uuid.UUID) error
}
