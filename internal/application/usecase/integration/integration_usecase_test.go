package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/datasync"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/internal/mocks"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

type fixture struct {
	socials   *mocks.SocialRepo
	syncs     *mocks.SyncRepo
	skills    *mocks.SkillRepo
	github    *mocks.Provider
	twitter   *mocks.Provider
	uc        *IntegrationUseCase
	userID    uuid.UUID
	fixedTime time.Time
}

func newFixture() *fixture {
	f := &fixture{
		socials:   new(mocks.SocialRepo),
		syncs:     new(mocks.SyncRepo),
		skills:    new(mocks.SkillRepo),
		github:    &mocks.Provider{For: social.PlatformGitHub},
		twitter:   &mocks.Provider{For: social.PlatformTwitter},
		userID:    uuid.New(),
		fixedTime: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	f.uc = NewIntegrationUseCase(f.socials, f.syncs, f.skills,
		service.NewProviderRegistry(f.github, f.twitter), nil, metrics.NewRecorder(), logger.NewNop())
	f.uc.now = func() time.Time { return f.fixedTime }
	return f
}

func statusIs(s datasync.Status) any {
	return mock.MatchedBy(func(st *datasync.DataSourceSync) bool { return st.Status == s })
}

func TestConnect(t *testing.T) {
	t.Run("syncable platform starts idle with zero counts", func(t *testing.T) {
		f := newFixture()
		f.socials.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(sp *social.SocialProfile) bool {
			return sp.Handle == "octocat" && sp.Followers == 0
		})).Return(nil)
		f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusIdle)).Return(nil)

		sp, err := f.uc.Connect(context.Background(), ConnectInput{UserID: f.userID, Platform: "GitHub", Handle: "@octocat"})

		require.NoError(t, err)
		assert.Equal(t, social.PlatformGitHub, sp.Platform)
		f.syncs.AssertExpectations(t)
	})

	t.Run("linkedin stores the supplied connection count", func(t *testing.T) {
		f := newFixture()
		f.socials.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil)
		f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusCompleted)).Return(nil)

		sp, err := f.uc.Connect(context.Background(), ConnectInput{UserID: f.userID, Platform: "linkedin", Handle: "jane", Connections: 99})

		require.NoError(t, err)
		assert.Equal(t, 99, sp.Followers)
		assert.Equal(t, 50, sp.InfluenceScore)
	})

	t.Run("youtube keeps the handle prefix", func(t *testing.T) {
		f := newFixture()
		f.socials.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(sp *social.SocialProfile) bool {
			return sp.Platform == social.PlatformYouTube && sp.Handle == "@mkbhd"
		})).Return(nil)
		f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusIdle)).Return(nil)

		sp, err := f.uc.Connect(context.Background(), ConnectInput{UserID: f.userID, Platform: "youtube", Handle: " @mkbhd "})

		require.NoError(t, err)
		assert.Equal(t, "@mkbhd", sp.Handle)
		f.socials.AssertExpectations(t)
	})

	t.Run("bare prefix is not a handle", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Connect(context.Background(), ConnectInput{UserID: f.userID, Platform: "youtube", Handle: "@"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("unknown platform is invalid input", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Connect(context.Background(), ConnectInput{UserID: f.userID, Platform: "myspace", Handle: "x"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestSyncGitHubCompletes(t *testing.T) {
	f := newFixture()
	existing := &social.SocialProfile{UserID: f.userID, Platform: social.PlatformGitHub, Handle: "octocat"}
	f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformGitHub).Return(existing, nil)
	f.syncs.On("Get", mock.Anything, f.userID, "github").Return(nil, nil)
	f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusSyncing)).Return(nil).Once()
	f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusCompleted)).Return(nil).Once()
	f.github.On("Fetch", mock.Anything, "octocat").Return(&service.FetchResult{
		Handle: "octocat", Followers: 999, Following: 3,
		GitHub: &service.GitHubStats{PublicRepos: 8, TotalStars: 120, Languages: map[string]int{"Go": 5, "Rust": 1}},
	}, nil)
	f.socials.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(sp *social.SocialProfile) bool {
		return sp.Followers == 999 && sp.InfluenceScore == 75
	})).Return(nil)
	f.socials.On("UpsertGitHub", mock.Anything, mock.MatchedBy(func(g *social.GitHubProfile) bool {
		return g.PublicRepos == 8 && g.TotalStars == 120
	})).Return(nil)
	f.skills.On("FindOrCreate", mock.Anything, "Go", languageCategory).Return(&skill.Skill{ID: uuid.New(), Name: "Go"}, nil)
	f.skills.On("FindOrCreate", mock.Anything, "Rust", languageCategory).Return(&skill.Skill{ID: uuid.New(), Name: "Rust"}, nil)
	f.skills.On("Upsert", mock.Anything, mock.MatchedBy(func(us *skill.UserSkill) bool {
		return us.Source == skill.SourceGitHub && us.Verified
	})).Return(nil).Twice()

	out, err := f.uc.Sync(context.Background(), SyncInput{UserID: f.userID, Platform: "github"})

	require.NoError(t, err)
	assert.Equal(t, datasync.StatusCompleted, out.Status.Status)
	require.NotNil(t, out.Status.LastCompletedAt)
	assert.Equal(t, f.fixedTime, *out.Status.LastCompletedAt)
	f.syncs.AssertExpectations(t)
	f.skills.AssertExpectations(t)
}

func TestSyncFailureIsRecorded(t *testing.T) {
	f := newFixture()
	existing := &social.SocialProfile{UserID: f.userID, Platform: social.PlatformTwitter, Handle: "jack"}
	f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformTwitter).Return(existing, nil)
	f.syncs.On("Get", mock.Anything, f.userID, "twitter").Return(nil, nil)
	f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusSyncing)).Return(nil).Once()
	f.syncs.On("Upsert", mock.Anything, mock.MatchedBy(func(st *datasync.DataSourceSync) bool {
		return st.Status == datasync.StatusFailed && st.ErrorMessage != nil && *st.ErrorMessage == "twitter: 429 Too Many Requests"
	})).Return(nil).Once()
	f.twitter.On("Fetch", mock.Anything, "jack").Return(nil, errors.New("twitter: 429 Too Many Requests"))

	_, err := f.uc.Sync(context.Background(), SyncInput{UserID: f.userID, Platform: "twitter"})

	require.Error(t, err)
	assert.Equal(t, "twitter: 429 Too Many Requests", apperror.From(err).Details)
	f.socials.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
	f.syncs.AssertExpectations(t)
}

func TestSyncGitHubWriteOrder(t *testing.T) {
	setup := func() *fixture {
		f := newFixture()
		existing := &social.SocialProfile{UserID: f.userID, Platform: social.PlatformGitHub, Handle: "octocat"}
		f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformGitHub).Return(existing, nil)
		f.syncs.On("Get", mock.Anything, f.userID, "github").Return(nil, nil)
		f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusSyncing)).Return(nil).Once()
		f.syncs.On("Upsert", mock.Anything, statusIs(datasync.StatusFailed)).Return(nil).Once()
		return f
	}

	t.Run("missing repository data writes nothing", func(t *testing.T) {
		f := setup()
		f.github.On("Fetch", mock.Anything, "octocat").Return(&service.FetchResult{Followers: 5}, nil)

		_, err := f.uc.Sync(context.Background(), SyncInput{UserID: f.userID, Platform: "github"})

		require.Error(t, err)
		f.socials.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
		f.socials.AssertNotCalled(t, "UpsertGitHub", mock.Anything, mock.Anything)
		f.syncs.AssertExpectations(t)
	})

	t.Run("failed stats write keeps the profile row and fails the sync", func(t *testing.T) {
		f := setup()
		f.github.On("Fetch", mock.Anything, "octocat").Return(&service.FetchResult{
			Followers: 5, GitHub: &service.GitHubStats{Languages: map[string]int{"Go": 1}},
		}, nil)
		f.socials.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil).Once()
		f.socials.On("UpsertGitHub", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		_, err := f.uc.Sync(context.Background(), SyncInput{UserID: f.userID, Platform: "github"})

		require.Error(t, err)
		f.socials.AssertExpectations(t)
		f.skills.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything)
		f.syncs.AssertExpectations(t)
	})
}

func TestSyncRejectsLinkedInAndUnconnected(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Sync(context.Background(), SyncInput{UserID: f.userID, Platform: "linkedin"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformTwitter).
		Return(nil, apperror.NewNotFound("social profile", "twitter"))
	_, err = f.uc.Sync(context.Background(), SyncInput{UserID: f.userID, Platform: "twitter"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSyncAllContinuesPastFailures(t *testing.T) {
	f := newFixture()
	gh := &social.SocialProfile{UserID: f.userID, Platform: social.PlatformGitHub, Handle: "octocat"}
	tw := &social.SocialProfile{UserID: f.userID, Platform: social.PlatformTwitter, Handle: "jack"}
	li := &social.SocialProfile{UserID: f.userID, Platform: social.PlatformLinkedIn, Handle: "jane"}
	f.socials.On("ListProfiles", mock.Anything, f.userID).Return([]*social.SocialProfile{li, gh, tw}, nil)
	f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformGitHub).Return(gh, nil)
	f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformTwitter).Return(tw, nil)
	f.syncs.On("Get", mock.Anything, f.userID, mock.Anything).Return(nil, nil)
	f.syncs.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.twitter.On("Fetch", mock.Anything, "jack").Return(nil, errors.New("twitter: 401 Unauthorized"))
	f.github.On("Fetch", mock.Anything, "octocat").Return(&service.FetchResult{
		Followers: 10, GitHub: &service.GitHubStats{Languages: map[string]int{}},
	}, nil)
	f.socials.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil)
	f.socials.On("UpsertGitHub", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.SyncAll(context.Background(), f.userID)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Results, 2)
	assert.Equal(t, social.PlatformTwitter, out.Results[0].Platform)
	assert.Equal(t, "twitter: 401 Unauthorized", out.Results[0].Error)
	assert.Equal(t, datasync.StatusCompleted, out.Results[1].Status)
}

func TestStatusesMergesSyncRows(t *testing.T) {
	f := newFixture()
	msg := "boom"
	f.socials.On("ListProfiles", mock.Anything, f.userID).Return([]*social.SocialProfile{
		{Platform: social.PlatformTwitter, Handle: "jack"},
		{Platform: social.PlatformYouTube, Handle: "UC123"},
	}, nil)
	f.syncs.On("ListByUser", mock.Anything, f.userID).Return([]*datasync.DataSourceSync{
		{Source: "twitter", Status: datasync.StatusFailed, ErrorMessage: &msg},
	}, nil)

	items, err := f.uc.Statuses(context.Background(), f.userID)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, datasync.StatusFailed, items[0].Status)
	assert.Equal(t, &msg, items[0].ErrorMessage)
	assert.Equal(t, datasync.StatusIdle, items[1].Status)
}

func TestDisconnectGitHubRemovesEverything(t *testing.T) {
	f := newFixture()
	f.socials.On("GetProfile", mock.Anything, f.userID, social.PlatformGitHub).Return(&social.SocialProfile{}, nil)
	f.socials.On("DeleteProfile", mock.Anything, f.userID, social.PlatformGitHub).Return(nil)
	f.syncs.On("Delete", mock.Anything, f.userID, "github").Return(nil)
	f.socials.On("DeleteGitHub", mock.Anything, f.userID).Return(nil)

	require.NoError(t, f.uc.Disconnect(context.Background(), f.userID, "github"))
	f.socials.AssertExpectations(t)
	f.syncs.AssertExpectations(t)
}

func TestLanguageProficiency(t *testing.T) {
	assert.Equal(t, 50, LanguageProficiency(1))
	assert.Equal(t, 70, LanguageProficiency(3))
	assert.Equal(t, 90, LanguageProficiency(40))
}
