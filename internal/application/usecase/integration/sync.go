package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/datasync"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/apperror"
)

const languageCategory = "programming-language"

type SyncInput struct {
	UserID   uuid.UUID
	Platform string
}

type SyncOutput struct {
	Profile *social.SocialProfile
	Status  *datasync.DataSourceSync
}

// Sync refreshes one connected platform: idle -> syncing -> completed | failed.
// A failed attempt stores the error on the sync row and returns it; nothing
// fetched is written and there is no retry.
func (uc *IntegrationUseCase) Sync(ctx context.Context, input SyncInput) (*SyncOutput, error) {
	p, err := parsePlatform(input.Platform)
	if err != nil {
		return nil, err
	}
	if !p.Syncable() {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s: %s", p, social.ErrNotSyncable), social.ErrNotSyncable)
	}

	ctx, span := tracer.Start(ctx, "SyncPlatform")
	defer span.End()
	span.SetAttributes(attribute.String("platform", string(p)), attribute.String("user_id", input.UserID.String()))

	existing, err := uc.socialRepo.GetProfile(ctx, input.UserID, p)
	if err != nil {
		if isNotFound(err) {
			return nil, notConnected(p)
		}
		return nil, err
	}
	provider, ok := uc.providers[p]
	if !ok {
		return nil, apperror.NewInternal(fmt.Sprintf("no provider configured for %s", p), nil)
	}

	l := uc.logger.With(zap.String("user_id", input.UserID.String()), zap.String("platform", string(p)))
	started := time.Now()

	st, err := uc.syncRepo.Get(ctx, input.UserID, string(p))
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = datasync.New(input.UserID, string(p), uc.now())
	}
	st.Start(uc.now())
	if err := uc.syncRepo.Upsert(ctx, st); err != nil {
		return nil, err
	}

	sp, err := uc.fetchAndStore(ctx, provider, existing)
	if err != nil {
		span.RecordError(err)
		l.Warn("Platform sync failed", zap.Error(err))
		st.Fail(uc.now(), err)
		if uerr := uc.syncRepo.Upsert(ctx, st); uerr != nil {
			l.Error("Failed to record sync failure", uerr)
		}
		uc.metrics.ObserveSync(string(p), string(datasync.StatusFailed), time.Since(started))
		return nil, apperror.NewAppError(apperror.ErrInternal, "Sync failed", err.Error(), err)
	}

	st.Complete(uc.now())
	if err := uc.syncRepo.Upsert(ctx, st); err != nil {
		return nil, err
	}
	uc.metrics.ObserveSync(string(p), string(datasync.StatusCompleted), time.Since(started))
	l.Info("Platform synced", zap.Int("followers", sp.Followers), zap.Int("influence_score", sp.InfluenceScore))

	service.PublishAsync(uc.publisher, uc.logger, service.EventSyncCompleted, input.UserID)
	return &SyncOutput{Profile: sp, Status: st}, nil
}

// fetchAndStore validates the provider result, then upserts the profile, the
// GitHub stats and the language skills in that order. The writes are not one
// transaction: a failure part way leaves the earlier rows in place and the
// sync is marked failed, so the next sync overwrites them.
func (uc *IntegrationUseCase) fetchAndStore(ctx context.Context, provider service.SocialProvider, existing *social.SocialProfile) (*social.SocialProfile, error) {
	res, err := provider.Fetch(ctx, existing.Handle)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	extra := res.Metrics
	if extra == nil {
		extra = map[string]any{}
	}
	sp := &social.SocialProfile{
		UserID:         existing.UserID,
		Platform:       existing.Platform,
		Handle:         existing.Handle,
		Followers:      res.Followers,
		Following:      res.Following,
		Metrics:        extra,
		InfluenceScore: social.FollowerScore(res.Followers),
		SyncedAt:       &now,
	}

	var gh *social.GitHubProfile
	if existing.Platform == social.PlatformGitHub {
		if res.GitHub == nil {
			return nil, fmt.Errorf("github: response carried no repository data")
		}
		username := res.Handle
		if username == "" {
			username = existing.Handle
		}
		gh = &social.GitHubProfile{
			UserID:      existing.UserID,
			Username:    username,
			Followers:   res.Followers,
			Following:   res.Following,
			PublicRepos: res.GitHub.PublicRepos,
			TotalStars:  res.GitHub.TotalStars,
			Languages:   res.GitHub.Languages,
			SyncedAt:    now,
		}
	}

	if err := uc.socialRepo.UpsertProfile(ctx, sp); err != nil {
		return nil, err
	}
	if gh != nil {
		if err := uc.socialRepo.UpsertGitHub(ctx, gh); err != nil {
			return nil, err
		}
		if err := uc.importLanguages(ctx, existing.UserID, gh.Languages, now); err != nil {
			return nil, err
		}
	}
	return sp, nil
}

// importLanguages records every repository language as a verified,
// github-sourced skill. Proficiency grows with the number of repos using it.
func (uc *IntegrationUseCase) importLanguages(ctx context.Context, userID uuid.UUID, languages map[string]int, now time.Time) error {
	for name, repos := range languages {
		name = skill.NormalizeName(name)
		if name == "" || repos <= 0 {
			continue
		}
		catalog, err := uc.skillRepo.FindOrCreate(ctx, name, languageCategory)
		if err != nil {
			return err
		}
		proficiency := LanguageProficiency(repos)
		us := &skill.UserSkill{
			ID:          uuid.New(),
			UserID:      userID,
			Skill:       *catalog,
			Proficiency: proficiency,
			Level:       skill.LevelFromProficiency(proficiency),
			Source:      skill.SourceGitHub,
			Verified:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.skillRepo.Upsert(ctx, us); err != nil {
			return err
		}
	}
	return nil
}

// LanguageProficiency maps a repository count onto 50..90.
func LanguageProficiency(repos int) int {
	return min(90, 40+10*repos)
}

type PlatformResult struct {
	Platform social.Platform `json:"platform"`
	Status   datasync.Status `json:"status"`
	Error    string          `json:"error,omitempty"`
}

type SyncAllOutput struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []PlatformResult `json:"results"`
}

// SyncAll syncs every connected syncable platform one after another. A failure
// on one platform does not stop the others.
func (uc *IntegrationUseCase) SyncAll(ctx context.Context, userID uuid.UUID) (*SyncAllOutput, error) {
	profiles, err := uc.socialRepo.ListProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &SyncAllOutput{Results: []PlatformResult{}}
	for _, p := range social.SyncablePlatforms {
		if social.FindPlatform(profiles, p) == nil {
			continue
		}
		out.Total++
		res := PlatformResult{Platform: p, Status: datasync.StatusCompleted}
		if _, err := uc.Sync(ctx, SyncInput{UserID: userID, Platform: string(p)}); err != nil {
			res.Status = datasync.StatusFailed
			res.Error = apperror.From(err).Details
			out.Failed++
		} else {
			out.Succeeded++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
