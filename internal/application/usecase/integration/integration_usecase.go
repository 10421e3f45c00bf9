package integration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/datasync"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

var tracer = otel.Tracer("integration_usecase")

type IntegrationUseCase struct {
	socialRepo social.Repository
	syncRepo   datasync.Repository
	skillRepo  skill.Repository
	providers  service.ProviderRegistry
	publisher  service.EventPublisher
	metrics    *metrics.Recorder
	logger     logger.Logger
	now        func() time.Time
}

func NewIntegrationUseCase(
	socialRepo social.Repository,
	syncRepo datasync.Repository,
	skillRepo skill.Repository,
	providers service.ProviderRegistry,
	pub service.EventPublisher,
	rec *metrics.Recorder,
	log logger.Logger,
) *IntegrationUseCase {
	return &IntegrationUseCase{
		socialRepo: socialRepo,
		syncRepo:   syncRepo,
		skillRepo:  skillRepo,
		providers:  providers,
		publisher:  pub,
		metrics:    rec,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func parsePlatform(s string) (social.Platform, error) {
	p, err := social.ParsePlatform(s)
	if err != nil {
		return "", apperror.NewInvalidInput("unknown platform '"+s+"'", err)
	}
	return p, nil
}

type ConnectInput struct {
	UserID   uuid.UUID
	Platform string
	Handle   string
	// Connections is only read for LinkedIn, which is never synced.
	Connections int
}

// Connect records the account handle. Syncable platforms start with zero
// counts and an idle sync row; LinkedIn stores the supplied connection count
// and is complete immediately.
func (uc *IntegrationUseCase) Connect(ctx context.Context, input ConnectInput) (*social.SocialProfile, error) {
	p, err := parsePlatform(input.Platform)
	if err != nil {
		return nil, err
	}
	// YouTube tells channel ids and @handles apart by the prefix, so it keeps it.
	handle := strings.TrimSpace(input.Handle)
	if p != social.PlatformYouTube {
		handle = strings.TrimPrefix(handle, "@")
	}
	if strings.TrimPrefix(handle, "@") == "" {
		return nil, apperror.NewInvalidInput("handle is required", nil)
	}
	if input.Connections < 0 {
		return nil, apperror.NewInvalidInput("connections cannot be negative", nil)
	}

	now := uc.now()
	sp := &social.SocialProfile{
		UserID:   input.UserID,
		Platform: p,
		Handle:   handle,
		Metrics:  map[string]any{},
	}
	st := datasync.New(input.UserID, string(p), now)

	if p == social.PlatformLinkedIn {
		sp.Followers = input.Connections
		sp.InfluenceScore = social.FollowerScore(input.Connections)
		sp.Metrics["connections"] = input.Connections
		sp.SyncedAt = &now
		st.Start(now)
		st.Complete(now)
	}

	if err := uc.socialRepo.UpsertProfile(ctx, sp); err != nil {
		return nil, err
	}
	if err := uc.syncRepo.Upsert(ctx, st); err != nil {
		return nil, err
	}

	if p == social.PlatformLinkedIn {
		service.PublishAsync(uc.publisher, uc.logger, service.EventSyncCompleted, input.UserID)
	}
	return sp, nil
}

// Integration is one connected platform with its latest sync state.
type Integration struct {
	Platform        social.Platform `json:"platform"`
	Handle          string          `json:"handle"`
	Followers       int             `json:"followers"`
	InfluenceScore  int             `json:"influence_score"`
	Syncable        bool            `json:"syncable"`
	SyncedAt        *time.Time      `json:"synced_at"`
	Status          datasync.Status `json:"status"`
	LastStartedAt   *time.Time      `json:"last_started_at"`
	LastCompletedAt *time.Time      `json:"last_completed_at"`
	ErrorMessage    *string         `json:"error_message"`
}

func (uc *IntegrationUseCase) Statuses(ctx context.Context, userID uuid.UUID) ([]Integration, error) {
	profiles, err := uc.socialRepo.ListProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}
	syncs, err := uc.syncRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bySource := make(map[string]*datasync.DataSourceSync, len(syncs))
	for _, s := range syncs {
		bySource[s.Source] = s
	}

	out := make([]Integration, 0, len(profiles))
	for _, sp := range profiles {
		item := Integration{
			Platform:       sp.Platform,
			Handle:         sp.Handle,
			Followers:      sp.Followers,
			InfluenceScore: sp.InfluenceScore,
			Syncable:       sp.Platform.Syncable(),
			SyncedAt:       sp.SyncedAt,
			Status:         datasync.StatusIdle,
		}
		if s, ok := bySource[string(sp.Platform)]; ok {
			item.Status = s.Status
			item.LastStartedAt = s.LastStartedAt
			item.LastCompletedAt = s.LastCompletedAt
			item.ErrorMessage = s.ErrorMessage
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *IntegrationUseCase) Disconnect(ctx context.Context, userID uuid.UUID, platform string) error {
	p, err := parsePlatform(platform)
	if err != nil {
		return err
	}
	if _, err := uc.socialRepo.GetProfile(ctx, userID, p); err != nil {
		return err
	}

	if err := uc.socialRepo.DeleteProfile(ctx, userID, p); err != nil {
		return err
	}
	if err := uc.syncRepo.Delete(ctx, userID, string(p)); err != nil {
		return err
	}
	if p == social.PlatformGitHub {
		if err := uc.socialRepo.DeleteGitHub(ctx, userID); err != nil {
			return err
		}
	}

	service.PublishAsync(uc.publisher, uc.logger, service.EventProfileUpdated, userID)
	return nil
}

func notConnected(p social.Platform) error {
	return apperror.NewNotFound("integration", string(p))
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}
