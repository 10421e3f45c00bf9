package credibility

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/certification"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

var tracer = otel.Tracer("credibility_usecase")

// Evidence bundles the repositories a score is aggregated from.
type Evidence struct {
	Profiles       profile.Repository
	Skills         skill.Repository
	Socials        social.Repository
	Certifications certification.Repository
}

// Gather loads every input of the score. Missing rows are empty inputs, not errors.
func (e Evidence) Gather(ctx context.Context, userID uuid.UUID) (credibility.Input, error) {
	in := credibility.Input{Now: time.Now().UTC()}

	p, err := e.Profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return in, err
	}
	in.Profile = p

	if in.Skills, err = e.Skills.ListByUser(ctx, userID, skill.ListFilter{}); err != nil {
		return in, err
	}
	if in.GitHub, err = e.Socials.GetGitHub(ctx, userID); err != nil {
		return in, err
	}
	if in.Socials, err = e.Socials.ListProfiles(ctx, userID); err != nil {
		return in, err
	}
	if in.Certifications, err = e.Certifications.ListByUser(ctx, userID); err != nil {
		return in, err
	}
	return in, nil
}

type CalculateScoreUseCase struct {
	evidence  Evidence
	scoreRepo credibility.Repository
	cache     service.ScoreCache
	metrics   *metrics.Recorder
	logger    logger.Logger
}

func NewCalculateScoreUseCase(
	evidence Evidence,
	scoreRepo credibility.Repository,
	cache service.ScoreCache,
	rec *metrics.Recorder,
	log logger.Logger,
) *CalculateScoreUseCase {
	return &CalculateScoreUseCase{
		evidence:  evidence,
		scoreRepo: scoreRepo,
		cache:     cache,
		metrics:   rec,
		logger:    log,
	}
}

type CalculateScoreInput struct {
	UserID uuid.UUID
}

// Execute recomputes the score from scratch, overwrites the stored row and
// drops the cached copy. Concurrent runs are last-write-wins.
func (uc *CalculateScoreUseCase) Execute(ctx context.Context, input CalculateScoreInput) (*credibility.Score, error) {
	ctx, span := tracer.Start(ctx, "CalculateScore")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	in, err := uc.evidence.Gather(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	score := credibility.Calculate(input.UserID, in)

	if err := uc.scoreRepo.Upsert(ctx, score); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			uc.logger.Warn("Failed to invalidate cached score", zap.String("user_id", input.UserID.String()), zap.Error(err))
		}
	}

	uc.metrics.ObserveScore(string(score.VerificationLevel), score.OverallScore)
	span.SetAttributes(
		attribute.Int("overall_score", score.OverallScore),
		attribute.String("verification_level", string(score.VerificationLevel)),
	)
	uc.logger.Info("Credibility score calculated",
		zap.String("user_id", input.UserID.String()),
		zap.Int("overall_score", score.OverallScore),
		zap.String("verification_level", string(score.VerificationLevel)))

	return score, nil
}
