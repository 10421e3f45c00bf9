package credibility

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/pkg/logger"
)

type GetScoreUseCase struct {
	scoreRepo credibility.Repository
	cache     service.ScoreCache
	calculate *CalculateScoreUseCase
	logger    logger.Logger
}

func NewGetScoreUseCase(
	scoreRepo credibility.Repository,
	cache service.ScoreCache,
	calculate *CalculateScoreUseCase,
	log logger.Logger,
) *GetScoreUseCase {
	return &GetScoreUseCase{scoreRepo: scoreRepo, cache: cache, calculate: calculate, logger: log}
}

type GetScoreInput struct {
	UserID uuid.UUID
}

// Execute reads through the cache, then the stored row, and calculates the
// score on demand for users who never had one.
func (uc *GetScoreUseCase) Execute(ctx context.Context, input GetScoreInput) (*credibility.Score, error) {
	l := uc.logger.With(zap.String("user_id", input.UserID.String()))

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, input.UserID)
		if err != nil {
			l.Warn("Score cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	score, err := uc.scoreRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		l.Info("No stored score, calculating")
		if score, err = uc.calculate.Execute(ctx, CalculateScoreInput{UserID: input.UserID}); err != nil {
			return nil, err
		}
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, score); err != nil {
			l.Warn("Score cache write failed", zap.Error(err))
		}
	}
	return score, nil
}
