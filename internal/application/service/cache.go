package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/domain/credibility"
)

// ScoreCache holds the latest score per user. Get returns nil on a miss.
type ScoreCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*credibility.Score, error)
	Set(ctx context.Context, s *credibility.Score) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
