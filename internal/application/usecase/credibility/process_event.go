package credibility

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/pkg/logger"
)

// ProcessEvidenceEventUseCase recalculates a user's score when the worker
// receives an evidence-changed event.
type ProcessEvidenceEventUseCase struct {
	calculate *CalculateScoreUseCase
	logger    logger.Logger
}

func NewProcessEvidenceEventUseCase(calc *CalculateScoreUseCase, log logger.Logger) *ProcessEvidenceEventUseCase {
	return &ProcessEvidenceEventUseCase{calculate: calc, logger: log}
}

func (uc *ProcessEvidenceEventUseCase) Execute(ctx context.Context, payload service.EvidenceEvent) error {
	if payload.UserID == uuid.Nil {
		uc.logger.Warn("Event without user id, skip", zap.String("event_type", string(payload.EventType)))
		return nil
	}

	uc.logger.Info("Recalculating score",
		zap.String("event_type", string(payload.EventType)),
		zap.String("user_id", payload.UserID.String()))

	if _, err := uc.calculate.Execute(ctx, CalculateScoreInput{UserID: payload.UserID}); err != nil {
		return fmt.Errorf("recalculate score for %s: %w", payload.UserID, err)
	}
	return nil
}
