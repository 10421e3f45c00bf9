package skill

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/logger"
)

type DeleteSkillUseCase struct {
	skillRepo skill.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewDeleteSkillUseCase(repo skill.Repository, pub service.EventPublisher, log logger.Logger) *DeleteSkillUseCase {
	return &DeleteSkillUseCase{skillRepo: repo, publisher: pub, logger: log}
}

type DeleteSkillInput struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (uc *DeleteSkillUseCase) Execute(ctx context.Context, input DeleteSkillInput) error {
	if _, err := findOwned(ctx, uc.skillRepo, input.ID, input.UserID); err != nil {
		return err
	}
	if err := uc.skillRepo.Delete(ctx, input.ID); err != nil {
		return err
	}
	service.PublishAsync(uc.publisher, uc.logger, service.EventSkillsUpdated, input.UserID)
	return nil
}
