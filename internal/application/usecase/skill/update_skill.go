package skill

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type UpdateSkillUseCase struct {
	skillRepo skill.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewUpdateSkillUseCase(repo skill.Repository, pub service.EventPublisher, log logger.Logger) *UpdateSkillUseCase {
	return &UpdateSkillUseCase{skillRepo: repo, publisher: pub, logger: log}
}

// UpdateSkillInput leaves a field untouched when it is nil.
type UpdateSkillInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	Proficiency *int
	Level       *string
	Verified    *bool
}

type UpdateSkillOutput struct {
	Skill *skill.UserSkill
}

func (uc *UpdateSkillUseCase) Execute(ctx context.Context, input UpdateSkillInput) (*UpdateSkillOutput, error) {
	us, err := findOwned(ctx, uc.skillRepo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Proficiency != nil {
		us.Proficiency = *input.Proficiency
		if input.Level == nil {
			us.Level = ""
		}
	}
	if input.Level != nil {
		us.Level = skill.Level(*input.Level)
	}
	if input.Verified != nil {
		us.Verified = *input.Verified
	}
	us.UpdatedAt = time.Now().UTC()

	if err := us.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.skillRepo.Update(ctx, us); err != nil {
		return nil, err
	}

	service.PublishAsync(uc.publisher, uc.logger, service.EventSkillsUpdated, input.UserID)
	return &UpdateSkillOutput{Skill: us}, nil
}

// findOwned loads a user skill and rejects rows that belong to someone else.
func findOwned(ctx context.Context, repo skill.Repository, id, userID uuid.UUID) (*skill.UserSkill, error) {
	us, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if us.UserID != userID {
		return nil, apperror.NewForbiddenResource("skill", id.String())
	}
	return us, nil
}
