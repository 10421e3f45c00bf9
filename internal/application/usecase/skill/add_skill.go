package skill

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type AddSkillUseCase struct {
	skillRepo skill.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewAddSkillUseCase(repo skill.Repository, pub service.EventPublisher, log logger.Logger) *AddSkillUseCase {
	return &AddSkillUseCase{skillRepo: repo, publisher: pub, logger: log}
}

type AddSkillInput struct {
	UserID      uuid.UUID
	Name        string
	Category    string
	Proficiency int
	Level       string
	Source      string
	Verified    bool
}

type AddSkillOutput struct {
	Skill *skill.UserSkill
}

// Execute finds or creates the catalog entry and upserts the user's row for it,
// so adding a skill twice updates the existing row.
func (uc *AddSkillUseCase) Execute(ctx context.Context, input AddSkillInput) (*AddSkillOutput, error) {
	if input.Source == "" {
		input.Source = string(skill.SourceManual)
	}
	now := time.Now().UTC()
	us := &skill.UserSkill{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Skill:       skill.Skill{Name: skill.NormalizeName(input.Name), Category: input.Category},
		Proficiency: input.Proficiency,
		Level:       skill.Level(input.Level),
		Source:      skill.Source(input.Source),
		Verified:    input.Verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := us.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	catalog, err := uc.skillRepo.FindOrCreate(ctx, us.Skill.Name, us.Skill.Category)
	if err != nil {
		return nil, err
	}
	us.Skill = *catalog

	if err := uc.skillRepo.Upsert(ctx, us); err != nil {
		return nil, err
	}
	uc.logger.Debug("Skill upserted", zap.String("user_id", input.UserID.String()), zap.String("skill", catalog.Name))

	service.PublishAsync(uc.publisher, uc.logger, service.EventSkillsUpdated, input.UserID)
	return &AddSkillOutput{Skill: us}, nil
}
