package skill

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
)

const maxPageSize = 100

type ListSkillsUseCase struct {
	skillRepo skill.Repository
}

func NewListSkillsUseCase(repo skill.Repository) *ListSkillsUseCase {
	return &ListSkillsUseCase{skillRepo: repo}
}

type ListSkillsInput struct {
	UserID uuid.UUID
	Source string
	Level  string
	Limit  int
	Offset int
}

type ListSkillsOutput struct {
	Skills []*skill.UserSkill
}

func (uc *ListSkillsUseCase) Execute(ctx context.Context, input ListSkillsInput) (*ListSkillsOutput, error) {
	filter := skill.ListFilter{Limit: input.Limit, Offset: input.Offset}
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if input.Source != "" {
		src, err := skill.ParseSource(input.Source)
		if err != nil {
			return nil, apperror.NewInvalidInput(err.Error(), err)
		}
		filter.Source = &src
	}
	if input.Level != "" {
		lvl, err := skill.ParseLevel(input.Level)
		if err != nil {
			return nil, apperror.NewInvalidInput(err.Error(), err)
		}
		filter.Level = &lvl
	}

	skills, err := uc.skillRepo.ListByUser(ctx, input.UserID, filter)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []*skill.UserSkill{}
	}
	return &ListSkillsOutput{Skills: skills}, nil
}
