package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, pub service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		publisher:   pub,
		logger:      log,
	}
}

type GetProfileInput struct {
	UserID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if errors.Is(err, apperror.ErrNotFound) {
		return &GetProfileOutput{Profile: profile.Empty(input.UserID)}, nil
	}
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	UserID          uuid.UUID
	Headline        string
	Bio             string
	Location        string
	YearsExperience int
	Education       []profile.Education
	Positions       []profile.Position
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	p := &profile.Profile{
		UserID:          input.UserID,
		Headline:        input.Headline,
		Bio:             input.Bio,
		Location:        input.Location,
		YearsExperience: input.YearsExperience,
		Education:       input.Education,
		Positions:       input.Positions,
		UpdatedAt:       time.Now().UTC(),
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}
	if p.Positions == nil {
		p.Positions = []profile.Position{}
	}

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	service.PublishAsync(uc.publisher, uc.logger, service.EventProfileUpdated, input.UserID)
	return &UpdateProfileOutput{Profile: p}, nil
}
