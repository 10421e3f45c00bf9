package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/social"
)

type LLM struct{ mock.Mock }

func (m *LLM) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

type Provider struct {
	mock.Mock
	For social.Platform
}

func (m *Provider) Platform() social.Platform { return m.For }

func (m *Provider) Fetch(ctx context.Context, handle string) (*service.FetchResult, error) {
	args := m.Called(ctx, handle)
	r, _ := args.Get(0).(*service.FetchResult)
	return r, args.Error(1)
}

type Publisher struct{ mock.Mock }

func (m *Publisher) Publish(ctx context.Context, evt service.EvidenceEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type ScoreCache struct{ mock.Mock }

func (m *ScoreCache) Get(ctx context.Context, userID uuid.UUID) (*credibility.Score, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*credibility.Score)
	return s, args.Error(1)
}

func (m *ScoreCache) Set(ctx context.Context, s *credibility.Score) error {
	return m.Called(ctx, s).Error(0)
}

func (m *ScoreCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
