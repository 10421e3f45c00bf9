// Package mocks holds testify mocks for the domain repositories and
// application services.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/credably/internal/domain/certification"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/datasync"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/internal/domain/user"
)

type UserRepo struct{ mock.Mock }

func (m *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepo) Upsert(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type ProfileRepo struct{ mock.Mock }

func (m *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*profile.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type SkillRepo struct{ mock.Mock }

func (m *SkillRepo) FindOrCreate(ctx context.Context, name, category string) (*skill.Skill, error) {
	args := m.Called(ctx, name, category)
	s, _ := args.Get(0).(*skill.Skill)
	return s, args.Error(1)
}

func (m *SkillRepo) Upsert(ctx context.Context, us *skill.UserSkill) error {
	return m.Called(ctx, us).Error(0)
}

func (m *SkillRepo) Update(ctx context.Context, us *skill.UserSkill) error {
	return m.Called(ctx, us).Error(0)
}

func (m *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*skill.UserSkill, error) {
	args := m.Called(ctx, id)
	us, _ := args.Get(0).(*skill.UserSkill)
	return us, args.Error(1)
}

func (m *SkillRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter skill.ListFilter) ([]*skill.UserSkill, error) {
	args := m.Called(ctx, userID, filter)
	list, _ := args.Get(0).([]*skill.UserSkill)
	return list, args.Error(1)
}

type CertificationRepo struct{ mock.Mock }

func (m *CertificationRepo) Save(ctx context.Context, c *certification.Certification) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CertificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CertificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*certification.Certification)
	return c, args.Error(1)
}

func (m *CertificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*certification.Certification, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*certification.Certification)
	return list, args.Error(1)
}

type SocialRepo struct{ mock.Mock }

func (m *SocialRepo) UpsertProfile(ctx context.Context, p *social.SocialProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *SocialRepo) GetProfile(ctx context.Context, userID uuid.UUID, platform social.Platform) (*social.SocialProfile, error) {
	args := m.Called(ctx, userID, platform)
	p, _ := args.Get(0).(*social.SocialProfile)
	return p, args.Error(1)
}

func (m *SocialRepo) ListProfiles(ctx context.Context, userID uuid.UUID) ([]*social.SocialProfile, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*social.SocialProfile)
	return list, args.Error(1)
}

func (m *SocialRepo) DeleteProfile(ctx context.Context, userID uuid.UUID, platform social.Platform) error {
	return m.Called(ctx, userID, platform).Error(0)
}

func (m *SocialRepo) UpsertGitHub(ctx context.Context, g *social.GitHubProfile) error {
	return m.Called(ctx, g).Error(0)
}

func (m *SocialRepo) GetGitHub(ctx context.Context, userID uuid.UUID) (*social.GitHubProfile, error) {
	args := m.Called(ctx, userID)
	g, _ := args.Get(0).(*social.GitHubProfile)
	return g, args.Error(1)
}

func (m *SocialRepo) DeleteGitHub(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type SyncRepo struct{ mock.Mock }

func (m *SyncRepo) Upsert(ctx context.Context, s *datasync.DataSourceSync) error {
	// Copy so assertions see the state at call time, not the final one.
	cp := *s
	return m.Called(ctx, &cp).Error(0)
}

func (m *SyncRepo) Get(ctx context.Context, userID uuid.UUID, source string) (*datasync.DataSourceSync, error) {
	args := m.Called(ctx, userID, source)
	s, _ := args.Get(0).(*datasync.DataSourceSync)
	return s, args.Error(1)
}

func (m *SyncRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*datasync.DataSourceSync, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*datasync.DataSourceSync)
	return list, args.Error(1)
}

func (m *SyncRepo) Delete(ctx context.Context, userID uuid.UUID, source string) error {
	return m.Called(ctx, userID, source).Error(0)
}

type ScoreRepo struct{ mock.Mock }

func (m *ScoreRepo) Upsert(ctx context.Context, s *credibility.Score) error {
	return m.Called(ctx, s).Error(0)
}

func (m *ScoreRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*credibility.Score, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*credibility.Score)
	return s, args.Error(1)
}

type RecommendationRepo struct{ mock.Mock }

func (m *RecommendationRepo) ReplaceActive(ctx context.Context, userID uuid.UUID, recs []*recommendation.CareerRecommendation) error {
	return m.Called(ctx, userID, recs).Error(0)
}

func (m *RecommendationRepo) List(ctx context.Context, userID uuid.UUID, status *recommendation.Status) ([]*recommendation.CareerRecommendation, error) {
	args := m.Called(ctx, userID, status)
	list, _ := args.Get(0).([]*recommendation.CareerRecommendation)
	return list, args.Error(1)
}

func (m *RecommendationRepo) FindByID(ctx context.Context, id uuid.UUID) (*recommendation.CareerRecommendation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recommendation.CareerRecommendation)
	return r, args.Error(1)
}

func (m *RecommendationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status recommendation.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RecommendationRepo) CountActive(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type LearningPathRepo struct{ mock.Mock }

func (m *LearningPathRepo) Save(ctx context.Context, lp *recommendation.LearningPath) error {
	return m.Called(ctx, lp).Error(0)
}

func (m *LearningPathRepo) List(ctx context.Context, userID uuid.UUID) ([]*recommendation.LearningPath, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*recommendation.LearningPath)
	return list, args.Error(1)
}

func (m *LearningPathRepo) FindByID(ctx context.Context, id uuid.UUID) (*recommendation.LearningPath, error) {
	args := m.Called(ctx, id)
	lp, _ := args.Get(0).(*recommendation.LearningPath)
	return lp, args.Error(1)
}

func (m *LearningPathRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LearningPathRepo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
