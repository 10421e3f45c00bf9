package credibility

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/internal/mocks"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

type ScoreUseCaseSuite struct {
	suite.Suite

	profiles *mocks.ProfileRepo
	skills   *mocks.SkillRepo
	socials  *mocks.SocialRepo
	certs    *mocks.CertificationRepo
	scores   *mocks.ScoreRepo
	cache    *mocks.ScoreCache
	rec      *metrics.Recorder

	calculate *CalculateScoreUseCase
	get       *GetScoreUseCase
	userID    uuid.UUID
}

func (s *ScoreUseCaseSuite) SetupTest() {
	s.profiles = new(mocks.ProfileRepo)
	s.skills = new(mocks.SkillRepo)
	s.socials = new(mocks.SocialRepo)
	s.certs = new(mocks.CertificationRepo)
	s.scores = new(mocks.ScoreRepo)
	s.cache = new(mocks.ScoreCache)
	s.rec = metrics.NewRecorder()
	s.userID = uuid.New()

	evidence := Evidence{Profiles: s.profiles, Skills: s.skills, Socials: s.socials, Certifications: s.certs}
	s.calculate = NewCalculateScoreUseCase(evidence, s.scores, s.cache, s.rec, logger.NewNop())
	s.get = NewGetScoreUseCase(s.scores, s.cache, s.calculate, logger.NewNop())
}

func (s *ScoreUseCaseSuite) expectEmptyEvidence() {
	s.profiles.On("GetByUserID", mock.Anything, s.userID).Return(nil, apperror.NewNotFound("profile", s.userID.String()))
	s.skills.On("ListByUser", mock.Anything, s.userID, mock.Anything).Return(nil, nil)
	s.socials.On("GetGitHub", mock.Anything, s.userID).Return(nil, nil)
	s.socials.On("ListProfiles", mock.Anything, s.userID).Return(nil, nil)
	s.certs.On("ListByUser", mock.Anything, s.userID).Return(nil, nil)
}

func (s *ScoreUseCaseSuite) TestCalculatePersistsAndInvalidates() {
	s.expectEmptyEvidence()
	s.scores.On("Upsert", mock.Anything, mock.AnythingOfType("*credibility.Score")).Return(nil)
	s.cache.On("Invalidate", mock.Anything, s.userID).Return(errors.New("redis down"))

	score, err := s.calculate.Execute(context.Background(), CalculateScoreInput{UserID: s.userID})

	s.Require().NoError(err, "a cache failure must not fail the calculation")
	s.Equal(s.userID, score.UserID)
	s.Equal(credibility.LevelBasic, score.VerificationLevel)
	s.Len(score.Breakdown, 5)
	s.scores.AssertExpectations(s.T())
	s.cache.AssertExpectations(s.T())
	n, err := testutil.GatherAndCount(s.rec.Registry(), "credably_score_calculations_total")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *ScoreUseCaseSuite) TestCalculateStopsOnRepositoryError() {
	s.profiles.On("GetByUserID", mock.Anything, s.userID).Return(nil, apperror.NewInternal("boom", nil))

	_, err := s.calculate.Execute(context.Background(), CalculateScoreInput{UserID: s.userID})

	s.ErrorIs(err, apperror.ErrInternal)
	s.scores.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *ScoreUseCaseSuite) TestCalculateUsesGatheredEvidence() {
	s.profiles.On("GetByUserID", mock.Anything, s.userID).Return(&profile.Profile{UserID: s.userID, Bio: "bio", YearsExperience: 5}, nil)
	s.skills.On("ListByUser", mock.Anything, s.userID, mock.Anything).Return(nil, nil)
	s.socials.On("GetGitHub", mock.Anything, s.userID).Return(&social.GitHubProfile{Followers: 99, PublicRepos: 10}, nil)
	s.socials.On("ListProfiles", mock.Anything, s.userID).Return(nil, nil)
	s.certs.On("ListByUser", mock.Anything, s.userID).Return(nil, nil)
	s.scores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	s.cache.On("Invalidate", mock.Anything, s.userID).Return(nil)

	score, err := s.calculate.Execute(context.Background(), CalculateScoreInput{UserID: s.userID})

	s.Require().NoError(err)
	exp := score.Breakdown[credibility.CategoryExperience]
	s.Equal(50, exp.Factors[credibility.FactorYearsExperience])
	s.Equal(60, exp.Factors[credibility.FactorProfileCompleteness])
	s.Equal(50, score.Breakdown[credibility.CategoryTechnical].Factors[credibility.FactorGitHubActivity])
}

func (s *ScoreUseCaseSuite) TestGetServesCacheHit() {
	cached := &credibility.Score{UserID: s.userID, OverallScore: 81}
	s.cache.On("Get", mock.Anything, s.userID).Return(cached, nil)

	score, err := s.get.Execute(context.Background(), GetScoreInput{UserID: s.userID})

	s.Require().NoError(err)
	s.Same(cached, score)
	s.scores.AssertNotCalled(s.T(), "GetByUserID", mock.Anything, mock.Anything)
}

func (s *ScoreUseCaseSuite) TestGetFallsBackToStoredRow() {
	stored := &credibility.Score{UserID: s.userID, OverallScore: 64}
	s.cache.On("Get", mock.Anything, s.userID).Return(nil, nil)
	s.scores.On("GetByUserID", mock.Anything, s.userID).Return(stored, nil)
	s.cache.On("Set", mock.Anything, stored).Return(nil)

	score, err := s.get.Execute(context.Background(), GetScoreInput{UserID: s.userID})

	s.Require().NoError(err)
	s.Equal(64, score.OverallScore)
	s.cache.AssertExpectations(s.T())
}

func (s *ScoreUseCaseSuite) TestGetCalculatesOnDemand() {
	s.cache.On("Get", mock.Anything, s.userID).Return(nil, nil)
	s.scores.On("GetByUserID", mock.Anything, s.userID).Return(nil, nil)
	s.expectEmptyEvidence()
	s.scores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	s.cache.On("Invalidate", mock.Anything, s.userID).Return(nil)
	s.cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	score, err := s.get.Execute(context.Background(), GetScoreInput{UserID: s.userID})

	s.Require().NoError(err)
	s.Equal(s.userID, score.UserID)
	s.scores.AssertCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *ScoreUseCaseSuite) TestProcessEventRecalculates() {
	s.expectEmptyEvidence()
	s.scores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	s.cache.On("Invalidate", mock.Anything, s.userID).Return(nil)

	uc := NewProcessEvidenceEventUseCase(s.calculate, logger.NewNop())

	s.NoError(uc.Execute(context.Background(), service.EvidenceEvent{EventType: service.EventSkillsUpdated, UserID: s.userID}))
	s.scores.AssertNumberOfCalls(s.T(), "Upsert", 1)

	s.NoError(uc.Execute(context.Background(), service.EvidenceEvent{EventType: service.EventSkillsUpdated}))
	s.scores.AssertNumberOfCalls(s.T(), "Upsert", 1)
}

func TestScoreUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ScoreUseCaseSuite))
}
