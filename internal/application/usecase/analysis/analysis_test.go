package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/mocks"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

type fixedScore struct{ score *credibility.Score }

func (f fixedScore) Execute(context.Context, credUC.GetScoreInput) (*credibility.Score, error) {
	return f.score, nil
}

func TestAnalyzeResume(t *testing.T) {
	userID := uuid.New()

	t.Run("upserts extracted skills as resume sourced", func(t *testing.T) {
		llm := new(mocks.LLM)
		skills := new(mocks.SkillRepo)
		llm.On("CompleteJSON", mock.Anything, resumeSystemPrompt, mock.Anything).Return(`{"skills":[
			{"name":"Go","category":"language","proficiency":88},
			{"name":"go","category":"language","proficiency":10},
			{"name":"Kubernetes","category":"platform","proficiency":140},
			{"name":"","proficiency":50}]}`, nil)
		skills.On("FindOrCreate", mock.Anything, "Go", "language").Return(&skill.Skill{ID: uuid.New(), Name: "Go"}, nil)
		skills.On("FindOrCreate", mock.Anything, "Kubernetes", "platform").Return(&skill.Skill{ID: uuid.New(), Name: "Kubernetes"}, nil)
		skills.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		uc := NewAnalyzeResumeUseCase(llm, skills, nil, metrics.NewRecorder(), logger.NewNop())
		out, err := uc.Execute(context.Background(), AnalyzeResumeInput{UserID: userID, Text: "Senior Go engineer"})

		require.NoError(t, err)
		require.Len(t, out.Skills, 2)
		assert.Equal(t, skill.SourceResume, out.Skills[0].Source)
		assert.False(t, out.Skills[0].Verified)
		assert.Equal(t, skill.LevelExpert, out.Skills[0].Level)
		assert.Equal(t, 100, out.Skills[1].Proficiency)
	})

	t.Run("empty text is rejected before calling the model", func(t *testing.T) {
		llm := new(mocks.LLM)
		uc := NewAnalyzeResumeUseCase(llm, new(mocks.SkillRepo), nil, nil, logger.NewNop())

		_, err := uc.Execute(context.Background(), AnalyzeResumeInput{UserID: userID, Text: "   "})

		assert.Equal(t, 400, apperror.ToHTTPStatus(err))
		llm.AssertNotCalled(t, "CompleteJSON", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-JSON output becomes a generic internal error", func(t *testing.T) {
		llm := new(mocks.LLM)
		skills := new(mocks.SkillRepo)
		llm.On("CompleteJSON", mock.Anything, mock.Anything, mock.Anything).Return("Sure! Here are the skills: Go, SQL", nil)

		uc := NewAnalyzeResumeUseCase(llm, skills, nil, metrics.NewRecorder(), logger.NewNop())
		_, err := uc.Execute(context.Background(), AnalyzeResumeInput{UserID: userID, Text: "cv"})

		require.Error(t, err)
		assert.Equal(t, 500, apperror.ToHTTPStatus(err))
		assert.NotContains(t, apperror.From(err).ToJSON()["details"], "Sure!")
		skills.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("wrong shape is rejected", func(t *testing.T) {
		llm := new(mocks.LLM)
		llm.On("CompleteJSON", mock.Anything, mock.Anything, mock.Anything).Return(`{"items":[]}`, nil)

		uc := NewAnalyzeResumeUseCase(llm, new(mocks.SkillRepo), nil, nil, logger.NewNop())
		_, err := uc.Execute(context.Background(), AnalyzeResumeInput{UserID: userID, Text: "cv"})

		assert.ErrorIs(t, err, apperror.ErrInternal)
	})

	t.Run("skills that are not a list are rejected", func(t *testing.T) {
		llm := new(mocks.LLM)
		skills := new(mocks.SkillRepo)
		llm.On("CompleteJSON", mock.Anything, mock.Anything, mock.Anything).Return(`{"skills":"Go"}`, nil)

		uc := NewAnalyzeResumeUseCase(llm, skills, nil, metrics.NewRecorder(), logger.NewNop())
		_, err := uc.Execute(context.Background(), AnalyzeResumeInput{UserID: userID, Text: "cv"})

		assert.ErrorIs(t, err, apperror.ErrInternal)
		skills.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything)
		skills.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("transport failure is internal", func(t *testing.T) {
		llm := new(mocks.LLM)
		llm.On("CompleteJSON", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

		uc := NewAnalyzeResumeUseCase(llm, new(mocks.SkillRepo), nil, nil, logger.NewNop())
		_, err := uc.Execute(context.Background(), AnalyzeResumeInput{UserID: userID, Text: "cv"})

		assert.ErrorIs(t, err, apperror.ErrInternal)
	})
}

func TestGenerateRecommendations(t *testing.T) {
	userID := uuid.New()
	llm := new(mocks.LLM)
	recs := new(mocks.RecommendationRepo)
	profiles := new(mocks.ProfileRepo)
	skills := new(mocks.SkillRepo)

	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, apperror.NewNotFound("profile", userID.String()))
	skills.On("ListByUser", mock.Anything, userID, mock.Anything).Return(nil, nil)
	llm.On("CompleteJSON", mock.Anything, recommendationSystemPrompt, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Credibility score: 42 (basic)")
	})).Return(`{"recommendations":[
		{"title":"Get certified","description":"CKA","category":"certification","priority":"HIGH","action_items":["Book exam",""]},
		{"title":"","description":"dropped"}]}`, nil)
	recs.On("ReplaceActive", mock.Anything, userID, mock.MatchedBy(func(list []*recommendation.CareerRecommendation) bool {
		return len(list) == 1 && list[0].Status == recommendation.StatusActive
	})).Return(nil)

	uc := NewRecommendationUseCase(llm, recs, profiles, skills,
		fixedScore{&credibility.Score{OverallScore: 42, VerificationLevel: credibility.LevelBasic}},
		metrics.NewRecorder(), logger.NewNop())
	out, err := uc.ExecuteGenerate(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, recommendation.PriorityHigh, out[0].Priority)
	assert.Equal(t, []string{"Book exam"}, out[0].ActionItems)
	recs.AssertExpectations(t)
}

func TestGenerateRecommendations_UnusableOutputKeepsActiveRows(t *testing.T) {
	userID := uuid.New()
	outputs := map[string]string{
		"string":         `{"recommendations":"I cannot help with that"}`,
		"object":         `{"recommendations":{"title":"Learn Go"}}`,
		"untitled items": `{"recommendations":[{"title":"  "},{"description":"no title"}]}`,
		"empty list":     `{"recommendations":[]}`,
	}
	for name, raw := range outputs {
		t.Run(name, func(t *testing.T) {
			llm := new(mocks.LLM)
			recs := new(mocks.RecommendationRepo)
			profiles := new(mocks.ProfileRepo)
			skills := new(mocks.SkillRepo)
			profiles.On("GetByUserID", mock.Anything, userID).Return(nil, apperror.NewNotFound("profile", userID.String()))
			skills.On("ListByUser", mock.Anything, userID, mock.Anything).Return(nil, nil)
			llm.On("CompleteJSON", mock.Anything, mock.Anything, mock.Anything).Return(raw, nil)

			uc := NewRecommendationUseCase(llm, recs, profiles, skills,
				fixedScore{&credibility.Score{OverallScore: 42, VerificationLevel: credibility.LevelBasic}},
				metrics.NewRecorder(), logger.NewNop())
			out, err := uc.ExecuteGenerate(context.Background(), userID)

			assert.Nil(t, out)
			assert.ErrorIs(t, err, apperror.ErrInternal)
			assert.Equal(t, "AI analysis failed", apperror.From(err).Details)
			recs.AssertNotCalled(t, "ReplaceActive", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateRecommendationStatus(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	recs := new(mocks.RecommendationRepo)
	recs.On("FindByID", mock.Anything, id).Return(&recommendation.CareerRecommendation{ID: id, UserID: owner, Status: recommendation.StatusActive}, nil)
	recs.On("UpdateStatus", mock.Anything, id, recommendation.StatusAccepted).Return(nil)

	uc := NewRecommendationUseCase(nil, recs, nil, nil, nil, nil, logger.NewNop())

	_, err := uc.ExecuteUpdateStatus(context.Background(), UpdateStatusInput{UserID: owner, ID: id, Status: "active"})
	assert.Equal(t, 400, apperror.ToHTTPStatus(err))

	_, err = uc.ExecuteUpdateStatus(context.Background(), UpdateStatusInput{UserID: uuid.New(), ID: id, Status: "accepted"})
	assert.Equal(t, 403, apperror.ToHTTPStatus(err))

	rec, err := uc.ExecuteUpdateStatus(context.Background(), UpdateStatusInput{UserID: owner, ID: id, Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, recommendation.StatusAccepted, rec.Status)
}

func TestGenerateLearningPath(t *testing.T) {
	userID := uuid.New()

	t.Run("stores a normalized path", func(t *testing.T) {
		llm := new(mocks.LLM)
		paths := new(mocks.LearningPathRepo)
		skills := new(mocks.SkillRepo)
		skills.On("ListByUser", mock.Anything, userID, mock.Anything).Return([]*skill.UserSkill{
			{Skill: skill.Skill{Name: "Go"}, Proficiency: 80, Level: skill.LevelAdvanced, Source: skill.SourceManual},
		}, nil)
		llm.On("CompleteJSON", mock.Anything, learningPathSystemPrompt, mock.Anything).Return(`{
			"summary":"From backend to platform engineering",
			"steps":[
				{"title":"Kubernetes basics","skills":["Kubernetes"],"resources":["k8s docs"],"duration_weeks":4},
				{"title":"Terraform","duration_weeks":3}]}`, nil)
		paths.On("Save", mock.Anything, mock.AnythingOfType("*recommendation.LearningPath")).Return(nil)

		uc := NewLearningPathUseCase(llm, paths, skills, metrics.NewRecorder(), logger.NewNop())
		lp, err := uc.ExecuteGenerate(context.Background(), GenerateLearningPathInput{UserID: userID, TargetRole: " Platform Engineer "})

		require.NoError(t, err)
		assert.Equal(t, "Platform Engineer", lp.TargetRole)
		assert.Equal(t, 7, lp.EstimatedWeeks)
		require.Len(t, lp.Steps, 2)
		assert.Equal(t, 2, lp.Steps[1].Order)
		assert.Equal(t, []string{}, lp.Steps[1].Skills)
	})

	t.Run("empty target role is rejected", func(t *testing.T) {
		uc := NewLearningPathUseCase(new(mocks.LLM), new(mocks.LearningPathRepo), new(mocks.SkillRepo), nil, logger.NewNop())
		_, err := uc.ExecuteGenerate(context.Background(), GenerateLearningPathInput{UserID: userID})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("other user's path is forbidden", func(t *testing.T) {
		paths := new(mocks.LearningPathRepo)
		id := uuid.New()
		paths.On("FindByID", mock.Anything, id).Return(&recommendation.LearningPath{ID: id, UserID: uuid.New()}, nil)

		uc := NewLearningPathUseCase(nil, paths, nil, nil, logger.NewNop())
		err := uc.ExecuteDelete(context.Background(), userID, id)

		assert.ErrorIs(t, err, apperror.ErrPermission)
		paths.AssertNotCalled(t, "Delete", mock.Anything, id)
	})
}
