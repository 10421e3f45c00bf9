package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

const recommendationSystemPrompt = `You are a career advisor.
Answer with a JSON object of the form
{"recommendations":[{"title":string,"description":string,"category":string,
"priority":"low"|"medium"|"high","action_items":[string]}]}.
Give between 3 and 6 concrete recommendations that would raise the person's credibility.`

// ScoreReader returns the current score, calculating it when missing.
type ScoreReader interface {
	Execute(ctx context.Context, input credUC.GetScoreInput) (*credibility.Score, error)
}

type RecommendationUseCase struct {
	completer
	recRepo     recommendation.Repository
	profileRepo profile.Repository
	skillRepo   skill.Repository
	scores      ScoreReader
}

func NewRecommendationUseCase(
	llm service.LLMService,
	recRepo recommendation.Repository,
	profileRepo profile.Repository,
	skillRepo skill.Repository,
	scores ScoreReader,
	rec *metrics.Recorder,
	log logger.Logger,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		completer:   completer{llm: llm, metrics: rec, logger: log},
		recRepo:     recRepo,
		profileRepo: profileRepo,
		skillRepo:   skillRepo,
		scores:      scores,
	}
}

// ExecuteGenerate asks the model for fresh recommendations and replaces the
// user's active ones. Accepted and dismissed rows are kept.
func (uc *RecommendationUseCase) ExecuteGenerate(ctx context.Context, userID uuid.UUID) ([]*recommendation.CareerRecommendation, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		p, err = profile.Empty(userID), nil
	}
	if err != nil {
		return nil, err
	}
	skills, err := uc.skillRepo.ListByUser(ctx, userID, skill.ListFilter{})
	if err != nil {
		return nil, err
	}
	score, err := uc.scores.Execute(ctx, credUC.GetScoreInput{UserID: userID})
	if err != nil {
		return nil, err
	}

	res, err := uc.complete(ctx, "recommendations", recommendationSystemPrompt, recommendationPrompt(p, skills, score), "recommendations")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recs := []*recommendation.CareerRecommendation{}
	for _, item := range res.Get("recommendations").Array() {
		title := strings.TrimSpace(item.Get("title").String())
		if title == "" {
			continue
		}
		recs = append(recs, &recommendation.CareerRecommendation{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       title,
			Description: strings.TrimSpace(item.Get("description").String()),
			Category:    strings.TrimSpace(item.Get("category").String()),
			Priority:    recommendation.NormalizePriority(item.Get("priority").String()),
			ActionItems: stringList(item.Get("action_items")),
			Status:      recommendation.StatusActive,
			CreatedAt:   now,
		})
	}

	if len(recs) == 0 {
		return nil, uc.malformed("recommendations", fmt.Errorf("%w: no titled recommendations", errMalformed))
	}

	if err := uc.recRepo.ReplaceActive(ctx, userID, recs); err != nil {
		return nil, err
	}
	uc.logger.Info("Recommendations generated", zap.String("user_id", userID.String()), zap.Int("count", len(recs)))
	return recs, nil
}

func recommendationPrompt(p *profile.Profile, skills []*skill.UserSkill, score *credibility.Score) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Headline: %s\nBio: %s\nYears of experience: %d\n", p.Headline, p.Bio, p.YearsExperience)
	for _, pos := range p.Positions {
		fmt.Fprintf(&b, "Position: %s at %s\n", pos.Title, pos.Company)
	}
	for _, e := range p.Education {
		fmt.Fprintf(&b, "Education: %s in %s, %s\n", e.Degree, e.FieldOfStudy, e.Institution)
	}
	fmt.Fprintf(&b, "Skills:\n%s", describeSkills(skills))
	fmt.Fprintf(&b, "Credibility score: %d (%s)\n", score.OverallScore, score.VerificationLevel)
	for _, c := range credibility.Categories {
		fmt.Fprintf(&b, "  %s: %d\n", c, score.Breakdown[c].Score)
	}
	return b.String()
}

func (uc *RecommendationUseCase) ExecuteList(ctx context.Context, userID uuid.UUID, status string) ([]*recommendation.CareerRecommendation, error) {
	var filter *recommendation.Status
	if status != "" {
		st := recommendation.Status(strings.ToLower(status))
		switch st {
		case recommendation.StatusActive, recommendation.StatusAccepted, recommendation.StatusDismissed:
			filter = &st
		default:
			return nil, apperror.NewInvalidInput("unknown recommendation status '"+status+"'", nil)
		}
	}
	recs, err := uc.recRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*recommendation.CareerRecommendation{}
	}
	return recs, nil
}

type UpdateStatusInput struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Status string
}

func (uc *RecommendationUseCase) ExecuteUpdateStatus(ctx context.Context, input UpdateStatusInput) (*recommendation.CareerRecommendation, error) {
	st, err := recommendation.ParseDecision(input.Status)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	rec, err := uc.recRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != input.UserID {
		return nil, apperror.NewForbiddenResource("recommendation", input.ID.String())
	}
	if err := uc.recRepo.UpdateStatus(ctx, input.ID, st); err != nil {
		return nil, err
	}
	rec.Status = st
	return rec, nil
}
