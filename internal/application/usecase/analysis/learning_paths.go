package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

const learningPathSystemPrompt = `You design learning paths for professionals.
Answer with a JSON object of the form
{"summary":string,"estimated_weeks":integer,"steps":[{"title":string,"description":string,
"skills":[string],"resources":[string],"duration_weeks":integer}]}.
Order the steps from first to last and build on the skills the person already has.`

type LearningPathUseCase struct {
	completer
	pathRepo  recommendation.LearningPathRepository
	skillRepo skill.Repository
}

func NewLearningPathUseCase(
	llm service.LLMService,
	pathRepo recommendation.LearningPathRepository,
	skillRepo skill.Repository,
	rec *metrics.Recorder,
	log logger.Logger,
) *LearningPathUseCase {
	return &LearningPathUseCase{
		completer: completer{llm: llm, metrics: rec, logger: log},
		pathRepo:  pathRepo,
		skillRepo: skillRepo,
	}
}

type GenerateLearningPathInput struct {
	UserID     uuid.UUID
	TargetRole string
}

func (uc *LearningPathUseCase) ExecuteGenerate(ctx context.Context, input GenerateLearningPathInput) (*recommendation.LearningPath, error) {
	role := strings.TrimSpace(input.TargetRole)
	if role == "" {
		return nil, apperror.NewInvalidInput(recommendation.ErrTargetRoleMissing.Error(), recommendation.ErrTargetRoleMissing)
	}

	skills, err := uc.skillRepo.ListByUser(ctx, input.UserID, skill.ListFilter{})
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Target role: %s\nCurrent skills:\n%s", role, describeSkills(skills))

	res, err := uc.complete(ctx, "learning_path", learningPathSystemPrompt, prompt, "steps")
	if err != nil {
		return nil, err
	}

	lp := &recommendation.LearningPath{
		ID:             uuid.New(),
		UserID:         input.UserID,
		TargetRole:     role,
		Summary:        strings.TrimSpace(res.Get("summary").String()),
		EstimatedWeeks: int(res.Get("estimated_weeks").Int()),
		Steps:          []recommendation.Step{},
		CreatedAt:      time.Now().UTC(),
	}
	for _, item := range res.Get("steps").Array() {
		title := strings.TrimSpace(item.Get("title").String())
		if title == "" {
			continue
		}
		lp.Steps = append(lp.Steps, recommendation.Step{
			Title:         title,
			Description:   strings.TrimSpace(item.Get("description").String()),
			Skills:        stringList(item.Get("skills")),
			Resources:     stringList(item.Get("resources")),
			DurationWeeks: int(item.Get("duration_weeks").Int()),
		})
	}
	if len(lp.Steps) == 0 {
		return nil, uc.malformed("learning_path", fmt.Errorf("%w: no titled steps", errMalformed))
	}
	lp.Normalize()

	if err := uc.pathRepo.Save(ctx, lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (uc *LearningPathUseCase) ExecuteList(ctx context.Context, userID uuid.UUID) ([]*recommendation.LearningPath, error) {
	paths, err := uc.pathRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []*recommendation.LearningPath{}
	}
	return paths, nil
}

func (uc *LearningPathUseCase) ExecuteGet(ctx context.Context, userID, id uuid.UUID) (*recommendation.LearningPath, error) {
	lp, err := uc.pathRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lp.UserID != userID {
		return nil, apperror.NewForbiddenResource("learning path", id.String())
	}
	return lp, nil
}

func (uc *LearningPathUseCase) ExecuteDelete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := uc.ExecuteGet(ctx, userID, id); err != nil {
		return err
	}
	return uc.pathRepo.Delete(ctx, id)
}
