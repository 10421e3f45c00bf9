package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

const maxResumeChars = 20000

const resumeSystemPrompt = `You extract professional skills from resume text.
Answer with a JSON object of the form
{"skills":[{"name":string,"category":string,"proficiency":integer 0-100}]}.
Use canonical skill names. Estimate proficiency from the evidence in the text.`

type AnalyzeResumeUseCase struct {
	completer
	skillRepo skill.Repository
	publisher service.EventPublisher
}

func NewAnalyzeResumeUseCase(
	llm service.LLMService,
	skillRepo skill.Repository,
	pub service.EventPublisher,
	rec *metrics.Recorder,
	log logger.Logger,
) *AnalyzeResumeUseCase {
	return &AnalyzeResumeUseCase{
		completer: completer{llm: llm, metrics: rec, logger: log},
		skillRepo: skillRepo,
		publisher: pub,
	}
}

type AnalyzeResumeInput struct {
	UserID uuid.UUID
	Text   string
}

type AnalyzeResumeOutput struct {
	Skills []*skill.UserSkill
}

func (uc *AnalyzeResumeUseCase) Execute(ctx context.Context, input AnalyzeResumeInput) (*AnalyzeResumeOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperror.NewInvalidInput("resume text is required", nil)
	}
	if r := []rune(text); len(r) > maxResumeChars {
		text = string(r[:maxResumeChars])
	}

	res, err := uc.complete(ctx, "resume", resumeSystemPrompt, "Resume:\n"+text, "skills")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := &AnalyzeResumeOutput{Skills: []*skill.UserSkill{}}
	seen := map[string]bool{}
	for _, item := range res.Get("skills").Array() {
		name := skill.NormalizeName(item.Get("name").String())
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		proficiency := min(100, max(0, int(item.Get("proficiency").Int())))
		catalog, err := uc.skillRepo.FindOrCreate(ctx, name, strings.TrimSpace(item.Get("category").String()))
		if err != nil {
			return nil, err
		}
		us := &skill.UserSkill{
			ID:          uuid.New(),
			UserID:      input.UserID,
			Skill:       *catalog,
			Proficiency: proficiency,
			Level:       skill.LevelFromProficiency(proficiency),
			Source:      skill.SourceResume,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.skillRepo.Upsert(ctx, us); err != nil {
			return nil, err
		}
		out.Skills = append(out.Skills, us)
	}

	uc.logger.Info("Resume analyzed", zap.String("user_id", input.UserID.String()), zap.Int("skills", len(out.Skills)))
	if len(out.Skills) > 0 {
		service.PublishAsync(uc.publisher, uc.logger, service.EventSkillsUpdated, input.UserID)
	}
	return out, nil
}
