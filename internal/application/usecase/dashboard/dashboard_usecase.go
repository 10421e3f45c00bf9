package dashboard

import (
	"context"
	"sort"

	"github.com/google/uuid"

	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/datasync"
	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/internal/domain/skill"
)

const topSkillCount = 5

type scoreReader interface {
	Execute(ctx context.Context, input credUC.GetScoreInput) (*credibility.Score, error)
}

type DashboardUseCase struct {
	scores    scoreReader
	skillRepo skill.Repository
	syncRepo  datasync.Repository
	recRepo   recommendation.Repository
	pathRepo  recommendation.LearningPathRepository
}

func NewDashboardUseCase(
	scores scoreReader,
	skillRepo skill.Repository,
	syncRepo datasync.Repository,
	recRepo recommendation.Repository,
	pathRepo recommendation.LearningPathRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		scores:    scores,
		skillRepo: skillRepo,
		syncRepo:  syncRepo,
		recRepo:   recRepo,
		pathRepo:  pathRepo,
	}
}

type Output struct {
	Score                 *credibility.Score         `json:"credibility_score"`
	TopSkills             []*skill.UserSkill         `json:"top_skills"`
	Syncs                 []*datasync.DataSourceSync `json:"sync_statuses"`
	ActiveRecommendations int                        `json:"active_recommendations"`
	LearningPaths         int                        `json:"learning_paths"`
}

func (uc *DashboardUseCase) Execute(ctx context.Context, userID uuid.UUID) (*Output, error) {
	score, err := uc.scores.Execute(ctx, credUC.GetScoreInput{UserID: userID})
	if err != nil {
		return nil, err
	}
	skills, err := uc.skillRepo.ListByUser(ctx, userID, skill.ListFilter{})
	if err != nil {
		return nil, err
	}
	syncs, err := uc.syncRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := uc.recRepo.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	paths, err := uc.pathRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	if syncs == nil {
		syncs = []*datasync.DataSourceSync{}
	}
	return &Output{
		Score:                 score,
		TopSkills:             topSkills(skills, topSkillCount),
		Syncs:                 syncs,
		ActiveRecommendations: active,
		LearningPaths:         paths,
	}, nil
}

// topSkills orders by proficiency, then verified first, then name.
func topSkills(skills []*skill.UserSkill, n int) []*skill.UserSkill {
	sorted := make([]*skill.UserSkill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Proficiency != b.Proficiency {
			return a.Proficiency > b.Proficiency
		}
		if a.Verified != b.Verified {
			return a.Verified
		}
		return a.Skill.Name < b.Skill.Name
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
