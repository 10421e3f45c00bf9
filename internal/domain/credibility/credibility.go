// Package credibility computes the weighted 0-100 credibility score from a
// user's aggregated evidence. Everything here is pure.
package credibility

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/domain/certification"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
)

type Category string

const (
	CategoryEducation      Category = "education"
	CategoryExperience     Category = "experience"
	CategoryTechnical      Category = "technical"
	CategorySocial         Category = "social"
	CategoryCertifications Category = "certifications"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryEducation,
	CategoryExperience,
	CategoryTechnical,
	CategorySocial,
	CategoryCertifications,
}

// weightPercent holds the fixed category weights in percent. They sum to 100.
var weightPercent = map[Category]int{
	CategoryEducation:      25,
	CategoryExperience:     30,
	CategoryTechnical:      20,
	CategorySocial:         15,
	CategoryCertifications: 10,
}

// Weight returns the fixed weight of c as a fraction.
func Weight(c Category) float64 {
	return float64(weightPercent[c]) / 100
}

type VerificationLevel string

const (
	LevelBasic    VerificationLevel = "basic"
	LevelVerified VerificationLevel = "verified"
	LevelPremium  VerificationLevel = "premium"
	LevelElite    VerificationLevel = "elite"
)

const (
	verifiedThreshold = 60
	premiumThreshold  = 75
	eliteThreshold    = 90
)

// LevelFor is a step function of the overall score with no hysteresis.
func LevelFor(score int) VerificationLevel {
	switch {
	case score >= eliteThreshold:
		return LevelElite
	case score >= premiumThreshold:
		return LevelPremium
	case score >= verifiedThreshold:
		return LevelVerified
	default:
		return LevelBasic
	}
}

type CategoryScore struct {
	Score   int            `json:"score"`
	Weight  float64        `json:"weight"`
	Factors map[string]int `json:"factors"`
}

type Breakdown map[Category]CategoryScore

// Score is the persisted result, one row per user.
type Score struct {
	UserID              uuid.UUID         `json:"user_id"`
	OverallScore        int               `json:"overall_score"`
	EducationScore      int               `json:"education_score"`
	ExperienceScore     int               `json:"experience_score"`
	TechnicalScore      int               `json:"technical_score"`
	SocialScore         int               `json:"social_score"`
	CertificationsScore int               `json:"certifications_score"`
	VerificationLevel   VerificationLevel `json:"verification_level"`
	Breakdown           Breakdown         `json:"breakdown"`
	CalculatedAt        time.Time         `json:"calculated_at"`
}

// Input is the aggregated evidence for one user. Any field may be empty.
type Input struct {
	Profile        *profile.Profile
	Skills         []*skill.UserSkill
	GitHub         *social.GitHubProfile
	Socials        []*social.SocialProfile
	Certifications []*certification.Certification
	Now            time.Time
}

// Calculate runs every category scorer and combines the results.
func Calculate(userID uuid.UUID, in Input) *Score {
	if in.Now.IsZero() {
		in.Now = time.Now().UTC()
	}
	if in.Profile == nil {
		in.Profile = profile.Empty(userID)
	}

	b := Breakdown{
		CategoryEducation:      educationScore(in),
		CategoryExperience:     experienceScore(in),
		CategoryTechnical:      technicalScore(in),
		CategorySocial:         socialScore(in),
		CategoryCertifications: certificationsScore(in),
	}
	overall := Combine(b)

	return &Score{
		UserID:              userID,
		OverallScore:        overall,
		EducationScore:      b[CategoryEducation].Score,
		ExperienceScore:     b[CategoryExperience].Score,
		TechnicalScore:      b[CategoryTechnical].Score,
		SocialScore:         b[CategorySocial].Score,
		CertificationsScore: b[CategoryCertifications].Score,
		VerificationLevel:   LevelFor(overall),
		Breakdown:           b,
		CalculatedAt:        in.Now,
	}
}

// Combine returns round(sum(score_i * weight_i)) over the fixed weights,
// rounding halves up. Category scores are clamped to [0,100] first, so the
// result is always within [0,100].
func Combine(b Breakdown) int {
	total := 0
	for _, c := range Categories {
		cs, ok := b[c]
		if !ok {
			continue
		}
		total += clamp(cs.Score) * weightPercent[c]
	}
	return (total + 50) / 100
}

type Repository interface {
	Upsert(ctx context.Context, s *Score) error
	// GetByUserID returns nil without error when no score was calculated yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Score, error)
}
