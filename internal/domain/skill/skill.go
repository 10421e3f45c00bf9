package skill

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

type Source string

const (
	SourceResume     Source = "resume"
	SourceGitHub     Source = "github"
	SourceManual     Source = "manual"
	SourceAIAnalysis Source = "ai-analysis"
)

type Skill struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type UserSkill struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Skill       Skill     `json:"skill"`
	Proficiency int       `json:"proficiency"`
	Level       Level     `json:"level"`
	Source      Source    `json:"source"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrInvalidProficiency = errors.New("proficiency must be between 0 and 100")
	ErrInvalidLevel       = errors.New("invalid skill level")
	ErrInvalidSource      = errors.New("invalid skill source")
	ErrEmptyName          = errors.New("skill name is required")
)

// LevelFromProficiency derives a level for rows that were not given one.
func LevelFromProficiency(p int) Level {
	switch {
	case p < 40:
		return LevelBeginner
	case p < 65:
		return LevelIntermediate
	case p < 85:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(s)); l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return l, nil
	}
	return "", ErrInvalidLevel
}

func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(s)); src {
	case SourceResume, SourceGitHub, SourceManual, SourceAIAnalysis:
		return src, nil
	}
	return "", ErrInvalidSource
}

// NormalizeName trims and collapses whitespace so catalog lookups are stable.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func (us *UserSkill) Validate() error {
	if NormalizeName(us.Skill.Name) == "" {
		return ErrEmptyName
	}
	if us.Proficiency < 0 || us.Proficiency > 100 {
		return ErrInvalidProficiency
	}
	if us.Level == "" {
		us.Level = LevelFromProficiency(us.Proficiency)
	}
	level, err := ParseLevel(string(us.Level))
	if err != nil {
		return err
	}
	source, err := ParseSource(string(us.Source))
	if err != nil {
		return err
	}
	us.Level, us.Source = level, source
	return nil
}

type ListFilter struct {
	Source *Source
	Level  *Level
	Limit  int
	Offset int
}

type Repository interface {
	// FindOrCreate returns the catalog entry for name, creating it when absent.
	FindOrCreate(ctx context.Context, name, category string) (*Skill, error)
	// Upsert inserts the user skill or updates the existing (user, skill) row.
	Upsert(ctx context.Context, us *UserSkill) error
	Update(ctx context.Context, us *UserSkill) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*UserSkill, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*UserSkill, error)
}
