package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	FieldOfStudy   string `json:"field_of_study"`
	GraduationYear int    `json:"graduation_year"`
}

type Position struct {
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Current   bool       `json:"current"`
}

type Profile struct {
	UserID          uuid.UUID   `json:"user_id"`
	Headline        string      `json:"headline"`
	Bio             string      `json:"bio"`
	Location        string      `json:"location"`
	YearsExperience int         `json:"years_experience"`
	Education       []Education `json:"education"`
	Positions       []Position  `json:"positions"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

var ErrInvalidPosition = errors.New("position end date is before its start date")

func (p *Profile) Validate() error {
	if p.YearsExperience < 0 || p.YearsExperience > 80 {
		return errors.New("years_experience must be between 0 and 80")
	}
	for _, pos := range p.Positions {
		if pos.EndDate != nil && pos.EndDate.Before(pos.StartDate) {
			return ErrInvalidPosition
		}
	}
	return nil
}

// Empty is the profile returned for users who never saved one.
func Empty(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:    userID,
		Education: []Education{},
		Positions: []Position{},
	}
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
