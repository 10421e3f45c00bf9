package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/user"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

type UpdateProfileRequest struct {
	Headline        string              `json:"headline"`
	Bio             string              `json:"bio"`
	Location        string              `json:"location"`
	YearsExperience int                 `json:"years_experience"`
	Education       []profile.Education `json:"education"`
	Positions       []struct {
		Title     string     `json:"title" binding:"required"`
		Company   string     `json:"company"`
		StartDate time.Time  `json:"start_date" binding:"required"`
		EndDate   *time.Time `json:"end_date"`
		Current   bool       `json:"current"`
	} `json:"positions"`
}

func (req *UpdateProfileRequest) ToDomainPositions() []profile.Position {
	positions := make([]profile.Position, len(req.Positions))
	for i, p := range req.Positions {
		positions[i] = profile.Position{
			Title:     p.Title,
			Company:   p.Company,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			Current:   p.Current,
		}
	}
	return positions
}

type AddSkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
	Level       string `json:"level"`
	Source      string `json:"source"`
	Verified    bool   `json:"verified"`
}

type UpdateSkillRequest struct {
	Proficiency *int    `json:"proficiency"`
	Level       *string `json:"level"`
	Verified    *bool   `json:"verified"`
}

type AddCertificationRequest struct {
	Name          string     `json:"name" binding:"required"`
	Issuer        string     `json:"issuer"`
	IssueDate     time.Time  `json:"issue_date" binding:"required"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialURL *string    `json:"credential_url"`
}

type ConnectRequest struct {
	Handle      string `json:"handle" binding:"required"`
	Connections int    `json:"connections"`
}

type AnalyzeResumeRequest struct {
	Text string `json:"text"`
}

type UpdateRecommendationRequest struct {
	Status string `json:"status" binding:"required"`
}

type LearningPathRequest struct {
	TargetRole string `json:"target_role"`
}
