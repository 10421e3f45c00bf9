package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/credably/internal/application/usecase/profile"
	"github.com/khoahotran/credably/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": output.Profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		UserID:          userID,
		Headline:        req.Headline,
		Bio:             req.Bio,
		Location:        req.Location,
		YearsExperience: req.YearsExperience,
		Education:       req.Education,
		Positions:       req.ToDomainPositions(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": output.Profile})
}
