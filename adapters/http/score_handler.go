package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	dashboardUC "github.com/khoahotran/credably/internal/application/usecase/dashboard"
)

type ScoreHandler struct {
	getUseCase       *credUC.GetScoreUseCase
	calculateUseCase *credUC.CalculateScoreUseCase
	dashboardUseCase *dashboardUC.DashboardUseCase
}

func NewScoreHandler(getUC *credUC.GetScoreUseCase, calcUC *credUC.CalculateScoreUseCase, dashUC *dashboardUC.DashboardUseCase) *ScoreHandler {
	return &ScoreHandler{
		getUseCase:       getUC,
		calculateUseCase: calcUC,
		dashboardUseCase: dashUC,
	}
}

func (h *ScoreHandler) GetScore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	score, err := h.getUseCase.Execute(c.Request.Context(), credUC.GetScoreInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "score": score})
}

// RecalculateScore always recomputes from the stored evidence.
func (h *ScoreHandler) RecalculateScore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	score, err := h.calculateUseCase.Execute(c.Request.Context(), credUC.CalculateScoreInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "score": score})
}

func (h *ScoreHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := h.dashboardUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": out})
}
