package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analysisUC "github.com/khoahotran/credably/internal/application/usecase/analysis"
)

type AnalysisHandler struct {
	resumeUseCase         *analysisUC.AnalyzeResumeUseCase
	recommendationUseCase *analysisUC.RecommendationUseCase
	learningPathUseCase   *analysisUC.LearningPathUseCase
}

func NewAnalysisHandler(
	resumeUC *analysisUC.AnalyzeResumeUseCase,
	recUC *analysisUC.RecommendationUseCase,
	pathUC *analysisUC.LearningPathUseCase,
) *AnalysisHandler {
	return &AnalysisHandler{
		resumeUseCase:         resumeUC,
		recommendationUseCase: recUC,
		learningPathUseCase:   pathUC,
	}
}

func (h *AnalysisHandler) AnalyzeResume(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req AnalyzeResumeRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.resumeUseCase.Execute(c.Request.Context(), analysisUC.AnalyzeResumeInput{UserID: userID, Text: req.Text})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "skills": out.Skills})
}

func (h *AnalysisHandler) ListRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recs, err := h.recommendationUseCase.ExecuteList(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendations": recs})
}

func (h *AnalysisHandler) GenerateRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recs, err := h.recommendationUseCase.ExecuteGenerate(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendations": recs})
}

func (h *AnalysisHandler) UpdateRecommendation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRecommendationRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.recommendationUseCase.ExecuteUpdateStatus(c.Request.Context(), analysisUC.UpdateStatusInput{
		UserID: userID,
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendation": rec})
}

func (h *AnalysisHandler) ListLearningPaths(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	paths, err := h.learningPathUseCase.ExecuteList(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "learning_paths": paths})
}

func (h *AnalysisHandler) GenerateLearningPath(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req LearningPathRequest
	if !bindJSON(c, &req) {
		return
	}

	lp, err := h.learningPathUseCase.ExecuteGenerate(c.Request.Context(), analysisUC.GenerateLearningPathInput{
		UserID:     userID,
		TargetRole: req.TargetRole,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "learning_path": lp})
}

func (h *AnalysisHandler) GetLearningPath(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	lp, err := h.learningPathUseCase.ExecuteGet(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "learning_path": lp})
}

func (h *AnalysisHandler) DeleteLearningPath(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.learningPathUseCase.ExecuteDelete(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
